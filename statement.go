package emburse

import (
	"context"
	"net/url"
	"time"

	"github.com/MarcFord/emburse-go/internal/apierrors"
	"github.com/gabriel-vasile/mimetype"
)

// StatementFormat is a statement export file format
type StatementFormat string

const (
	FormatCSV StatementFormat = "csv"
	FormatPDF StatementFormat = "pdf"
	FormatOFX StatementFormat = "ofx"
)

// StatementExportParams selects the statement to export. AccountID defaults
// to the statement's account_id field; Format defaults to CSV.
type StatementExportParams struct {
	AccountID string
	Format    StatementFormat
	StartDate *time.Time
	EndDate   *time.Time
}

// StatementFile is a downloaded statement
type StatementFile struct {
	Format      StatementFormat
	ContentType string
	Data        []byte
}

// Export downloads the account statement for an optional date range
func (s *Statement) Export(ctx context.Context, p StatementExportParams) (*StatementFile, error) {
	accountID := p.AccountID
	if accountID == "" {
		accountID = s.AccountID()
	}
	if accountID == "" {
		return nil, apierrors.New(apierrors.KindAttribute, "Account id must be set before calling method!")
	}

	backend, err := s.requestor()
	if err != nil {
		return nil, err
	}

	format := p.Format
	switch format {
	case FormatCSV, FormatPDF, FormatOFX:
	default:
		format = FormatCSV
	}

	params := Params{}
	if p.StartDate != nil {
		params["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		params["end_date"] = *p.EndDate
	}

	path := "/accounts/" + url.PathEscape(accountID) + "/statement." + string(format)
	resp, _, err := backend.PerformRaw(ctx, "GET", path, params, nil)
	if err != nil {
		return nil, err
	}

	contentType := resp.ContentType()
	if contentType == "" {
		contentType = mimetype.Detect(resp.Body).String()
	}
	return &StatementFile{
		Format:      format,
		ContentType: contentType,
		Data:        resp.Body,
	}, nil
}
