package requestor

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const undecodableBody = "<Could not decode body as utf-8.>"

var errNotUTF8 = errors.New("transcoded body is not valid utf-8")

// decodeText returns the response body as UTF-8. A charset declared in the
// Content-Type header is tried first, then a detected one.
func decodeText(body []byte, contentType string) string {
	if utf8.Valid(body) {
		return string(body)
	}

	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		if text, err := transcode(body, params["charset"]); err == nil {
			return text
		}
	}

	if result, err := chardet.NewTextDetector().DetectBest(body); err == nil {
		if text, err := transcode(body, result.Charset); err == nil {
			return text
		}
	}

	return undecodableBody
}

func transcode(body []byte, label string) (string, error) {
	r, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", errNotUTF8
	}
	return string(out), nil
}
