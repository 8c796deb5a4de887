package apierrors

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	connectivitySummary = "Unexpected error communicating with Emburse."
	maxSummaryLength    = 500
)

var textPolicy = bluemonday.StrictPolicy()

// Classify maps a non-2xx response onto an Error.
//
// Bodies without a "detail" object become KindAPI. Otherwise 400 and 404 are
// invalid requests, 401 is authentication, 403 is permission and any other
// status is KindAPI carrying the detail message.
func Classify(status int, body string, parsed interface{}, headers http.Header) *Error {
	e := &Error{
		HTTPBody:   body,
		HTTPStatus: status,
		JSONBody:   parsed,
		Headers:    headers,
		RequestID:  RequestID(headers),
	}

	obj, _ := parsed.(map[string]interface{})
	detail, ok := obj["detail"].(map[string]interface{})
	if !ok {
		e.Kind = KindAPI
		e.Message = fmt.Sprintf("Invalid response object from API: %q (HTTP response code was %d)", Summarize(body), status)
		return e
	}

	e.Message = stringField(detail, "message")

	switch status {
	case http.StatusBadRequest, http.StatusNotFound:
		e.Kind = KindInvalidRequest
		e.Param = stringField(detail, "param")
	case http.StatusUnauthorized:
		e.Kind = KindAuthentication
	case http.StatusForbidden:
		e.Kind = KindPermission
	default:
		e.Kind = KindAPI
	}
	return e
}

// InvalidBody reports a response whose body could not be parsed as JSON
func InvalidBody(status int, body string, headers http.Header) *Error {
	return &Error{
		Kind:       KindAPI,
		Message:    fmt.Sprintf("Invalid response body from API: %s (HTTP response code was %d)", Summarize(body), status),
		HTTPBody:   body,
		HTTPStatus: status,
		Headers:    headers,
		RequestID:  RequestID(headers),
	}
}

// Connectivity wraps a failed round trip
func Connectivity(err error) *Error {
	return &Error{
		Kind:    KindConnectivity,
		Message: fmt.Sprintf("%s\n\n(Network error: %T: %v)", connectivitySummary, err, err),
		Err:     err,
	}
}

// RequestID returns the request-id response header, matched case-insensitively
func RequestID(headers http.Header) string {
	for key, values := range headers {
		if strings.EqualFold(key, "request-id") && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// Summarize reduces an error body to text suitable for a message. HTML pages
// served by proxies or maintenance screens are stripped down to their text.
func Summarize(body string) string {
	summary := body
	if looksLikeHTML(body) {
		summary = html.UnescapeString(textPolicy.Sanitize(body))
		summary = strings.Join(strings.Fields(summary), " ")
	}

	if r := []rune(summary); len(r) > maxSummaryLength {
		summary = string(r[:maxSummaryLength]) + "..."
	}
	return summary
}

func looksLikeHTML(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body") || strings.Contains(lower, "<!doctype html")
}

func stringField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
