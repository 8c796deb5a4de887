// Package transport performs the HTTP round trips for the Emburse client.
package transport

import (
	"context"
	"net/http"
)

// Transport sends one request and returns the raw response. An error means
// the round trip itself failed; HTTP error statuses are returned as responses.
type Transport interface {
	Send(ctx context.Context, method, url string, headers map[string]string, body []byte) (*Response, error)
	// Name identifies the HTTP library in client diagnostics
	Name() string
}

// Response is a completed round trip
type Response struct {
	Body       []byte
	StatusCode int
	Header     http.Header
}

// ContentType returns the Content-Type header of the response
func (r *Response) ContentType() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}
