// Package apierrors defines the closed set of failures a call to the Emburse
// API can end with, and the classifier that maps HTTP responses onto them.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the class of an Error
type Kind int

const (
	KindAPI Kind = iota
	KindConfiguration
	KindConnectivity
	KindInvalidRequest
	KindAuthentication
	KindPermission
	KindResource
	KindAttribute
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindConfiguration:
		return "configuration"
	case KindConnectivity:
		return "connectivity"
	case KindInvalidRequest:
		return "invalid_request"
	case KindAuthentication:
		return "authentication"
	case KindPermission:
		return "permission"
	case KindResource:
		return "resource"
	case KindAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Error is a failed call. Responses received from the API populate the HTTP
// fields; errors raised before any round trip carry only Kind and Message.
type Error struct {
	Kind       Kind
	Message    string
	Param      string
	HTTPBody   string
	HTTPStatus int
	JSONBody   interface{}
	Headers    http.Header
	RequestID  string
	Err        error

	sentinel bool
}

// Sentinels for errors.Is matching by kind
var (
	ErrAPI            = sentinel(KindAPI)
	ErrConfiguration  = sentinel(KindConfiguration)
	ErrConnectivity   = sentinel(KindConnectivity)
	ErrInvalidRequest = sentinel(KindInvalidRequest)
	ErrAuthentication = sentinel(KindAuthentication)
	ErrPermission     = sentinel(KindPermission)
	ErrResource       = sentinel(KindResource)
	ErrAttribute      = sentinel(KindAttribute)
)

func sentinel(kind Kind) *Error {
	return &Error{Kind: kind, Message: kind.String() + " error", sentinel: true}
}

// New creates an error of the given kind that never reached the API
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error renders the message, prefixed with the request id when one is known
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = "<empty message>"
	}
	if e.RequestID != "" {
		return fmt.Sprintf("Request %s: %s", e.RequestID, msg)
	}
	return msg
}

// Unwrap exposes the underlying transport failure, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or false when err is not an *Error
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}
