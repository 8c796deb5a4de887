package apierrors

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailBody(message, param string) map[string]interface{} {
	return map[string]interface{}{
		"detail": map[string]interface{}{"message": message, "param": param},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
		param  string
	}{
		{status: 400, kind: KindInvalidRequest, param: "name"},
		{status: 404, kind: KindInvalidRequest, param: "name"},
		{status: 401, kind: KindAuthentication},
		{status: 403, kind: KindPermission},
		{status: 500, kind: KindAPI},
		{status: 502, kind: KindAPI},
		{status: 409, kind: KindAPI},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := Classify(tt.status, `{"detail":{}}`, detailBody("boom", "name"), nil)

			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, "boom", err.Message)
			assert.Equal(t, tt.param, err.Param)
			assert.Equal(t, tt.status, err.HTTPStatus)
		})
	}
}

func TestClassifyWithoutDetail(t *testing.T) {
	t.Run("missing detail", func(t *testing.T) {
		err := Classify(400, `{"error":"nope"}`, map[string]interface{}{"error": "nope"}, nil)

		assert.Equal(t, KindAPI, err.Kind)
		assert.Contains(t, err.Message, "Invalid response object from API")
		assert.Contains(t, err.Message, "(HTTP response code was 400)")
		assert.Equal(t, `{"error":"nope"}`, err.HTTPBody)
	})

	t.Run("detail is not an object", func(t *testing.T) {
		err := Classify(401, `{"detail":"denied"}`, map[string]interface{}{"detail": "denied"}, nil)
		assert.Equal(t, KindAPI, err.Kind)
	})

	t.Run("non-object body", func(t *testing.T) {
		err := Classify(500, `[1,2]`, []interface{}{1.0, 2.0}, nil)
		assert.Equal(t, KindAPI, err.Kind)
	})
}

func TestRequestID(t *testing.T) {
	headers := http.Header{}
	headers.Set("Request-Id", "req_123")
	assert.Equal(t, "req_123", RequestID(headers))

	raw := http.Header{"request-id": []string{"req_456"}}
	assert.Equal(t, "req_456", RequestID(raw))

	assert.Equal(t, "", RequestID(nil))

	err := Classify(404, "{}", detailBody("missing", "id"), raw)
	assert.Equal(t, "req_456", err.RequestID)
	assert.Equal(t, "Request req_456: missing", err.Error())
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "plain", (&Error{Message: "plain"}).Error())
	assert.Equal(t, "<empty message>", (&Error{}).Error())
	assert.Equal(t, "Request r1: <empty message>", (&Error{RequestID: "r1"}).Error())
}

func TestErrorsIs(t *testing.T) {
	err := fmt.Errorf("listing cards: %w", Classify(403, "{}", detailBody("no", ""), nil))

	assert.True(t, errors.Is(err, ErrPermission))
	assert.False(t, errors.Is(err, ErrAuthentication))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindPermission, kind)

	_, ok = KindOf(errors.New("other"))
	assert.False(t, ok)

	a := New(KindAttribute, "id missing")
	b := New(KindAttribute, "id missing")
	assert.False(t, errors.Is(a, b))
	assert.True(t, errors.Is(a, ErrAttribute))
}

func TestConnectivity(t *testing.T) {
	cause := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := Connectivity(cause)

	assert.Equal(t, KindConnectivity, err.Kind)
	assert.True(t, strings.HasPrefix(err.Message, "Unexpected error communicating with Emburse."))
	assert.Contains(t, err.Message, "(Network error: *net.OpError: dial tcp: connection refused)")
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConnectivity)
}

func TestSummarize(t *testing.T) {
	page := `<!DOCTYPE html><html><head><style>body{color:red}</style><title>Down</title></head>
<body><h1>503 Service Unavailable</h1><p>Back soon &amp; thanks</p></body></html>`

	summary := Summarize(page)
	assert.NotContains(t, summary, "<h1>")
	assert.Contains(t, summary, "503 Service Unavailable")
	assert.Contains(t, summary, "Back soon & thanks")

	assert.Equal(t, `{"a":1}`, Summarize(`{"a":1}`))

	long := strings.Repeat("x", maxSummaryLength+10)
	assert.Len(t, Summarize(long), maxSummaryLength+3)

	err := InvalidBody(502, page, nil)
	assert.Equal(t, KindAPI, err.Kind)
	assert.Equal(t, page, err.HTTPBody)
	assert.Contains(t, err.Message, "(HTTP response code was 502)")
}
