// Package testutil provides mocks and fixtures shared by the client's tests.
package testutil

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/MarcFord/emburse-go/internal/apierrors"
	"github.com/MarcFord/emburse-go/internal/transport"
	"github.com/stretchr/testify/mock"
)

// AccountID is the id used by the account fixture
const AccountID = "64745919-0caf-4e6b-8e63-17e7a0d1035e"

// AccountJSON is a single account as returned by GET /accounts/{id}
const AccountJSON = `{
  "id": "64745919-0caf-4e6b-8e63-17e7a0d1035e",
  "url": "https://api.emburse.com/v1/accounts/64745919-0caf-4e6b-8e63-17e7a0d1035e",
  "name": "Pigeonly Operating",
  "number": "880307390512",
  "ledger_balance": "1258.43",
  "available_balance": "1258.43",
  "created_at": "2015-09-12T17:05:03.058556Z"
}`

// CardJSON is a card with nested resources as returned by GET /cards/{id}
const CardJSON = `{
  "id": "a91d0f48-1f40-4b2c-b1a9-5c0f5a3b7f21",
  "url": "https://api.emburse.com/v1/cards/a91d0f48-1f40-4b2c-b1a9-5c0f5a3b7f21",
  "description": "Travel card",
  "last_four": "4242",
  "expiration": "2017-09-30",
  "is_virtual": false,
  "state": "active",
  "category": {
    "id": "c3c1e3b2-1d8a-4a0f-9c1d-2f0b1a7e6d55",
    "name": "Travel",
    "parent": {"id": "0f9e8d7c-6b5a-4f3e-8d2c-1b0a9f8e7d6c", "name": "Operations"}
  },
  "allowance": {
    "interval": "monthly",
    "amount": "500.00",
    "transaction_limit": "250.00"
  },
  "billing_address": {
    "address_1": "123 Main St",
    "city": "Chicago",
    "state": "IL",
    "zip_code": "60601"
  },
  "shared_link": null,
  "created_at": "2016-08-20T00:24:46.609518Z"
}`

// MockTransport is a mock implementation of transport.Transport for testing.
type MockTransport struct {
	mock.Mock
}

// Send mocks the Send method.
func (m *MockTransport) Send(ctx context.Context, method, url string, headers map[string]string, body []byte) (*transport.Response, error) {
	args := m.Called(ctx, method, url, headers, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Response), args.Error(1)
}

// Name mocks the Name method.
func (m *MockTransport) Name() string {
	args := m.Called()
	return args.String(0)
}

// NewMockTransport creates a mock transport that reports itself as "mock".
func NewMockTransport(t *testing.T) *MockTransport {
	t.Helper()
	m := new(MockTransport)
	m.On("Name").Return("mock").Maybe()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ExpectSend registers a single expected round trip returning resp.
func (m *MockTransport) ExpectSend(method, url string, resp *transport.Response) *mock.Call {
	return m.On("Send", mock.Anything, method, url, mock.Anything, mock.Anything).Return(resp, nil).Once()
}

// JSONResponse builds a transport response with a JSON content type.
func JSONResponse(status int, body string) *transport.Response {
	return &transport.Response{
		Body:       []byte(body),
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// SentHeaders returns the headers passed to the n-th Send call.
func (m *MockTransport) SentHeaders(t *testing.T, n int) map[string]string {
	t.Helper()
	sends := m.sends()
	if n >= len(sends) {
		t.Fatalf("only %d Send calls recorded", len(sends))
	}
	return sends[n].Arguments.Get(3).(map[string]string)
}

// SentBody returns the body passed to the n-th Send call.
func (m *MockTransport) SentBody(t *testing.T, n int) []byte {
	t.Helper()
	sends := m.sends()
	if n >= len(sends) {
		t.Fatalf("only %d Send calls recorded", len(sends))
	}
	body, _ := sends[n].Arguments.Get(4).([]byte)
	return body
}

func (m *MockTransport) sends() []mock.Call {
	var calls []mock.Call
	for _, c := range m.Calls {
		if c.Method == "Send" {
			calls = append(calls, c)
		}
	}
	return calls
}

// AssertKind is a helper to assert err is an API error of the given kind.
func AssertKind(t *testing.T, err error, kind apierrors.Kind) *apierrors.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var apiErr *apierrors.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierrors.Error, got %T: %v", err, err)
	}
	if apiErr.Kind != kind {
		t.Fatalf("expected %s error, got %s: %v", kind, apiErr.Kind, apiErr)
	}
	return apiErr
}
