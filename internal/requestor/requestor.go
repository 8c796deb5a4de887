// Package requestor turns one logical API call into one HTTP round trip:
// encode parameters, attach credentials, send, parse and classify.
package requestor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MarcFord/emburse-go/internal/apierrors"
	"github.com/MarcFord/emburse-go/internal/encoding"
	"github.com/MarcFord/emburse-go/internal/id"
	"github.com/MarcFord/emburse-go/internal/logging"
	"github.com/MarcFord/emburse-go/internal/monitoring"
	"github.com/MarcFord/emburse-go/internal/transport"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Config configures a Requestor
type Config struct {
	// BaseURL is the versioned API root, e.g. https://api.emburse.com/v1
	BaseURL   string
	Token     string
	Transport transport.Transport
	Logger    *zap.Logger
	Metrics   *monitoring.Metrics
}

// Requestor performs authenticated calls against the Emburse API. It is safe
// for concurrent use; the token may be swapped between calls.
type Requestor struct {
	baseURL   string
	transport transport.Transport
	logger    *zap.Logger
	metrics   *monitoring.Metrics

	mu    sync.RWMutex
	token string
}

// New creates a Requestor
func New(cfg Config) *Requestor {
	return &Requestor{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		transport: cfg.Transport,
		logger:    logging.OrNop(cfg.Logger),
		metrics:   cfg.Metrics,
		token:     cfg.Token,
	}
}

// WithToken returns a Requestor sharing this one's transport, logger and
// metrics but authenticating with token
func (r *Requestor) WithToken(token string) *Requestor {
	return &Requestor{
		baseURL:   r.baseURL,
		transport: r.transport,
		logger:    r.logger,
		metrics:   r.metrics,
		token:     token,
	}
}

// Token returns the current auth token
func (r *Requestor) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

// SetToken replaces the auth token used by subsequent calls
func (r *Requestor) SetToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
}

// BaseURL returns the versioned API root
func (r *Requestor) BaseURL() string {
	return r.baseURL
}

// Perform calls the API and returns the parsed JSON object together with the
// token that authenticated the call. Values are returned exactly as parsed.
func (r *Requestor) Perform(ctx context.Context, method, path string, params map[string]interface{}, headers map[string]string) (map[string]interface{}, string, error) {
	resp, token, err := r.send(ctx, method, path, params, headers)
	if err != nil {
		return nil, token, r.fail(method, err)
	}

	obj, err := interpret(resp)
	if err != nil {
		return nil, token, r.fail(method, err)
	}
	return obj, token, nil
}

// PerformRaw calls the API and returns the raw response of a successful
// call. Failed calls are classified exactly as in Perform.
func (r *Requestor) PerformRaw(ctx context.Context, method, path string, params map[string]interface{}, headers map[string]string) (*transport.Response, string, error) {
	resp, token, err := r.send(ctx, method, path, params, headers)
	if err != nil {
		return nil, token, r.fail(method, err)
	}

	if !success(resp.StatusCode) {
		text := decodeText(resp.Body, resp.ContentType())
		var parsed interface{}
		if err := sonic.ConfigStd.UnmarshalFromString(text, &parsed); err != nil {
			return nil, token, r.fail(method, apierrors.InvalidBody(resp.StatusCode, text, resp.Header))
		}
		return nil, token, r.fail(method, apierrors.Classify(resp.StatusCode, text, parsed, resp.Header))
	}
	return resp, token, nil
}

func (r *Requestor) send(ctx context.Context, method, path string, params map[string]interface{}, supplied map[string]string) (*transport.Response, string, error) {
	token := r.Token()
	if token == "" {
		return nil, "", apierrors.New(apierrors.KindAttribute, "Auth Token not set!")
	}
	if r.transport == nil {
		return nil, token, apierrors.New(apierrors.KindConfiguration, "no transport configured")
	}

	absURL := r.baseURL + path
	var body []byte

	switch strings.ToLower(method) {
	case "get", "delete":
		if len(params) > 0 {
			query := encoding.QueryString(encoding.EncodeQuery(params))
			merged, err := encoding.MergeQuery(absURL, query)
			if err != nil {
				return nil, token, apierrors.New(apierrors.KindConfiguration, "%v", err)
			}
			absURL = merged
		}
	case "post", "put":
		if len(supplied) == 0 {
			supplied = map[string]string{"Content-Type": "application/json"}
		}
		data, err := sonic.ConfigStd.Marshal(encoding.EncodeBody(params))
		if err != nil {
			return nil, token, apierrors.New(apierrors.KindConfiguration, "failed to encode request body: %v", err)
		}
		body = data
	default:
		return nil, token, apierrors.New(apierrors.KindConfiguration, "Unrecognized HTTP method %q", method)
	}

	headers := map[string]string{
		"X-Client-User-Agent": clientUserAgent(r.transport.Name()),
		"User-Agent":          UserAgent,
		"Authorization":       "Token " + token,
	}
	for k, v := range supplied {
		headers[k] = v
	}

	verb := strings.ToUpper(method)
	clientID := id.NewRequestID()
	start := time.Now()

	resp, err := r.transport.Send(ctx, verb, absURL, headers, body)
	duration := time.Since(start)
	if err != nil {
		r.logger.Warn("Emburse request failed",
			zap.String("method", verb),
			zap.String("url", absURL),
			zap.String("client_request_id", clientID),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, token, apierrors.Connectivity(err)
	}

	r.metrics.RecordResponse(verb, resp.StatusCode, len(resp.Body), duration)
	r.logger.Info(verb+" "+absURL+" "+strconv.Itoa(resp.StatusCode),
		zap.String("method", verb),
		zap.String("url", absURL),
		zap.Int("status", resp.StatusCode),
		zap.String("client_request_id", clientID),
		zap.String("request_id", apierrors.RequestID(resp.Header)),
		zap.Duration("duration", duration),
	)
	if ce := r.logger.Check(zap.DebugLevel, "API response"); ce != nil {
		ce.Write(
			zap.String("url", absURL),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body),
		)
	}

	return resp, token, nil
}

// interpret parses a response body into a JSON object, classifying failures
func interpret(resp *transport.Response) (map[string]interface{}, error) {
	text := decodeText(resp.Body, resp.ContentType())

	if success(resp.StatusCode) && strings.TrimSpace(text) == "" {
		return map[string]interface{}{}, nil
	}

	var parsed interface{}
	if err := sonic.ConfigStd.UnmarshalFromString(text, &parsed); err != nil {
		return nil, apierrors.InvalidBody(resp.StatusCode, text, resp.Header)
	}

	if !success(resp.StatusCode) {
		return nil, apierrors.Classify(resp.StatusCode, text, parsed, resp.Header)
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, &apierrors.Error{
			Kind:       apierrors.KindAPI,
			Message:    fmt.Sprintf("Invalid response object from API: expected a JSON object (HTTP response code was %d)", resp.StatusCode),
			HTTPBody:   text,
			HTTPStatus: resp.StatusCode,
			JSONBody:   parsed,
			Headers:    resp.Header,
			RequestID:  apierrors.RequestID(resp.Header),
		}
	}
	return obj, nil
}

func (r *Requestor) fail(method string, err error) error {
	if kind, ok := apierrors.KindOf(err); ok {
		r.metrics.RecordError(strings.ToUpper(method), kind.String())
	}
	return err
}

func success(status int) bool {
	return status >= 200 && status < 300
}
