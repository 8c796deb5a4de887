// Package emburse is a client for the Emburse expense-management API.
//
// A Client hands out resource handles bound to its auth token:
//
//	client, err := emburse.New("tok_...")
//	cards, err := client.Card().List(ctx, emburse.Params{"state": "active"})
//
// Every call takes a context and returns an *Error on failure.
package emburse

import (
	"net/http"
	"time"

	"github.com/MarcFord/emburse-go/internal/config"
	"github.com/MarcFord/emburse-go/internal/logging"
	"github.com/MarcFord/emburse-go/internal/monitoring"
	"github.com/MarcFord/emburse-go/internal/requestor"
	"github.com/MarcFord/emburse-go/internal/transport"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultBaseURL is the API host; the API version is appended to it
const DefaultBaseURL = "https://api.emburse.com"

// Transport performs HTTP round trips for a Client
type Transport = transport.Transport

// Client is safe for concurrent use
type Client struct {
	requestor *requestor.Requestor
}

type settings struct {
	cfg            *config.Config
	transport      transport.Transport
	roundTripper   http.RoundTripper
	breaker        *transport.BreakerSettings
	tracerProvider trace.TracerProvider
	logger         *zap.Logger
	registerer     prometheus.Registerer
}

// Option configures a Client
type Option func(*settings)

// WithBaseURL sets the API host, e.g. https://api.emburse.com
func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.cfg.API.BaseURL = baseURL }
}

// WithAPIVersion sets the API version path segment
func WithAPIVersion(version string) Option {
	return func(s *settings) { s.cfg.API.Version = version }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.cfg.HTTP.Timeout = d }
}

// WithProxy routes requests through an http or https proxy
func WithProxy(proxy string) Option {
	return func(s *settings) { s.cfg.HTTP.Proxy = proxy }
}

// WithVerifySSL toggles TLS certificate verification
func WithVerifySSL(verify bool) Option {
	return func(s *settings) { s.cfg.HTTP.VerifySSL = verify }
}

// WithRateLimit caps outgoing requests per second
func WithRateLimit(rps float64) Option {
	return func(s *settings) { s.cfg.HTTP.RateLimit = rps }
}

// WithBreaker short-circuits calls after repeated connectivity failures
func WithBreaker(b transport.BreakerSettings) Option {
	return func(s *settings) { s.breaker = &b }
}

// WithHTTPRoundTripper sends requests through rt instead of the default
// net/http transport. It cannot be combined with WithProxy.
func WithHTTPRoundTripper(rt http.RoundTripper) Option {
	return func(s *settings) { s.roundTripper = rt }
}

// WithTracerProvider records a client span per request. A nil provider
// uses the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) {
		if tp == nil {
			tp = otel.GetTracerProvider()
		}
		s.tracerProvider = tp
	}
}

// WithTransport replaces the HTTP transport entirely. Transport settings
// such as proxy and timeout are then ignored.
func WithTransport(t Transport) Option {
	return func(s *settings) { s.transport = t }
}

// WithLogger sets the logger. Clients log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMetrics registers request metrics on reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *settings) { s.registerer = reg }
}

// New creates a client authenticating with token
func New(token string, opts ...Option) (*Client, error) {
	cfg := config.Default()
	cfg.Auth.Token = token
	return build(cfg, opts)
}

// NewFromEnv creates a client configured from EMBURSE_* environment variables
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return build(cfg, opts)
}

// NewFromFile creates a client configured from a YAML or TOML file, with
// EMBURSE_* environment variables taking precedence
func NewFromFile(path string, opts ...Option) (*Client, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return build(cfg, opts)
}

func build(cfg *config.Config, opts []Option) (*Client, error) {
	s := &settings{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := s.logger
	if logger == nil {
		var err error
		logger, err = logging.New(cfg.Logger())
		if err != nil {
			return nil, err
		}
	}

	tr := s.transport
	if tr == nil {
		tc := cfg.Transport()
		tc.RoundTripper = s.roundTripper
		tc.Breaker = s.breaker
		tc.TracerProvider = s.tracerProvider

		resty, err := transport.NewResty(tc)
		if err != nil {
			return nil, err
		}
		tr = resty
	}

	var metrics *monitoring.Metrics
	if s.registerer != nil {
		metrics = monitoring.NewMetrics(s.registerer)
	}

	c := &Client{
		requestor: requestor.New(requestor.Config{
			BaseURL:   cfg.APIBase(),
			Token:     cfg.Auth.Token,
			Transport: tr,
			Logger:    logger,
			Metrics:   metrics,
		}),
	}
	logger.Debug("Emburse client created",
		zap.String("base_url", cfg.APIBase()),
		zap.String("httplib", tr.Name()),
	)
	return c, nil
}

// Token returns the auth token used for new resource handles
func (c *Client) Token() string {
	return c.requestor.Token()
}

// SetToken replaces the auth token. Objects obtained earlier keep the token
// they were created with.
func (c *Client) SetToken(token string) {
	c.requestor.SetToken(token)
}

// Materialize converts a decoded JSON value into resources bound to this
// client. See the package-level Materialize for the conversion rules.
func (c *Client) Materialize(value interface{}, kind string) interface{} {
	token := c.Token()
	return materialize(value, token, c.requestor.WithToken(token), kind)
}

func (c *Client) handle(kind string) *Object {
	token := c.Token()
	return newObject(kind, token, c.requestor.WithToken(token))
}

func (c *Client) Account() *Account         { return &Account{c.handle("account")} }
func (c *Client) Allowance() *Allowance     { return &Allowance{c.handle("allowance")} }
func (c *Client) Card() *Card               { return &Card{c.handle("card")} }
func (c *Client) Category() *Category       { return &Category{c.handle("category")} }
func (c *Client) Company() *Company         { return &Company{c.handle("company")} }
func (c *Client) Department() *Department   { return &Department{c.handle("department")} }
func (c *Client) Label() *Label             { return &Label{c.handle("label")} }
func (c *Client) Location() *Location       { return &Location{c.handle("location")} }
func (c *Client) Member() *Member           { return &Member{c.handle("member")} }
func (c *Client) SharedLink() *SharedLink   { return &SharedLink{c.handle("shared_link")} }
func (c *Client) Statement() *Statement     { return &Statement{c.handle("statement")} }
func (c *Client) Transaction() *Transaction { return &Transaction{c.handle("transaction")} }
