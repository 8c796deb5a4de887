package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MarcFord/emburse-go/internal/apierrors"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout applies when Config.Timeout is unset
	DefaultTimeout = 80 * time.Second

	restyName = "resty"
)

// Config configures the default resty transport
type Config struct {
	Timeout time.Duration
	// Proxy is an http or https URL used for every request
	Proxy     string
	VerifySSL bool
	// RateLimit caps requests per second; zero or less is unlimited
	RateLimit float64
	// Breaker enables short-circuiting after repeated connectivity failures
	Breaker *BreakerSettings
	// RoundTripper replaces the default net/http transport. Proxy and
	// VerifySSL must then be handled by the round tripper itself.
	RoundTripper http.RoundTripper
	// TracerProvider enables OpenTelemetry client spans when set
	TracerProvider trace.TracerProvider
}

// DefaultConfig returns production transport settings
func DefaultConfig() Config {
	return Config{
		Timeout:   DefaultTimeout,
		VerifySSL: true,
	}
}

// Resty is the default Transport, backed by go-resty
type Resty struct {
	client  *resty.Client
	limiter *rate.Limiter
	breaker *Breaker
}

// NewResty builds a resty transport. Retries are disabled: every Send is
// exactly one round trip.
func NewResty(cfg Config) (*Resty, error) {
	base := cfg.RoundTripper
	if base == nil {
		std, err := stdTransport(cfg)
		if err != nil {
			return nil, err
		}
		base = std
	} else if cfg.Proxy != "" {
		return nil, apierrors.New(apierrors.KindConfiguration, "a proxy cannot be combined with a custom round tripper")
	}

	if cfg.TracerProvider != nil {
		base = otelhttp.NewTransport(base,
			otelhttp.WithTracerProvider(cfg.TracerProvider),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "emburse " + r.Method
			}),
		)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetTransport(base).
		SetTimeout(timeout).
		SetRetryCount(0)

	r := &Resty{
		client:  client,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	if cfg.Breaker != nil {
		r.breaker = NewBreaker(*cfg.Breaker)
	}
	return r, nil
}

func stdTransport(cfg Config) (*http.Transport, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.Proxy != "" {
		proxyURL, err := ParseProxy(cfg.Proxy)
		if err != nil {
			return nil, err
		}
		t.Proxy = http.ProxyURL(proxyURL)
	}

	if !cfg.VerifySSL {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return t, nil
}

// ParseProxy validates a proxy URL
func ParseProxy(proxy string) (*url.URL, error) {
	parsed, err := url.Parse(proxy)
	if err != nil {
		return nil, apierrors.New(apierrors.KindConfiguration, "invalid proxy URL %q: %v", proxy, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, apierrors.New(apierrors.KindConfiguration, "proxy must be specified as an http or https URL, got %q", proxy)
	}
	if parsed.Host == "" {
		return nil, apierrors.New(apierrors.KindConfiguration, "proxy URL %q has no host", proxy)
	}
	return parsed, nil
}

// Name returns the HTTP library name
func (r *Resty) Name() string {
	return restyName
}

// BreakerState returns the breaker state, or closed when no breaker is configured
func (r *Resty) BreakerState() State {
	if r.breaker == nil {
		return StateClosed
	}
	return r.breaker.State()
}

// Send performs one round trip with rate limiting and breaker protection
func (r *Resty) Send(ctx context.Context, method, rawURL string, headers map[string]string, body []byte) (*Response, error) {
	// Wait for rate limiter
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	var resp *resty.Response
	do := func() error {
		req := r.client.R().SetContext(ctx).SetHeaders(headers)
		if body != nil {
			req.SetBody(body)
		}

		var err error
		resp, err = req.Execute(strings.ToUpper(method), rawURL)
		return err
	}

	var err error
	if r.breaker != nil {
		err = r.breaker.Execute(do)
	} else {
		err = do()
	}
	if err != nil {
		return nil, err
	}

	return &Response{
		Body:       resp.Body(),
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
	}, nil
}
