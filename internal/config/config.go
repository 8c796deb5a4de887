package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MarcFord/emburse-go/internal/apierrors"
	"github.com/MarcFord/emburse-go/internal/logging"
	"github.com/MarcFord/emburse-go/internal/transport"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all client configuration.
type Config struct {
	Auth    AuthConfig `koanf:"auth"`
	API     APIConfig  `koanf:"api"`
	HTTP    HTTPConfig `koanf:"http"`
	Logging LogConfig  `koanf:"log"`
}

// AuthConfig holds the API credentials.
type AuthConfig struct {
	Token string `envconfig:"EMBURSE_AUTH_TOKEN" koanf:"token"`
}

// APIConfig holds the API location.
type APIConfig struct {
	BaseURL string `envconfig:"EMBURSE_API_BASE_URL" default:"https://api.emburse.com" koanf:"base_url"`
	Version string `envconfig:"EMBURSE_API_VERSION" default:"v1" koanf:"version"`
}

// HTTPConfig holds transport configuration.
type HTTPConfig struct {
	Timeout   time.Duration `envconfig:"EMBURSE_HTTP_TIMEOUT" default:"80s" koanf:"timeout"`
	Proxy     string        `envconfig:"EMBURSE_HTTP_PROXY" koanf:"proxy"`
	VerifySSL bool          `envconfig:"EMBURSE_HTTP_VERIFY_SSL" default:"true" koanf:"verify_ssl"`
	RateLimit float64       `envconfig:"EMBURSE_HTTP_RATE_LIMIT" default:"0" koanf:"rate_limit"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"EMBURSE_LOG_LEVEL" default:"off" koanf:"level"`
	Development bool   `envconfig:"EMBURSE_LOG_DEVELOPMENT" default:"false" koanf:"development"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.emburse.com",
			Version: "v1",
		},
		HTTP: HTTPConfig{
			Timeout:   transport.DefaultTimeout,
			VerifySSL: true,
		},
		Logging: LogConfig{
			Level: "off",
		},
	}
}

// APIBase returns the versioned API root, e.g. https://api.emburse.com/v1
func (c *Config) APIBase() string {
	return strings.TrimRight(c.API.BaseURL, "/") + "/" + strings.Trim(c.API.Version, "/")
}

// Validate checks the configuration without contacting the API. A missing
// token is not an error here: it is checked on every call.
func (c *Config) Validate() error {
	base, err := url.Parse(c.API.BaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return apierrors.New(apierrors.KindConfiguration, "invalid API base URL %q", c.API.BaseURL)
	}
	if strings.Trim(c.API.Version, "/") == "" {
		return apierrors.New(apierrors.KindConfiguration, "API version must not be empty")
	}
	if c.HTTP.Timeout < 0 {
		return apierrors.New(apierrors.KindConfiguration, "HTTP timeout must not be negative")
	}
	if c.HTTP.RateLimit < 0 {
		return apierrors.New(apierrors.KindConfiguration, "HTTP rate limit must not be negative")
	}
	if c.HTTP.Proxy != "" {
		if _, err := transport.ParseProxy(c.HTTP.Proxy); err != nil {
			return err
		}
	}
	return nil
}

// Transport returns the transport settings described by the configuration
func (c *Config) Transport() transport.Config {
	tc := transport.DefaultConfig()
	if c.HTTP.Timeout > 0 {
		tc.Timeout = c.HTTP.Timeout
	}
	tc.Proxy = c.HTTP.Proxy
	tc.VerifySSL = c.HTTP.VerifySSL
	tc.RateLimit = c.HTTP.RateLimit
	return tc
}

// Logger returns the logger settings described by the configuration
func (c *Config) Logger() logging.Config {
	lc := logging.DefaultConfig()
	if c.Logging.Development {
		lc = logging.DevelopmentConfig()
	}
	if c.Logging.Level != "" {
		lc.Level = c.Logging.Level
	}
	return lc
}
