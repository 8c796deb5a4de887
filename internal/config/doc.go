// Package config provides configuration for the Emburse client.
//
// Configuration is loaded from environment variables with defaults, or from a
// YAML/TOML file with environment variables layered on top.
//
// Configuration Sections:
//   - Auth: API token
//   - API: base URL and API version
//   - HTTP: timeout, proxy, TLS verification and rate limit
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg, err := config.LoadFile("emburse.yaml")
//	if err != nil {
//		return err
//	}
//	fmt.Println(cfg.APIBase())
//
// Environment Variables:
//   - EMBURSE_AUTH_TOKEN
//   - EMBURSE_API_BASE_URL, EMBURSE_API_VERSION
//   - EMBURSE_HTTP_TIMEOUT, EMBURSE_HTTP_PROXY, EMBURSE_HTTP_VERIFY_SSL, EMBURSE_HTTP_RATE_LIMIT
//   - EMBURSE_LOG_LEVEL, EMBURSE_LOG_DEVELOPMENT
package config
