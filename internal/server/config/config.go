// Package config handles configuration for the mock admin API server:
// defaults, a JSON overlay, the environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the mock server.
//
// Fields:
//   - HTTPAddr: bind address of the REST endpoint.
//   - BasePath: prefix every API route is mounted under.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - SeedPassword: password of the seeded accounts.
type Config struct {
	HTTPAddr                    string
	BasePath                    string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	SeedPassword                string
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure and should be overridden outside local use.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.BasePath = "/api/v1"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = time.Hour
	c.SeedPassword = "fleetdesk"
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
