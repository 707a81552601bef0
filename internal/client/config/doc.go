// Package config loads runtime configuration for the fleetdesk console.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment, including a dotenv file (-env, default ".env"); real
//     environment variables win over the file.
//  4. Command-line flags.
//
// Environment
//
//	FLEETDESK_API_URL          API base URL (VITE_API_URL is accepted too)
//	FLEETDESK_MAPS_API_KEY     maps key (VITE_GOOGLE_MAPS_API_KEY), carried only
//	FLEETDESK_REQUEST_TIMEOUT  per-request timeout, e.g. "3m"
//	FLEETDESK_CACHE_TTL        GET cache TTL, "0" disables
//	FLEETDESK_STORE_DRIVER     sqlite | redis | memory
//	FLEETDESK_STORE_DSN        SQLite path
//	FLEETDESK_REDIS_ADDR, FLEETDESK_REDIS_DB, FLEETDESK_REDIS_PREFIX
//	FLEETDESK_LOG_LEVEL, FLEETDESK_LOG_FORMAT
//	FLEETDESK_ABSENCE_DELAY    guard's wait before "no session" redirect
//
// Flags
//
//	-a string     API base URL
//	-t duration   request timeout
//	-store string storage driver
//	-dsn string   SQLite path
//	-log string   log level
//
// # JSON schema
//
//	{
//	  "api_url": "http://127.0.0.1:8080/api/v1",
//	  "request_timeout": "3m",
//	  "cache_ttl": "30s",
//	  "store_driver": "sqlite",
//	  "store_dsn": "/home/me/.config/fleetdesk/session.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "absence_delay": "1s",
//	  "legacy_auth_message_match": false
//	}
package config
