package config

import (
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/client/storage"
	"github.com/dmitrijs2005/fleetdesk/internal/filex"
)

// Config holds runtime settings for the console.
type Config struct {
	APIURL                 string
	MapsAPIKey             string
	RequestTimeout         time.Duration
	CacheTTL               time.Duration
	LegacyAuthMessageMatch bool

	StoreDriver string
	StoreDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPrefix string

	LogLevel  string
	LogFormat string

	AbsenceDelay time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8080/api/v1"
	c.RequestTimeout = 3 * time.Minute
	c.CacheTTL = 0
	c.StoreDriver = storage.DriverSQLite
	c.StoreDSN = defaultDSN()
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "fleetdesk"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.AbsenceDelay = time.Second
}

func defaultDSN() string {
	p, err := filex.StatePath("session.db")
	if err != nil {
		return "fleetdesk-session.db"
	}
	return p
}

// StoreOptions returns the storage settings.
func (c *Config) StoreOptions() storage.Options {
	return storage.Options{
		Driver:      c.StoreDriver,
		DSN:         c.StoreDSN,
		RedisAddr:   c.RedisAddr,
		RedisDB:     c.RedisDB,
		RedisPrefix: c.RedisPrefix,
	}
}

// LoadConfig builds a Config from defaults, JSON, environment and flags, in
// that order.
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
