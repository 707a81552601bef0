package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// envConfig mirrors the FLEETDESK_* variables. Unset variables stay nil.
type envConfig struct {
	APIURL         *string        `env:"FLEETDESK_API_URL"`
	ViteAPIURL     *string        `env:"VITE_API_URL"`
	MapsAPIKey     *string        `env:"FLEETDESK_MAPS_API_KEY"`
	ViteMapsAPIKey *string        `env:"VITE_GOOGLE_MAPS_API_KEY"`
	RequestTimeout *time.Duration `env:"FLEETDESK_REQUEST_TIMEOUT"`
	CacheTTL       *time.Duration `env:"FLEETDESK_CACHE_TTL"`
	LegacyAuth     *bool          `env:"FLEETDESK_LEGACY_AUTH_MESSAGE_MATCH"`
	StoreDriver    *string        `env:"FLEETDESK_STORE_DRIVER"`
	StoreDSN       *string        `env:"FLEETDESK_STORE_DSN"`
	RedisAddr      *string        `env:"FLEETDESK_REDIS_ADDR"`
	RedisDB        *int           `env:"FLEETDESK_REDIS_DB"`
	RedisPrefix    *string        `env:"FLEETDESK_REDIS_PREFIX"`
	LogLevel       *string        `env:"FLEETDESK_LOG_LEVEL"`
	LogFormat      *string        `env:"FLEETDESK_LOG_FORMAT"`
	AbsenceDelay   *time.Duration `env:"FLEETDESK_ABSENCE_DELAY"`
}

// parseEnv overlays cfg with the environment. Variables from the dotenv
// file apply only where the process environment does not set them.
func parseEnv(cfg *Config) error {
	dotenv, err := readDotenv(flagx.EnvFileFlags())
	if err != nil {
		return err
	}
	return applyEnv(cfg, envconfig.MultiLookuper(envconfig.OsLookuper(), envconfig.MapLookuper(dotenv)))
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, lookuper envconfig.Lookuper) error {
	var ec envConfig
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:        &ec,
		Lookuper:      lookuper,
		DefaultNoInit: true,
	})
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	setString(&cfg.APIURL, firstSet(ec.APIURL, ec.ViteAPIURL))
	setString(&cfg.MapsAPIKey, firstSet(ec.MapsAPIKey, ec.ViteMapsAPIKey))
	setString(&cfg.StoreDriver, ec.StoreDriver)
	setString(&cfg.StoreDSN, ec.StoreDSN)
	setString(&cfg.RedisAddr, ec.RedisAddr)
	setString(&cfg.RedisPrefix, ec.RedisPrefix)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogFormat, ec.LogFormat)

	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.CacheTTL != nil {
		cfg.CacheTTL = *ec.CacheTTL
	}
	if ec.AbsenceDelay != nil {
		cfg.AbsenceDelay = *ec.AbsenceDelay
	}
	if ec.RedisDB != nil {
		cfg.RedisDB = *ec.RedisDB
	}
	if ec.LegacyAuth != nil {
		cfg.LegacyAuthMessageMatch = *ec.LegacyAuth
	}
	return nil
}

func firstSet(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
