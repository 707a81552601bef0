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

type envConfig struct {
	HTTPAddr     *string        `env:"FLEETDESK_SERVER_ADDR"`
	BasePath     *string        `env:"FLEETDESK_SERVER_BASE_PATH"`
	SecretKey    *string        `env:"FLEETDESK_JWT_SECRET"`
	TokenTTL     *time.Duration `env:"FLEETDESK_TOKEN_TTL"`
	SeedPassword *string        `env:"FLEETDESK_SEED_PASSWORD"`
	LogLevel     *string        `env:"FLEETDESK_LOG_LEVEL"`
	LogFormat    *string        `env:"FLEETDESK_LOG_FORMAT"`
}

func parseEnv(cfg *Config) error {
	dotenv, err := godotenv.Read(flagx.EnvFileFlags())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read env file: %w", err)
	}
	return applyEnv(cfg, envconfig.MultiLookuper(envconfig.OsLookuper(), envconfig.MapLookuper(dotenv)))
}

func applyEnv(cfg *Config, lookuper envconfig.Lookuper) error {
	var ec envConfig
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:        &ec,
		Lookuper:      lookuper,
		DefaultNoInit: true,
	}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	setString(&cfg.HTTPAddr, ec.HTTPAddr)
	setString(&cfg.BasePath, ec.BasePath)
	setString(&cfg.SecretKey, ec.SecretKey)
	setString(&cfg.SeedPassword, ec.SeedPassword)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogFormat, ec.LogFormat)
	if ec.TokenTTL != nil {
		cfg.AccessTokenValidityDuration = *ec.TokenTTL
	}
	return nil
}
