package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fleetdesk/internal/flagx"
	"github.com/dmitrijs2005/fleetdesk/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for intervals, which accepts both "1h" strings and
// integer nanoseconds. Absent keys leave the current value alone.
type JsonConfig struct {
	HTTPAddr                    *string         `json:"http_addr"`
	BasePath                    *string         `json:"base_path"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	SeedPassword                *string         `json:"seed_password"`
	LogLevel                    *string         `json:"log_level"`
	LogFormat                   *string         `json:"log_format"`
}

// parseJson loads the file named by -c/-config, if any.
func parseJson(cfg *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.HTTPAddr, jc.HTTPAddr)
	setString(&cfg.BasePath, jc.BasePath)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.SeedPassword, jc.SeedPassword)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
