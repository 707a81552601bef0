package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fleetdesk/internal/flagx"
	"github.com/dmitrijs2005/fleetdesk/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Pointers tell
// "absent" apart from zero so a partial file only overrides what it names.
type JsonConfig struct {
	APIURL                 *string         `json:"api_url"`
	MapsAPIKey             *string         `json:"maps_api_key"`
	RequestTimeout         *timex.Duration `json:"request_timeout"`
	CacheTTL               *timex.Duration `json:"cache_ttl"`
	LegacyAuthMessageMatch *bool           `json:"legacy_auth_message_match"`
	StoreDriver            *string         `json:"store_driver"`
	StoreDSN               *string         `json:"store_dsn"`
	RedisAddr              *string         `json:"redis_addr"`
	RedisDB                *int            `json:"redis_db"`
	RedisPrefix            *string         `json:"redis_prefix"`
	LogLevel               *string         `json:"log_level"`
	LogFormat              *string         `json:"log_format"`
	AbsenceDelay           *timex.Duration `json:"absence_delay"`
}

// parseJson overlays cfg with the JSON file given by -c/-config, if any.
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

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.MapsAPIKey, jc.MapsAPIKey)
	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.StoreDSN, jc.StoreDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CacheTTL != nil {
		cfg.CacheTTL = jc.CacheTTL.Duration
	}
	if jc.AbsenceDelay != nil {
		cfg.AbsenceDelay = jc.AbsenceDelay.Duration
	}
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.LegacyAuthMessageMatch != nil {
		cfg.LegacyAuthMessageMatch = *jc.LegacyAuthMessageMatch
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
