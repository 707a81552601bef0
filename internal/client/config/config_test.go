package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"fleetdesk"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8080/api/v1", c.APIURL)
	assert.Equal(t, 3*time.Minute, c.RequestTimeout)
	assert.Equal(t, time.Second, c.AbsenceDelay)
	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.NotEmpty(t, c.StoreDSN)
	assert.False(t, c.LegacyAuthMessageMatch)
}

func TestParseJson_PartialOverride(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"api_url":"https://api.fleet.io/v2","request_timeout":"45s","cache_ttl":1000000000,"redis_db":3}`)
	withArgs(t, "-c", path)

	got := defaults()
	require.NoError(t, parseJson(&got))

	want := defaults()
	want.APIURL = "https://api.fleet.io/v2"
	want.RequestTimeout = 45 * time.Second
	want.CacheTTL = time.Second
	want.RedisDB = 3
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJson_NoFlag(t *testing.T) {
	withArgs(t)
	got := defaults()
	require.NoError(t, parseJson(&got))
	assert.Empty(t, cmp.Diff(defaults(), got))
}

func TestParseJson_Errors(t *testing.T) {
	withArgs(t, "-config", filepath.Join(t.TempDir(), "missing.json"))
	c := defaults()
	assert.Error(t, parseJson(&c))

	withArgs(t, "-config", writeFile(t, "bad.json", `{"request_timeout":"soon"}`))
	assert.Error(t, parseJson(&c))
}

func TestApplyEnv(t *testing.T) {
	got := defaults()
	err := applyEnv(&got, envconfig.MapLookuper(map[string]string{
		"VITE_API_URL":              "https://vite.example/api",
		"VITE_GOOGLE_MAPS_API_KEY":  "maps-key",
		"FLEETDESK_STORE_DRIVER":    "redis",
		"FLEETDESK_REDIS_DB":        "2",
		"FLEETDESK_ABSENCE_DELAY":   "250ms",
		"FLEETDESK_REQUEST_TIMEOUT": "10s",
		"FLEETDESK_LOG_FORMAT":      "console",
	}))
	require.NoError(t, err)

	want := defaults()
	want.APIURL = "https://vite.example/api"
	want.MapsAPIKey = "maps-key"
	want.StoreDriver = "redis"
	want.RedisDB = 2
	want.AbsenceDelay = 250 * time.Millisecond
	want.RequestTimeout = 10 * time.Second
	want.LogFormat = "console"
	assert.Empty(t, cmp.Diff(want, got))
}

func TestApplyEnv_FleetdeskWinsOverVite(t *testing.T) {
	got := defaults()
	require.NoError(t, applyEnv(&got, envconfig.MapLookuper(map[string]string{
		"FLEETDESK_API_URL": "https://primary",
		"VITE_API_URL":      "https://vite",
	})))
	assert.Equal(t, "https://primary", got.APIURL)
}

func TestApplyEnv_BadValue(t *testing.T) {
	c := defaults()
	err := applyEnv(&c, envconfig.MapLookuper(map[string]string{"FLEETDESK_CACHE_TTL": "forever"}))
	assert.Error(t, err)
}

func TestParseEnv_DotenvAndProcessEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "FLEETDESK_API_URL=https://from-file\nFLEETDESK_LOG_LEVEL=debug\n")
	withArgs(t, "-env", envFile)
	t.Setenv("FLEETDESK_LOG_LEVEL", "warn")

	got := defaults()
	require.NoError(t, parseEnv(&got))
	assert.Equal(t, "https://from-file", got.APIURL)
	assert.Equal(t, "warn", got.LogLevel)
}

func TestParseEnv_MissingDotenvIsFine(t *testing.T) {
	withArgs(t, "-env", filepath.Join(t.TempDir(), "none.env"))
	c := defaults()
	assert.NoError(t, parseEnv(&c))
}

func TestParseFlagArgs(t *testing.T) {
	got := defaults()
	err := parseFlagArgs(&got, []string{"-a", "http://localhost:9000", "-unrelated", "x", "-t=30s", "-store", "memory", "-log", "debug"})
	require.NoError(t, err)

	want := defaults()
	want.APIURL = "http://localhost:9000"
	want.RequestTimeout = 30 * time.Second
	want.StoreDriver = "memory"
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(want, got))
}

func TestLoadConfig_Precedence(t *testing.T) {
	jsonPath := writeFile(t, "cfg.json", `{"api_url":"https://json","log_level":"error","store_driver":"memory"}`)
	withArgs(t, "-c", jsonPath, "-env", filepath.Join(t.TempDir(), "none.env"), "-a", "https://flag")
	t.Setenv("FLEETDESK_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://flag", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "memory", cfg.StoreOptions().Driver)
}
