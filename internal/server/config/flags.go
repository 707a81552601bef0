package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/fleetdesk/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     bind address (e.g., ":8080")
//	-s string     JWT HMAC secret key
//	-t duration   access token validity (e.g., "30m")
//	-p string     password of the seeded accounts
//	-log string   log level
func parseFlags(cfg *Config) error {
	return parseFlagArgs(cfg, os.Args[1:])
}

func parseFlagArgs(cfg *Config, argv []string) error {
	args := flagx.FilterArgs(argv, []string{"-a", "-s", "-t", "-p", "-log"})

	fs := flag.NewFlagSet("fleetdesk-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.AccessTokenValidityDuration, "t", cfg.AccessTokenValidityDuration, "access token validity")
	fs.StringVar(&cfg.SeedPassword, "p", cfg.SeedPassword, "password of the seeded accounts")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
