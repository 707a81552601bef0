package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/fleetdesk/internal/flagx"
)

// parseFlags overlays cfg with the flags this package owns; everything else
// on the command line is ignored (see flagx.FilterArgs).
func parseFlags(cfg *Config) error {
	return parseFlagArgs(cfg, os.Args[1:])
}

func parseFlagArgs(cfg *Config, argv []string) error {
	args := flagx.FilterArgs(argv, []string{"-a", "-t", "-store", "-dsn", "-log"})

	fs := flag.NewFlagSet("fleetdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "API base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "session storage driver (sqlite, redis, memory)")
	fs.StringVar(&cfg.StoreDSN, "dsn", cfg.StoreDSN, "SQLite session database path")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level (debug, info, warn, error)")

	return fs.Parse(args)
}
