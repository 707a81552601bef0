package storage

import (
	"context"
	"fmt"
	"strings"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures a Store backend.
type Options struct {
	Driver string

	// DSN is the SQLite file path (or any modernc.org/sqlite DSN).
	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RedisPrefix namespaces the session hash, e.g. "fleetdesk:alice".
	RedisPrefix string
}

// Open returns the Store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case "", DriverSQLite:
		return OpenSQLite(ctx, opts.DSN)
	case DriverRedis:
		return OpenRedis(ctx, opts)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
