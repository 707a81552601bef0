// Package server wires the mock admin API: seeded accounts, the in-memory
// fleet and the REST endpoint, and runs it until the context is cancelled.
package server

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/dmitrijs2005/fleetdesk/internal/server/config"
	"github.com/dmitrijs2005/fleetdesk/internal/server/fleet"
	"github.com/dmitrijs2005/fleetdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/fleetdesk/internal/server/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(logging.Options{Level: c.LogLevel, Format: c.LogFormat, Output: os.Stdout})

	us := users.NewService(users.NewMemoryRepository(), c, logger)
	if err := us.Seed(ctx, c.SeedPassword); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	fs := fleet.New()
	fs.Seed(users.SeedDriverID, users.SeedCustomerID)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &App{
		config: c,
		logger: logger,
		server: httpapi.New(c, logger, us, fs, reg),
	}, nil
}

// Run blocks until ctx is cancelled or the server fails.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "base_path", app.config.BasePath)
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}
