package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fleetdesk/internal/client/adminapi"
	"github.com/dmitrijs2005/fleetdesk/internal/client/apiclient"
	"github.com/dmitrijs2005/fleetdesk/internal/client/config"
	"github.com/dmitrijs2005/fleetdesk/internal/client/guard"
	"github.com/dmitrijs2005/fleetdesk/internal/client/session"
	"github.com/dmitrijs2005/fleetdesk/internal/client/storage"
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config *config.Config
	log    logging.Logger
	store  storage.Store
	api    *adminapi.API
	sess   session.Context
	guard  *guard.Guard
	router *Router
	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires storage, the API client, the session, the guard and the
// router from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, reg prometheus.Registerer) (*App, error) {
	return wireApp(ctx, c, log, reg, os.Stdin, os.Stdout)
}

func wireApp(ctx context.Context, c *config.Config, log logging.Logger, reg prometheus.Registerer, in io.Reader, out io.Writer) (*App, error) {
	store, err := storage.Open(ctx, c.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL:                c.APIURL,
		Timeout:                c.RequestTimeout,
		CacheTTL:               c.CacheTTL,
		LegacyAuthMessageMatch: c.LegacyAuthMessageMatch,
		Registerer:             reg,
	}, apiclient.WithLogger(log.With("component", "apiclient")))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	api := adminapi.New(client)
	mgr := session.New(store, api.Auth,
		session.WithCarrier(client),
		session.WithLogger(log.With("component", "session")),
	)
	client.SetTokenSource(mgr)
	client.SetAuthFailureHandler(mgr.HandleAuthFailure)

	a := newApp(c, log, store, api, mgr, in, out)
	mgr.SetNavigator(a.router)
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, store storage.Store, api *adminapi.API, sess session.Context, in io.Reader, out io.Writer) *App {
	g := guard.New(sess, guard.WithAbsenceDelay(c.AbsenceDelay), guard.WithLogger(log.With("component", "guard")))
	return &App{
		config: c,
		log:    log,
		store:  store,
		api:    api,
		sess:   sess,
		guard:  g,
		router: NewRouter(g, out),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run bootstraps the session and runs the REPL until the user exits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "fleetdesk console (type 'help' for commands)")
	a.start(ctx)

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

// start settles the session and opens the first screen.
func (a *App) start(ctx context.Context) {
	state := a.sess.Bootstrap(ctx)
	a.log.Debug(ctx, "session state", "state", state.String())

	go a.guard.WatchAbsence(ctx, a.router)

	if state != session.StateAuthenticated {
		a.router.Goto(ctx, "/login")
		return
	}
	if p := a.sess.Profile(); p != nil {
		a.router.Goto(ctx, p.Role.LandingRoute())
	}
	if err := a.sess.RefreshProfile(ctx); err != nil {
		a.log.Warn(ctx, "profile refresh failed", "error", err)
	}
	if p := a.sess.Profile(); p != nil && a.router.Current() == "/" {
		a.router.Goto(ctx, p.Role.LandingRoute())
	}
	a.guard.Enforce(ctx, a.router, allowedRoles(a.router.Current())...)
}

func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.sess.State() == session.StateAuthenticated
}

func (a *App) status() string {
	s := a.router.Current()
	if p := a.sess.Profile(); p != nil {
		s = fmt.Sprintf("%s %s %s", p.DisplayName(), p.Role, s)
	}
	return s
}
