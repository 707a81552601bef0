// Package guard decides whether a protected route may render for the
// current session. It never navigates on its own inside Check: the router
// gets a Decision and acts on it (Enforce is the ready-made way to do so).
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/client/models"
	"github.com/dmitrijs2005/fleetdesk/internal/client/session"
	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
)

// DefaultAbsenceDelay is how long WatchAbsence waits for hydration before
// concluding there is no session at all.
const DefaultAbsenceDelay = time.Second

type Action int

const (
	ActionNothing Action = iota
	ActionRender
	ActionLoading
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionRender:
		return "render"
	case ActionLoading:
		return "loading"
	case ActionRedirect:
		return "redirect"
	default:
		return "nothing"
	}
}

// Decision is what the router should do with a guarded route. Route is set
// for ActionRedirect only.
type Decision struct {
	Action Action
	Route  string
}

func (d Decision) String() string {
	if d.Action == ActionRedirect {
		return fmt.Sprintf("redirect(%s)", d.Route)
	}
	return d.Action.String()
}

func render() Decision            { return Decision{Action: ActionRender} }
func loading() Decision           { return Decision{Action: ActionLoading} }
func redirect(to string) Decision { return Decision{Action: ActionRedirect, Route: to} }

type Option func(*Guard)

func WithAbsenceDelay(d time.Duration) Option {
	return func(g *Guard) { g.absenceDelay = d }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Guard) { g.log = l }
}

type Guard struct {
	sess         session.Context
	log          logging.Logger
	absenceDelay time.Duration
}

func New(sess session.Context, opts ...Option) *Guard {
	g := &Guard{sess: sess, log: logging.Discard(), absenceDelay: DefaultAbsenceDelay}
	for _, opt := range opts {
		opt(g)
	}
	if g.absenceDelay <= 0 {
		g.absenceDelay = DefaultAbsenceDelay
	}
	return g
}

// Check evaluates the session against allowed. An empty allow-list admits
// any signed-in role.
func (g *Guard) Check(ctx context.Context, allowed ...models.Role) Decision {
	switch g.sess.State() {
	case session.StateUnknown, session.StateChecking:
		if tok, prof := g.sess.HasStoredCredentials(ctx); tok && prof {
			return render()
		}
		return loading()

	case session.StateUnauthenticated:
		if g.sess.ProfileMissing() {
			g.healDesync(ctx)
		}
		return redirect(common.LoginRoute)

	case session.StateAuthenticated:
		p := g.sess.Profile()
		if p == nil {
			if len(allowed) == 0 {
				return render()
			}
			return loading()
		}
		if !p.Role.Allowed(allowed...) {
			return redirect(p.Role.LandingRoute())
		}
		return render()
	}
	return Decision{}
}

// healDesync purges storage that still claims a session after the server
// said there is none.
func (g *Guard) healDesync(ctx context.Context) {
	tok, _ := g.sess.HasStoredCredentials(ctx)
	if !tok {
		return
	}
	g.log.Warn(ctx, "stale token without a profile; clearing session")
	if err := g.sess.Purge(ctx); err != nil {
		g.log.Error(ctx, "purge stale session", "error", err)
	}
}

// Enforce applies Check through nav and reports whether the route may
// render. A redirect to the route nav is already on is not repeated.
func (g *Guard) Enforce(ctx context.Context, nav session.Navigator, allowed ...models.Role) bool {
	d := g.Check(ctx, allowed...)
	switch d.Action {
	case ActionRender:
		return true
	case ActionRedirect:
		if nav.Current() != d.Route {
			g.log.Debug(ctx, "guard redirect", "from", nav.Current(), "to", d.Route)
			nav.Navigate(ctx, d.Route)
		}
	}
	return false
}

// WatchAbsence waits the absence delay and then, if the session is not
// authenticated and storage holds neither a token nor a profile, sends nav
// to the login route. It returns whether it navigated; ctx cancels the wait.
func (g *Guard) WatchAbsence(ctx context.Context, nav session.Navigator) bool {
	t := time.NewTimer(g.absenceDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
	}

	if g.sess.State() == session.StateAuthenticated {
		return false
	}
	if tok, prof := g.sess.HasStoredCredentials(ctx); tok || prof {
		return false
	}
	if nav.Current() == common.LoginRoute {
		return false
	}
	g.log.Info(ctx, "no session found; redirecting to login")
	nav.Navigate(ctx, common.LoginRoute)
	return true
}
