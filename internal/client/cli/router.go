package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fleetdesk/internal/client/guard"
	"github.com/dmitrijs2005/fleetdesk/internal/client/models"
	"github.com/dmitrijs2005/fleetdesk/internal/common"
)

type routeRule struct {
	prefix string
	roles  []models.Role
}

// routeTable maps route prefixes to the roles allowed to open them. The
// first matching prefix wins; routes matching nothing need only a session.
var routeTable = []routeRule{
	{prefix: "/admin/", roles: []models.Role{models.RoleAdmin, models.RoleCampusAdmin}},
	{prefix: "/dispatch/", roles: []models.Role{models.RoleAdmin, models.RoleDispatcher}},
	{prefix: "/driver/", roles: []models.Role{models.RoleDriver}},
	{prefix: "/customer/", roles: []models.Role{models.RoleCustomer}},
	{prefix: "/student/", roles: []models.Role{models.RoleStudent}},
	{prefix: "/coordinator/", roles: []models.Role{models.RoleCoordinator}},
}

func isPublic(route string) bool {
	return route == common.LoginRoute || route == "/forgot-password"
}

// allowedRoles returns the allow-list for route.
func allowedRoles(route string) []models.Role {
	for _, r := range routeTable {
		if strings.HasPrefix(route+"/", r.prefix) {
			return r.roles
		}
	}
	return nil
}

// Router is the console's Navigator: it tracks the current route and gates
// every move through the guard.
type Router struct {
	mu      sync.Mutex
	current string
	guard   *guard.Guard
	out     io.Writer
}

func NewRouter(g *guard.Guard, out io.Writer) *Router {
	return &Router{current: "/", guard: g, out: out}
}

// Navigate moves to route without consulting the guard.
func (r *Router) Navigate(_ context.Context, route string) {
	r.mu.Lock()
	changed := r.current != route
	r.current = route
	r.mu.Unlock()

	if changed {
		fmt.Fprintf(r.out, "→ %s\n", route)
	}
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Goto opens route if the guard allows it and reports whether the screen
// may render. A refused route leaves the router wherever the guard sent it.
func (r *Router) Goto(ctx context.Context, route string) bool {
	route = normalizeRoute(route)
	if isPublic(route) {
		r.Navigate(ctx, route)
		return true
	}

	r.Navigate(ctx, route)
	return r.guard.Enforce(ctx, r, allowedRoles(route)...)
}

func normalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
	}
	return route
}
