package models

import "strings"

type Role string

// Platform roles.
const (
	RoleCustomer   Role = "CUSTOMER"
	RoleDriver     Role = "DRIVER"
	RoleAdmin      Role = "ADMIN"
	RoleDispatcher Role = "DISPATCHER"
)

// Roles of the campus variant of the dashboard.
const (
	RoleStudent     Role = "student"
	RoleCoordinator Role = "coordinator"
	RoleCampusAdmin Role = "admin"
)

var landingRoutes = map[Role]string{
	RoleCustomer:   "/customer/home",
	RoleDriver:     "/driver/home",
	RoleAdmin:      "/admin/dashboard",
	RoleDispatcher: "/dispatch/orders",

	RoleStudent:     "/student/home",
	RoleCoordinator: "/coordinator/home",
	RoleCampusAdmin: "/admin/dashboard",
}

// Valid reports whether r is one of the known roles. Matching is exact.
func (r Role) Valid() bool {
	_, ok := landingRoutes[r]
	return ok
}

// LandingRoute returns the default route for r, or "/" for unknown roles.
func (r Role) LandingRoute() string {
	if route, ok := landingRoutes[r]; ok {
		return route
	}
	return "/"
}

func (r Role) String() string { return string(r) }

// ParseRole resolves s case-insensitively against the platform roles first,
// then the campus roles.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	if r := Role(strings.ToUpper(s)); r.Valid() {
		return r, true
	}
	if r := Role(strings.ToLower(s)); r.Valid() {
		return r, true
	}
	return "", false
}

// Allowed reports whether r is in allowed. An empty allow-list admits
// every role.
func (r Role) Allowed(allowed ...Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}
