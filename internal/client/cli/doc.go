// Package cli provides the interactive fleetdesk operator console.
//
// It wires configuration, session storage, the API client, the session and
// the route guard, then runs a REPL whose current "screen" is a route such
// as /admin/orders. Every screen command goes through the router, and the
// router asks the guard before rendering; a signed-out or wrong-role
// operator is redirected instead.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
