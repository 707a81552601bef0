// Package session owns the signed-in operator: the persisted access token,
// the cached profile, and the state machine the router and guard inspect.
//
// States move Unknown → Checking → Authenticated | Unauthenticated.
// Authenticated drops to Unauthenticated on Logout, when a refreshed profile
// turns out to be unusable, or on an authentication failure once storage no
// longer holds a usable token. Unauthenticated stays put until Login.
//
// The canonical slots are "accessToken" and "userProfile". Values found in
// the legacy "token" and "user" slots are migrated on first read and the
// legacy slots removed.
package session
