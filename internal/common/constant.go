// Package common contains shared constants and sentinel errors used across
// fleetdesk components.
package common

// Persisted session slots. AccessTokenKey and ProfileKey are the canonical
// slots; LegacyTokenKey and LegacyUserKey are only read (and migrated) so that
// state written by older consoles keeps working.
const (
	AccessTokenKey = "accessToken"
	ProfileKey     = "userProfile"
	LegacyTokenKey = "token"
	LegacyUserKey  = "user"
)

// SessionKeys lists every slot that belongs to a session. Logout removes all of them.
var SessionKeys = []string{AccessTokenKey, ProfileKey, LegacyTokenKey, LegacyUserKey}

// AccessTokenCookieName is the cookie that mirrors the access token for the API host.
const AccessTokenCookieName = "accessToken"

// HTTP header names used on outbound requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Structured error codes carried in the "code" field of the API envelope.
const (
	CodeTokenMissing = "TOKEN_MISSING"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeUnauthorized = "UNAUTHORIZED"
	// CodeInvalidCredentials rejects a sign-in attempt; it is a 401 that
	// does not end the session.
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
)

// LoginRoute is where unauthenticated sessions are sent.
const LoginRoute = "/login"
