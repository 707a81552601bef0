package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
)

// TokenSource resolves the bearer token for an outbound request. An empty
// token with a nil error means "no session".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// AuthFailureHandler is called, before the error is returned to the caller,
// for every 401 classified as an authentication failure.
type AuthFailureHandler func(ctx context.Context, err *APIError)

var authCodes = map[string]struct{}{
	common.CodeTokenExpired: {},
	common.CodeTokenInvalid: {},
	common.CodeTokenMissing: {},
	common.CodeUnauthorized: {},
}

// isAuthFailure classifies a 401. The structured envelope code and the
// RFC 6750 WWW-Authenticate challenge are authoritative; message matching
// only happens when legacy is set.
func isAuthFailure(status int, header http.Header, env Envelope, legacy bool) bool {
	if status != http.StatusUnauthorized {
		return false
	}
	if _, ok := authCodes[strings.ToUpper(env.Code)]; ok {
		return true
	}
	if bearerInvalidToken(header.Values("WWW-Authenticate")) {
		return true
	}
	if legacy {
		msg := strings.ToLower(env.Message)
		return strings.Contains(msg, "token") || strings.Contains(msg, "unauthorized")
	}
	return false
}

// IsAuthFailure reports whether err is a 401 the server marked as an
// authentication failure (structured code or bearer challenge).
func IsAuthFailure(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	h := apiErr.Header
	if h == nil {
		h = http.Header{}
	}
	return isAuthFailure(apiErr.Status, h, apiErr.Envelope, false)
}

func bearerInvalidToken(challenges []string) bool {
	for _, c := range challenges {
		scheme, params, _ := strings.Cut(strings.TrimSpace(c), " ")
		if !strings.EqualFold(scheme, "Bearer") {
			continue
		}
		for _, p := range strings.Split(params, ",") {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || !strings.EqualFold(k, "error") {
				continue
			}
			if strings.Trim(v, `"`) == "invalid_token" {
				return true
			}
		}
	}
	return false
}
