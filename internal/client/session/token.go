package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Token resolves the bearer token: the accessToken slot first, then the
// legacy token slot. A legacy hit is moved into accessToken.
func (m *Manager) Token(ctx context.Context) (string, error) {
	v, err := m.store.Get(ctx, common.AccessTokenKey)
	if err != nil {
		m.log.Warn(ctx, "read access token slot", "error", err)
	}
	if tok := strings.TrimSpace(string(v)); tok != "" {
		return tok, nil
	}

	legacy, err := m.store.Get(ctx, common.LegacyTokenKey)
	if err != nil {
		m.log.Warn(ctx, "read legacy token slot", "error", err)
		return "", nil
	}
	tok := parseLegacyToken(legacy)
	if tok == "" {
		return "", nil
	}

	if err := m.store.Set(ctx, common.AccessTokenKey, []byte(tok)); err != nil {
		m.log.Warn(ctx, "migrate legacy token", "error", err)
		return tok, nil
	}
	if err := m.store.Delete(ctx, common.LegacyTokenKey); err != nil {
		m.log.Warn(ctx, "remove legacy token slot", "error", err)
	}
	m.log.Info(ctx, "migrated legacy token slot")
	return tok, nil
}

// parseLegacyToken accepts {"token":"..."}, a JSON string, or the raw token.
func parseLegacyToken(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return ""
	}

	var wrapped struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(s), &wrapped); err == nil {
		return strings.TrimSpace(wrapped.Token)
	}
	var quoted string
	if err := json.Unmarshal([]byte(s), &quoted); err == nil {
		return strings.TrimSpace(quoted)
	}
	return s
}

// expiredLocally reports whether tok is a JWT whose exp has passed.
// The signature is not checked; opaque tokens are never expired.
func expiredLocally(tok string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
