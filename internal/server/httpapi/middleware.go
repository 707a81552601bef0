package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

func unauthorized(code, message, challenge string) *apiError {
	return &apiError{status: http.StatusUnauthorized, code: code, message: message, challenge: challenge}
}

// Auth validates the bearer JWT and puts its subject and role on the
// context.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(common.CodeTokenMissing, "Authentication required", `Bearer realm="fleetdesk"`)
			}

			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				return unauthorized(common.CodeTokenInvalid, "Invalid authorization header",
					`Bearer realm="fleetdesk", error="invalid_request"`)
			}

			claims, err := auth.ParseToken(token, secret)
			if errors.Is(err, common.ErrTokenExpired) {
				return unauthorized(common.CodeTokenExpired, "Token expired",
					`Bearer realm="fleetdesk", error="invalid_token", error_description="token expired"`)
			}
			if err != nil {
				return unauthorized(common.CodeTokenInvalid, "Invalid token",
					`Bearer realm="fleetdesk", error="invalid_token"`)
			}

			c.Set(ctxUserID, claims.Subject)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

// RBAC admits only the given roles; Auth must run first.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := allowed[role(c)]; !ok {
				return newAPIError(http.StatusForbidden, common.CodeForbidden, "You do not have access to this resource")
			}
			return next(c)
		}
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

func role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}
