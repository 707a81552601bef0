package apiclient

import (
	"net/http"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
)

// SetTokenCookie stores token as the accessToken cookie for the API host.
// The cookie rides along on every request as a secondary carrier.
func (c *Client) SetTokenCookie(token string) {
	c.jar.SetCookies(c.base, []*http.Cookie{{
		Name:  common.AccessTokenCookieName,
		Value: token,
		Path:  "/",
	}})
}

// ClearTokenCookie expires the accessToken cookie.
func (c *Client) ClearTokenCookie() {
	c.jar.SetCookies(c.base, []*http.Cookie{{
		Name:   common.AccessTokenCookieName,
		Path:   "/",
		MaxAge: -1,
	}})
}

// TokenCookie returns the current accessToken cookie value, if any.
func (c *Client) TokenCookie() string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == common.AccessTokenCookieName {
			return ck.Value
		}
	}
	return ""
}
