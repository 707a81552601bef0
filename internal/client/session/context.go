package session

import (
	"context"

	"github.com/dmitrijs2005/fleetdesk/internal/client/adminapi"
	"github.com/dmitrijs2005/fleetdesk/internal/client/apiclient"
	"github.com/dmitrijs2005/fleetdesk/internal/client/models"
)

// Context is the session as seen by the guard, the console and the API
// client. *Manager implements it; sessiontest.Fake is an in-memory double.
type Context interface {
	apiclient.TokenSource

	Bootstrap(ctx context.Context) State
	Login(ctx context.Context, profile *models.Profile, token string) error
	SignIn(ctx context.Context, email, password string) (*models.Profile, error)
	Logout(ctx context.Context) error
	FetchProfile(ctx context.Context)
	RefreshProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context, partial map[string]any) error

	State() State
	Profile() *models.Profile

	// ProfileMissing reports that the last profile refresh completed and
	// produced no usable profile.
	ProfileMissing() bool

	// HasStoredCredentials reports what storage still holds, without
	// migrating anything.
	HasStoredCredentials(ctx context.Context) (token, profile bool)

	// Purge removes every session slot and the token cookie.
	Purge(ctx context.Context) error

	HandleAuthFailure(ctx context.Context, err *apiclient.APIError)
}

// Navigator moves the console between routes.
type Navigator interface {
	Navigate(ctx context.Context, route string)
	Current() string
}

// Remote is the part of the API the session talks to.
type Remote interface {
	Login(ctx context.Context, email, password string) (*adminapi.LoginResult, error)
	Profile(ctx context.Context) (*models.Profile, error)
}

// Carrier is the HTTP-side token carrier: the accessToken cookie and the
// request cache that must not outlive a session.
type Carrier interface {
	SetTokenCookie(token string)
	ClearTokenCookie()
	TokenCookie() string
	ClearCache()
}

var _ Context = (*Manager)(nil)
