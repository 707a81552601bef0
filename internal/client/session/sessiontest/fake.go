// Package sessiontest provides an in-memory session.Context for tests of
// code that consumes a session.
package sessiontest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fleetdesk/internal/client/apiclient"
	"github.com/dmitrijs2005/fleetdesk/internal/client/models"
	"github.com/dmitrijs2005/fleetdesk/internal/client/session"
	"github.com/dmitrijs2005/fleetdesk/internal/common"
)

// Fake is a session.Context backed by plain fields. The exported fields may
// be set directly before the fake is shared; afterwards use the methods.
type Fake struct {
	mu sync.Mutex

	StateValue   session.State
	ProfileValue *models.Profile
	TokenValue   string
	Missing      bool

	// StoredToken and StoredProfile stand in for persisted slots.
	StoredToken   bool
	StoredProfile bool

	// Accounts maps email to the profile SignIn returns; the password is
	// the profile ID.
	Accounts map[string]*models.Profile

	Nav session.Navigator

	LoginCalls   int
	LogoutCalls  int
	PurgeCalls   int
	RefreshCalls int
	AuthFailures int
	RefreshErr   error
}

var _ session.Context = (*Fake)(nil)

// NewAuthenticated returns a fake signed in as p with a stored token.
func NewAuthenticated(p *models.Profile) *Fake {
	return &Fake{
		StateValue:    session.StateAuthenticated,
		ProfileValue:  p,
		TokenValue:    "fake-token",
		StoredToken:   true,
		StoredProfile: true,
	}
}

func (f *Fake) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.TokenValue, nil
}

func (f *Fake) Bootstrap(context.Context) session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StoredToken || f.StoredProfile {
		f.StateValue = session.StateAuthenticated
	} else {
		f.StateValue = session.StateUnauthenticated
	}
	return f.StateValue
}

func (f *Fake) Login(_ context.Context, p *models.Profile, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "" {
		return common.ErrTokenMissing
	}
	f.LoginCalls++
	f.TokenValue = token
	f.ProfileValue = p.Clone()
	f.StoredToken = true
	f.StoredProfile = p != nil
	f.StateValue = session.StateAuthenticated
	f.Missing = false
	return nil
}

func (f *Fake) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	f.mu.Lock()
	p, ok := f.Accounts[email]
	f.mu.Unlock()
	if !ok || p.ID != password {
		return nil, &apiclient.APIError{Status: 401, Envelope: apiclient.Envelope{Message: "Invalid email or password", Code: common.CodeInvalidCredentials}}
	}
	if err := f.Login(ctx, p, "token-"+p.ID); err != nil {
		return nil, err
	}
	return f.Profile(), nil
}

func (f *Fake) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.LogoutCalls++
	nav := f.Nav
	f.mu.Unlock()

	_ = f.Purge(ctx)
	if nav != nil {
		nav.Navigate(ctx, common.LoginRoute)
	}
	return nil
}

func (f *Fake) FetchProfile(context.Context) {}

func (f *Fake) RefreshProfile(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RefreshCalls++
	if f.RefreshErr != nil {
		return f.RefreshErr
	}
	if f.ProfileValue == nil {
		f.Missing = true
		f.StateValue = session.StateUnauthenticated
	}
	return nil
}

// UpdateProfile applies name and phone; id and role are refused as they are
// by Manager.UpdateProfile.
func (f *Fake) UpdateProfile(_ context.Context, partial map[string]any) error {
	for _, k := range []string{"id", "role"} {
		if _, ok := partial[k]; ok {
			return common.ErrorValidation
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProfileValue == nil {
		return nil
	}
	if name, ok := partial["name"].(string); ok {
		f.ProfileValue.Name = name
	}
	if phone, ok := partial["phone"].(string); ok {
		f.ProfileValue.Phone = phone
	}
	return nil
}

func (f *Fake) State() session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.StateValue
}

// Profile returns a copy, like Manager.Profile.
func (f *Fake) Profile() *models.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ProfileValue.Clone()
}

func (f *Fake) ProfileMissing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Missing
}

func (f *Fake) HasStoredCredentials(context.Context) (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.StoredToken, f.StoredProfile
}

func (f *Fake) Purge(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PurgeCalls++
	f.TokenValue = ""
	f.ProfileValue = nil
	f.StoredToken = false
	f.StoredProfile = false
	f.Missing = false
	f.StateValue = session.StateUnauthenticated
	return nil
}

func (f *Fake) HandleAuthFailure(ctx context.Context, _ *apiclient.APIError) {
	f.mu.Lock()
	f.AuthFailures++
	nav := f.Nav
	f.mu.Unlock()

	_ = f.Purge(ctx)
	if nav != nil && nav.Current() != common.LoginRoute {
		nav.Navigate(ctx, common.LoginRoute)
	}
}
