package guard

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/client/adminapi"
	"github.com/dmitrijs2005/fleetdesk/internal/client/models"
	"github.com/dmitrijs2005/fleetdesk/internal/client/session"
	"github.com/dmitrijs2005/fleetdesk/internal/client/session/sessiontest"
	"github.com/dmitrijs2005/fleetdesk/internal/client/storage"
	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminProfile  = &models.Profile{ID: "a1", Role: models.RoleAdmin}
	driverProfile = &models.Profile{ID: "d1", Role: models.RoleDriver}
)

type stubRemote struct {
	profile *models.Profile
	calls   int
}

func (r *stubRemote) Login(context.Context, string, string) (*adminapi.LoginResult, error) {
	return nil, nil
}

func (r *stubRemote) Profile(context.Context) (*models.Profile, error) {
	r.calls++
	return r.profile, nil
}

func TestCheck_States(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		fake    *sessiontest.Fake
		allowed []models.Role
		want    Decision
	}{
		{"unknown, nothing stored", &sessiontest.Fake{}, nil, Decision{Action: ActionLoading}},
		{"checking, token only", &sessiontest.Fake{StateValue: session.StateChecking, StoredToken: true}, nil, Decision{Action: ActionLoading}},
		{"unknown, token and profile", &sessiontest.Fake{StoredToken: true, StoredProfile: true}, nil, Decision{Action: ActionRender}},
		{"unauthenticated", &sessiontest.Fake{StateValue: session.StateUnauthenticated}, nil, Decision{Action: ActionRedirect, Route: common.LoginRoute}},
		{"admin allowed", sessiontest.NewAuthenticated(adminProfile), []models.Role{models.RoleAdmin}, Decision{Action: ActionRender}},
		{"no allow-list", sessiontest.NewAuthenticated(driverProfile), nil, Decision{Action: ActionRender}},
		{"wrong role", sessiontest.NewAuthenticated(driverProfile), []models.Role{models.RoleAdmin}, Decision{Action: ActionRedirect, Route: "/driver/home"}},
		{"authenticated, profile pending", &sessiontest.Fake{StateValue: session.StateAuthenticated, StoredToken: true}, []models.Role{models.RoleAdmin}, Decision{Action: ActionLoading}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.fake).Check(ctx, tt.allowed...))
		})
	}
}

func TestEnforce_WrongRoleRedirectsOnce(t *testing.T) {
	ctx := context.Background()
	g := New(sessiontest.NewAuthenticated(driverProfile))
	nav := sessiontest.NewNavigator("/admin/users")

	assert.False(t, g.Enforce(ctx, nav, models.RoleAdmin))
	assert.False(t, g.Enforce(ctx, nav, models.RoleAdmin))
	assert.Equal(t, []string{"/driver/home"}, nav.Navigations())
}

func TestEnforce_Render(t *testing.T) {
	g := New(sessiontest.NewAuthenticated(adminProfile))
	nav := sessiontest.NewNavigator("/admin/users")

	assert.True(t, g.Enforce(context.Background(), nav, models.RoleAdmin))
	assert.Empty(t, nav.Navigations())
}

func TestEnforce_LoadingDoesNotNavigate(t *testing.T) {
	g := New(&sessiontest.Fake{})
	nav := sessiontest.NewNavigator("/admin/users")

	assert.False(t, g.Enforce(context.Background(), nav))
	assert.Empty(t, nav.Navigations())
}

func TestDesync_SelfHealsWithSingleRedirect(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, common.AccessTokenKey, []byte("stale")))

	m := session.New(store, &stubRemote{})
	nav := sessiontest.NewNavigator("/admin/dashboard")
	m.SetNavigator(nav)
	g := New(m)

	m.Bootstrap(ctx)
	require.Error(t, m.RefreshProfile(ctx))
	require.True(t, m.ProfileMissing())

	for i := 0; i < 3; i++ {
		assert.False(t, g.Enforce(ctx, nav, models.RoleAdmin))
	}

	v, err := store.Get(ctx, common.AccessTokenKey)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, []string{common.LoginRoute}, nav.Navigations())
}

func TestOptimisticRender_BeforeRefresh(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	remote := &stubRemote{profile: adminProfile}

	seed := session.New(store, remote)
	require.NoError(t, seed.Login(ctx, adminProfile, "tok"))

	m := session.New(store, remote)
	require.Equal(t, session.StateUnknown, m.State())

	d := New(m).Check(ctx, models.RoleAdmin)
	assert.Equal(t, ActionRender, d.Action)
	assert.Zero(t, remote.calls)
}

func TestWatchAbsence_RedirectsWhenNothingStored(t *testing.T) {
	g := New(&sessiontest.Fake{}, WithAbsenceDelay(5*time.Millisecond))
	nav := sessiontest.NewNavigator("/admin/dashboard")

	assert.True(t, g.WatchAbsence(context.Background(), nav))
	assert.Equal(t, []string{common.LoginRoute}, nav.Navigations())
}

func TestWatchAbsence_NoRedirect(t *testing.T) {
	ctx := context.Background()

	withToken := New(&sessiontest.Fake{StoredToken: true}, WithAbsenceDelay(time.Millisecond))
	nav := sessiontest.NewNavigator("/admin/dashboard")
	assert.False(t, withToken.WatchAbsence(ctx, nav))

	authed := New(&sessiontest.Fake{StateValue: session.StateAuthenticated}, WithAbsenceDelay(time.Millisecond))
	assert.False(t, authed.WatchAbsence(ctx, nav))

	onLogin := New(&sessiontest.Fake{}, WithAbsenceDelay(time.Millisecond))
	assert.False(t, onLogin.WatchAbsence(ctx, sessiontest.NewNavigator(common.LoginRoute)))

	assert.Empty(t, nav.Navigations())
}

func TestWatchAbsence_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New(&sessiontest.Fake{}, WithAbsenceDelay(time.Hour))
	nav := sessiontest.NewNavigator("/admin/dashboard")
	assert.False(t, g.WatchAbsence(ctx, nav))
	assert.Empty(t, nav.Navigations())
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "redirect(/login)", Decision{Action: ActionRedirect, Route: "/login"}.String())
	assert.Equal(t, "render", Decision{Action: ActionRender}.String())
	assert.Equal(t, "nothing", Decision{}.String())
}

func TestNew_DefaultDelay(t *testing.T) {
	g := New(&sessiontest.Fake{}, WithAbsenceDelay(0))
	assert.Equal(t, DefaultAbsenceDelay, g.absenceDelay)
}
