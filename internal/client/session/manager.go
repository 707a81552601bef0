package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/client/apiclient"
	"github.com/dmitrijs2005/fleetdesk/internal/client/models"
	"github.com/dmitrijs2005/fleetdesk/internal/client/storage"
	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
)

type Option func(*Manager)

func WithCarrier(c Carrier) Option {
	return func(m *Manager) { m.carrier = c }
}

func WithNavigator(n Navigator) Option {
	return func(m *Manager) { m.nav = n }
}

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager is the session of one console process.
type Manager struct {
	store   storage.Store
	remote  Remote
	carrier Carrier
	log     logging.Logger
	now     func() time.Time

	mu             sync.RWMutex
	nav            Navigator
	state          State
	profile        *models.Profile
	record         *models.ProfileRecord
	profileMissing bool
}

func New(store storage.Store, remote Remote, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		remote: remote,
		log:    logging.Discard(),
		now:    time.Now,
		state:  StateUnknown,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetNavigator attaches the router once it exists.
func (m *Manager) SetNavigator(n Navigator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nav = n
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) Profile() *models.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile.Clone()
}

func (m *Manager) ProfileMissing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profileMissing
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Bootstrap reads persisted state and settles on Authenticated or
// Unauthenticated. It does not talk to the server; call RefreshProfile
// afterwards.
func (m *Manager) Bootstrap(ctx context.Context) State {
	m.setState(StateChecking)

	m.FetchProfile(ctx)
	tok, _ := m.Token(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if tok != "" || m.profile != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateUnauthenticated
	}
	m.log.Debug(ctx, "session bootstrapped", "state", m.state.String(), "has_token", tok != "", "has_profile", m.profile != nil)
	return m.state
}

// Login stores token and profile and marks the session authenticated.
// The next request carries the new token. A nil profile drops whatever
// profile was cached before, so a new token is never paired with the
// previous account; call RefreshProfile to load the new one.
func (m *Manager) Login(ctx context.Context, profile *models.Profile, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return common.ErrTokenMissing
	}

	if profile == nil {
		if err := m.store.Delete(ctx, common.ProfileKey, common.LegacyUserKey); err != nil {
			return fmt.Errorf("drop cached profile: %w", err)
		}
	}

	slots := map[string][]byte{common.AccessTokenKey: []byte(token)}
	var rec *models.ProfileRecord
	if profile != nil {
		if err := profile.Validate(); err != nil {
			return err
		}
		var err error
		rec, err = models.NewProfileRecord(profile, m.now())
		if err != nil {
			return err
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		slots[common.ProfileKey] = raw
	}

	if err := m.store.SetMany(ctx, slots); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := m.store.Delete(ctx, common.LegacyTokenKey, common.LegacyUserKey); err != nil {
		m.log.Warn(ctx, "remove legacy slots", "error", err)
	}
	if m.carrier != nil {
		m.carrier.ClearCache()
		m.carrier.SetTokenCookie(token)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = profile.Clone()
	m.record = rec
	m.state = StateAuthenticated
	m.profileMissing = false
	m.log.Info(ctx, "signed in", "user_id", profileID(m.profile))
	return nil
}

// SignIn authenticates against the API and logs the returned user in. When
// the login response carries no user the profile is fetched with the new
// token; if that fails the half-made session is purged.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	res, err := m.remote.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if res == nil || res.AccessToken == "" {
		return nil, common.ErrTokenMissing
	}
	if err := m.Login(ctx, res.User, res.AccessToken); err != nil {
		return nil, err
	}

	if res.User == nil {
		if err := m.RefreshProfile(ctx); err != nil {
			if perr := m.Purge(ctx); perr != nil {
				m.log.Error(ctx, "purge after failed sign-in", "error", perr)
			}
			return nil, fmt.Errorf("%w: %w", common.ErrNoProfile, err)
		}
	}

	p := m.Profile()
	if p == nil {
		return nil, common.ErrNoProfile
	}
	return p, nil
}

// Logout forgets the session and sends the console to the login route.
// Calling it again only navigates.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.Purge(ctx)

	m.mu.RLock()
	nav := m.nav
	m.mu.RUnlock()
	if nav != nil {
		nav.Navigate(ctx, common.LoginRoute)
	}
	m.log.Info(ctx, "signed out")
	return err
}

// Purge removes every session slot, the token cookie and cached responses,
// and resets the in-memory session.
func (m *Manager) Purge(ctx context.Context) error {
	err := m.store.Delete(ctx, common.SessionKeys...)
	if err != nil {
		m.log.Error(ctx, "clear session storage", "error", err)
		err = fmt.Errorf("clear session storage: %w", err)
	}
	if m.carrier != nil {
		m.carrier.ClearTokenCookie()
		m.carrier.ClearCache()
	}

	m.mu.Lock()
	m.profile = nil
	m.record = nil
	m.state = StateUnauthenticated
	m.profileMissing = false
	m.mu.Unlock()
	return err
}

// FetchProfile loads the cached profile from storage. Unreadable values are
// logged and leave the profile unset.
func (m *Manager) FetchProfile(ctx context.Context) {
	rec, err := m.loadRecord(ctx)
	if err != nil {
		m.log.Warn(ctx, "cached profile unreadable", "error", err)
		return
	}
	if rec == nil {
		return
	}

	p, err := rec.Profile()
	if err == nil {
		err = p.Validate()
	}
	if err != nil {
		m.log.Warn(ctx, "cached profile invalid", "error", err)
		return
	}

	m.mu.Lock()
	m.profile = p
	m.record = rec
	m.mu.Unlock()
}

func (m *Manager) loadRecord(ctx context.Context) (*models.ProfileRecord, error) {
	raw, err := m.store.Get(ctx, common.ProfileKey)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		return models.DecodeProfileRecord(raw)
	}
	return m.migrateLegacyUser(ctx)
}

func (m *Manager) migrateLegacyUser(ctx context.Context) (*models.ProfileRecord, error) {
	raw, err := m.store.Get(ctx, common.LegacyUserKey)
	if err != nil || len(raw) == 0 {
		return nil, err
	}

	var u models.LegacyUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("legacy user slot: %w", err)
	}
	rec, err := models.NewProfileRecord(u.Profile(), m.now())
	if err != nil {
		return nil, err
	}
	if err := m.persistRecord(ctx, rec); err != nil {
		m.log.Warn(ctx, "migrate legacy user", "error", err)
		return rec, nil
	}
	if err := m.store.Delete(ctx, common.LegacyUserKey); err != nil {
		m.log.Warn(ctx, "remove legacy user slot", "error", err)
	}
	m.log.Info(ctx, "migrated legacy user slot")
	return rec, nil
}

func (m *Manager) persistRecord(ctx context.Context, rec *models.ProfileRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, common.ProfileKey, raw)
}

// RefreshProfile fetches the profile from the server. A response that
// definitively carries no usable profile moves the session to
// Unauthenticated; transport failures leave it as it is.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	p, err := m.remote.Profile(ctx)
	if err != nil {
		if definitive(err) {
			m.markMissing(ctx, err)
		}
		return err
	}
	if verr := p.Validate(); verr != nil {
		m.markMissing(ctx, verr)
		return verr
	}

	rec, err := models.NewProfileRecord(p, m.now())
	if err != nil {
		return err
	}
	if err := m.persistRecord(ctx, rec); err != nil {
		m.log.Warn(ctx, "persist refreshed profile", "error", err)
	}

	m.mu.Lock()
	m.profile = p
	m.record = rec
	m.state = StateAuthenticated
	m.profileMissing = false
	m.mu.Unlock()
	return nil
}

// definitive reports whether a failed profile fetch proves there is no
// profile, as opposed to the server being unreachable.
func definitive(err error) bool {
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		return false
	}
	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}

func (m *Manager) markMissing(ctx context.Context, reason error) {
	m.mu.Lock()
	m.profile = nil
	m.record = nil
	m.state = StateUnauthenticated
	m.profileMissing = true
	m.mu.Unlock()
	m.log.Warn(ctx, "profile refresh returned no profile", "reason", reason)
}

// serverOwnedFields may only change through RefreshProfile.
var serverOwnedFields = []string{"id", "role"}

// UpdateProfile shallow-merges partial into the loaded profile, in memory
// and in storage. Without a loaded profile it does nothing. The merged
// profile must decode and validate before anything is replaced; id and role
// cannot be set this way.
func (m *Manager) UpdateProfile(ctx context.Context, partial map[string]any) error {
	for _, k := range serverOwnedFields {
		if _, ok := partial[k]; ok {
			return fmt.Errorf("%w: %s is assigned by the server", common.ErrorValidation, k)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return nil
	}

	next := m.record.Clone()
	next.Merge(partial, m.now())
	p, err := next.Profile()
	if err != nil {
		return fmt.Errorf("%w: merge profile: %w", common.ErrorValidation, err)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := m.persistRecord(ctx, next); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}

	m.profile = p
	m.record = next
	return nil
}

// HasStoredCredentials looks for a token (either slot or the cookie) and a
// cached profile (either slot).
func (m *Manager) HasStoredCredentials(ctx context.Context) (token, profile bool) {
	token = m.slotPresent(ctx, common.AccessTokenKey) ||
		parseLegacyToken(m.slot(ctx, common.LegacyTokenKey)) != ""
	if !token && m.carrier != nil {
		token = m.carrier.TokenCookie() != ""
	}
	profile = m.slotPresent(ctx, common.ProfileKey) || m.slotPresent(ctx, common.LegacyUserKey)
	return token, profile
}

func (m *Manager) slot(ctx context.Context, key string) []byte {
	v, err := m.store.Get(ctx, key)
	if err != nil {
		m.log.Warn(ctx, "read session slot", "key", key, "error", err)
		return nil
	}
	return v
}

func (m *Manager) slotPresent(ctx context.Context, key string) bool {
	return strings.TrimSpace(string(m.slot(ctx, key))) != ""
}

// HandleAuthFailure runs when the API rejects a request as unauthenticated.
// If storage still holds a token that has not expired the failure is left
// to the caller; otherwise the session is purged and the console sent to
// the login route unless it is already there.
func (m *Manager) HandleAuthFailure(ctx context.Context, apiErr *apiclient.APIError) {
	tok, _ := m.Token(ctx)
	if tok != "" && !expiredLocally(tok, m.now()) {
		m.log.Debug(ctx, "auth failure with a live local token; leaving session", "status", apiErr.Status, "code", apiErr.Envelope.Code)
		return
	}

	m.log.Info(ctx, "session gone; signing out", "code", apiErr.Envelope.Code)
	if err := m.Purge(ctx); err != nil && !errors.Is(err, context.Canceled) {
		m.log.Error(ctx, "purge after auth failure", "error", err)
	}

	m.mu.RLock()
	nav := m.nav
	m.mu.RUnlock()
	if nav != nil && nav.Current() != common.LoginRoute {
		nav.Navigate(ctx, common.LoginRoute)
	}
}

func profileID(p *models.Profile) string {
	if p == nil {
		return ""
	}
	return p.ID
}
