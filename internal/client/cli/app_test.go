package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/client/config"
	"github.com/dmitrijs2005/fleetdesk/internal/client/session"
	"github.com/dmitrijs2005/fleetdesk/internal/client/storage"
	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminUser = dto.User{ID: "u1", Name: "Ada Admin", Email: "admin@fleet.io", Role: "ADMIN", Status: dto.StatusActive}

// backend is a scripted admin API.
type backend struct {
	mu            sync.Mutex
	token         string
	pricing       dto.Pricing
	expireTickets bool
	omitLoginUser bool
	hits          []string
	upload        string
}

func newBackend(t *testing.T, token string) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{
		token:   token,
		pricing: dto.Pricing{BaseFare: 2, PerKm: 1, PerMinute: 0.2, SurgeMultiplier: 1, MinimumFare: 5, Currency: "USD"},
	}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, srv
}

func reply(w http.ResponseWriter, status int, code, msg string, data any) {
	raw, _ := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status, "message": msg, "code": code, "data": json.RawMessage(raw),
	})
}

func (b *backend) Hits() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.hits...)
}

func (b *backend) snapshot() (dto.Pricing, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pricing, b.upload
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	route := r.Method + " " + r.URL.Path
	b.hits = append(b.hits, route)

	if route == "POST /auth/login" {
		var req dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != adminUser.Email || req.Password != "pw" {
			reply(w, http.StatusUnauthorized, common.CodeInvalidCredentials, "Invalid email or password", nil)
			return
		}
		if b.omitLoginUser {
			reply(w, http.StatusOK, "", "ok", map[string]string{"accessToken": b.token})
			return
		}
		reply(w, http.StatusOK, "", "ok", dto.LoginResponse{AccessToken: b.token, User: adminUser})
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+b.token {
		reply(w, http.StatusUnauthorized, common.CodeTokenInvalid, "Invalid token", nil)
		return
	}

	switch route {
	case "GET /auth/profile":
		reply(w, http.StatusOK, "", "ok", adminUser)
	case "GET /admin/dashboard":
		reply(w, http.StatusOK, "", "ok", dto.DashboardStats{TotalUsers: 42, OrdersToday: 7, RevenueToday: 123.5})
	case "GET /admin/users":
		reply(w, http.StatusOK, "", "ok", dto.Page[dto.User]{Items: []dto.User{adminUser, {ID: "u2", Name: "Dan Driver", Role: "DRIVER"}}, Total: 2})
	case "GET /admin/pricing":
		reply(w, http.StatusOK, "", "ok", b.pricing)
	case "PUT /admin/pricing":
		_ = json.NewDecoder(r.Body).Decode(&b.pricing)
		reply(w, http.StatusOK, "", "ok", b.pricing)
	case "GET /admin/tickets":
		if b.expireTickets {
			reply(w, http.StatusUnauthorized, common.CodeTokenExpired, "Token expired", nil)
			return
		}
		reply(w, http.StatusOK, "", "ok", dto.Page[dto.Ticket]{Items: []dto.Ticket{{ID: "t-1", Subject: "Late pickup", Status: "OPEN", Priority: "HIGH"}}})
	case "POST /admin/tickets/t-1/reply":
		var req dto.ReplyTicketRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		reply(w, http.StatusOK, "", "ok", dto.Ticket{ID: "t-1", Messages: []dto.TicketMessage{{Body: "help"}, {Body: req.Body}}})
	case "GET /admin/reports/revenue":
		reply(w, http.StatusOK, "", "ok", dto.Series{Period: r.URL.Query().Get("period"), Points: []dto.SeriesPoint{{Label: "Mon", Value: 10}, {Label: "Tue", Value: 20}}, Total: 30})
	case "POST /upload/image":
		f, hdr, err := r.FormFile("file")
		if err != nil {
			reply(w, http.StatusBadRequest, common.CodeValidation, "file is required", nil)
			return
		}
		body, _ := io.ReadAll(f)
		b.upload = string(body)
		reply(w, http.StatusOK, "", "ok", dto.UploadResult{URL: "https://cdn.test/" + r.FormValue("folder") + "/" + hdr.Filename})
	case "GET /admin/orders/o-404":
		reply(w, http.StatusNotFound, common.CodeNotFound, "Order not found", nil)
	default:
		reply(w, http.StatusNotFound, common.CodeNotFound, "no route", nil)
	}
}

func testConfig(url string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.APIURL = url
	c.StoreDriver = storage.DriverMemory
	c.RequestTimeout = 5 * time.Second
	c.AbsenceDelay = time.Hour
	return c
}

func pipedInput(t *testing.T) {
	t.Helper()
	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })
}

func startApp(t *testing.T, c *config.Config, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := wireApp(context.Background(), c, logging.Discard(), prometheus.NewRegistry(), strings.NewReader(input), &out)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a.start(ctx)
	return a, &out
}

func TestApp_LoginAndScreens(t *testing.T) {
	pipedInput(t)
	b, srv := newBackend(t, "opaque-token")
	a, out := startApp(t, testConfig(srv.URL), "admin@fleet.io\npw\nOn its way.\n\n")
	ctx := context.Background()

	assert.Equal(t, "/login", a.router.Current())
	require.NoError(t, a.Login(ctx))
	assert.Contains(t, out.String(), "Welcome, Ada Admin (ADMIN)")
	assert.Equal(t, "/admin/dashboard", a.router.Current())
	assert.True(t, a.isLoggedIn())

	out.Reset()
	require.NoError(t, a.Dashboard(ctx))
	assert.Contains(t, out.String(), "orders today")
	assert.Contains(t, out.String(), "123.50")

	out.Reset()
	require.NoError(t, a.Users(ctx, nil))
	assert.Contains(t, out.String(), "Dan Driver")
	assert.Contains(t, out.String(), "2 of 2")

	out.Reset()
	require.NoError(t, a.Pricing(ctx, []string{"set", "perKm", "1.75"}))
	pricing, _ := b.snapshot()
	assert.Equal(t, 1.75, pricing.PerKm)
	assert.Contains(t, out.String(), "1.75")

	out.Reset()
	require.NoError(t, a.Reply(ctx, []string{"t-1"}))
	assert.Contains(t, out.String(), "Reply sent (2 messages)")

	out.Reset()
	require.NoError(t, a.Report(ctx, []string{"revenue", "week"}))
	assert.Contains(t, out.String(), "total: 30.00")
	assert.Contains(t, out.String(), strings.Repeat("#", 30))

	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))
	out.Reset()
	require.NoError(t, a.Upload(ctx, []string{path, "avatars"}))
	assert.Contains(t, out.String(), "https://cdn.test/avatars/avatar.png")
	_, uploaded := b.snapshot()
	assert.Equal(t, "png-bytes", uploaded)

	assert.Contains(t, b.Hits(), "PUT /admin/pricing")
}

func TestApp_LocalValidationNeverReachesServer(t *testing.T) {
	pipedInput(t)
	b, srv := newBackend(t, "opaque-token")
	a, out := startApp(t, testConfig(srv.URL), "admin@fleet.io\npw\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	out.Reset()
	require.Error(t, a.Users(ctx, []string{"role", "u2", "OWNER"}))
	assert.Contains(t, out.String(), "Error: validation error: role must be one of")
	assert.NotContains(t, b.Hits(), "PATCH /admin/users/u2/role")
}

func TestApp_ServerErrorMessageIsShown(t *testing.T) {
	pipedInput(t)
	_, srv := newBackend(t, "opaque-token")
	a, out := startApp(t, testConfig(srv.URL), "admin@fleet.io\npw\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	out.Reset()
	require.Error(t, a.Order(ctx, []string{"o-404"}))
	assert.Contains(t, out.String(), "Error: Order not found")
	assert.True(t, a.isLoggedIn())
}

func TestApp_BadPasswordKeepsLoginScreen(t *testing.T) {
	pipedInput(t)
	_, srv := newBackend(t, "opaque-token")
	a, out := startApp(t, testConfig(srv.URL), "admin@fleet.io\nnope\n")

	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "Error: Invalid email or password")
	assert.Equal(t, "/login", a.router.Current())
	assert.False(t, a.isLoggedIn())
}

func TestApp_ExpiredTokenSignsOut(t *testing.T) {
	pipedInput(t)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   adminUser.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	b, srv := newBackend(t, expired)
	a, out := startApp(t, testConfig(srv.URL), "admin@fleet.io\npw\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	b.mu.Lock()
	b.expireTickets = true
	b.mu.Unlock()

	out.Reset()
	require.Error(t, a.Tickets(ctx, nil))
	assert.NotContains(t, out.String(), "Error:")
	assert.Equal(t, "/login", a.router.Current())
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, session.StateUnauthenticated, a.sess.State())

	tok, prof := a.sess.HasStoredCredentials(ctx)
	assert.False(t, tok)
	assert.False(t, prof)
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	pipedInput(t)
	b, srv := newBackend(t, "opaque-token")
	c := testConfig(srv.URL)
	c.StoreDriver = storage.DriverSQLite
	c.StoreDSN = filepath.Join(t.TempDir(), "session.db")

	first, _ := startApp(t, c, "admin@fleet.io\npw\n")
	require.NoError(t, first.Login(context.Background()))
	first.Close()

	second, _ := startApp(t, c, "")
	assert.True(t, second.isLoggedIn())
	assert.Equal(t, "/admin/dashboard", second.router.Current())
	assert.Contains(t, second.status(), "Ada Admin ADMIN /admin/dashboard")
	assert.Contains(t, b.Hits(), "GET /auth/profile")

	require.NoError(t, second.Logout(context.Background()))
	assert.Equal(t, "/login", second.router.Current())
}

func TestApp_RunWithPipedInput(t *testing.T) {
	pipedInput(t)
	_, srv := newBackend(t, "opaque-token")

	var out bytes.Buffer
	input := "login\nadmin@fleet.io\npw\nwhoami\nexit\n"
	a, err := wireApp(context.Background(), testConfig(srv.URL), logging.Discard(), prometheus.NewRegistry(), strings.NewReader(input), &out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, a.Run(ctx))

	got := out.String()
	assert.Contains(t, got, "Welcome, Ada Admin (ADMIN)")
	assert.Contains(t, got, "Ada Admin <admin@fleet.io>")
	assert.Contains(t, got, "Bye!")
	assert.NotContains(t, got, "Unknown command")
	assert.NotContains(t, got, "Not signed in.")
	assert.True(t, a.isLoggedIn())
}

func TestApp_LoginResponseWithoutUserLoadsProfile(t *testing.T) {
	pipedInput(t)
	b, srv := newBackend(t, "opaque-token")
	b.omitLoginUser = true
	a, out := startApp(t, testConfig(srv.URL), "admin@fleet.io\npw\n")

	require.NoError(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "Welcome, Ada Admin (ADMIN)")
	assert.Equal(t, "/admin/dashboard", a.router.Current())
	assert.Contains(t, b.Hits(), "GET /auth/profile")
}
