package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/dmitrijs2005/fleetdesk/internal/server/auth"
	"github.com/dmitrijs2005/fleetdesk/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeded(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	s := NewService(NewMemoryRepository(), cfg, logging.Discard())
	require.NoError(t, s.Seed(context.Background(), "fleetdesk"))
	return s
}

func TestSeed_IsIdempotent(t *testing.T) {
	s := newSeeded(t)
	require.NoError(t, s.Seed(context.Background(), "other"))

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestLogin(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	pair, err := s.Login(ctx, "Admin@FleetDesk.io ", "fleetdesk")
	require.NoError(t, err)
	assert.Equal(t, SeedAdminID, pair.User.ID)

	claims, err := auth.ParseToken(pair.AccessToken, []byte("secretKey"))
	require.NoError(t, err)
	assert.Equal(t, SeedAdminID, claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)

	_, err = s.Login(ctx, "admin@fleetdesk.io", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "nobody@fleetdesk.io", "fleetdesk")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.SetStatus(ctx, SeedDriverID, dto.StatusSuspended)
	require.NoError(t, err)
	_, err = s.Login(ctx, "driver@fleetdesk.io", "fleetdesk")
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestRegister(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	u, err := s.Register(ctx, dto.RegisterRequest{Name: "Nina", Email: "nina@x.io", Password: "password1", Role: "DRIVER"})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPending, u.Status)
	assert.NotEmpty(t, u.ID)

	_, err = s.Register(ctx, dto.RegisterRequest{Name: "Nina", Email: "NINA@x.io", Password: "password1"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = s.Login(ctx, "nina@x.io", "password1")
	require.NoError(t, err)
}

func TestUpdateProfileAndChangePassword(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	name := "Ada L."
	u, err := s.UpdateProfile(ctx, SeedAdminID, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", u.Name)
	assert.Equal(t, "admin@fleetdesk.io", u.Email)

	err = s.ChangePassword(ctx, SeedAdminID, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "brand-new-1"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	require.NoError(t, s.ChangePassword(ctx, SeedAdminID, dto.ChangePasswordRequest{CurrentPassword: "fleetdesk", NewPassword: "brand-new-1"}))
	_, err = s.Login(ctx, "admin@fleetdesk.io", "brand-new-1")
	require.NoError(t, err)

	_, err = s.UpdateProfile(ctx, "missing", dto.UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPasswordReset(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()
	now := time.Now()
	s.now = func() time.Time { return now }

	tok, err := s.ForgotPassword(ctx, "nobody@x.io")
	require.NoError(t, err)
	assert.Empty(t, tok)

	tok, err = s.ForgotPassword(ctx, "customer@fleetdesk.io")
	require.NoError(t, err)
	require.Len(t, tok, 64)

	require.NoError(t, s.ResetPassword(ctx, dto.ResetPasswordRequest{Token: tok, NewPassword: "reset-pass-1"}))
	_, err = s.Login(ctx, "customer@fleetdesk.io", "reset-pass-1")
	require.NoError(t, err)

	err = s.ResetPassword(ctx, dto.ResetPasswordRequest{Token: tok, NewPassword: "again-pass-1"})
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "tokens are single use")

	tok, err = s.ForgotPassword(ctx, "customer@fleetdesk.io")
	require.NoError(t, err)
	now = now.Add(resetTokenValidity)
	assert.ErrorIs(t, s.ResetPassword(ctx, dto.ResetPasswordRequest{Token: tok, NewPassword: "late-pass-1"}), common.ErrInvalidToken)
}

func TestList(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	page, err := s.List(ctx, dto.UserListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, SeedAdminID, page.Items[0].ID)

	page, err = s.List(ctx, dto.UserListQuery{Role: "DRIVER"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "FD-1024", page.Items[0].Vehicle.PlateNumber)

	page, err = s.List(ctx, dto.UserListQuery{ListQuery: dto.ListQuery{Search: "dora"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, SeedDispatcherID, page.Items[0].ID)

	u, err := s.UpdateRole(ctx, SeedCustomerID, "DRIVER")
	require.NoError(t, err)
	assert.Equal(t, "DRIVER", u.Role)
}
