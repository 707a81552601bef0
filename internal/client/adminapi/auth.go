package adminapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/fleetdesk/internal/client/models"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type AuthService struct{ base }

// LoginResult is a successful sign-in.
type LoginResult struct {
	AccessToken string          `json:"accessToken"`
	User        *models.Profile `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.Profile, error) {
	return call[*models.Profile](ctx, s.base, http.MethodPost, "/auth/register", nil, req)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req := dto.LoginRequest{Email: email, Password: password}
	return call[*LoginResult](ctx, s.base, http.MethodPost, "/auth/login", nil, req)
}

func (s *AuthService) Profile(ctx context.Context) (*models.Profile, error) {
	return get[*models.Profile](ctx, s.base, "/auth/profile", nil)
}

func (s *AuthService) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*models.Profile, error) {
	return call[*models.Profile](ctx, s.base, http.MethodPatch, "/auth/profile", nil, req)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	_, err := call[dto.Message](ctx, s.base, http.MethodPost, "/auth/forgot-password", nil, dto.ForgotPasswordRequest{Email: email})
	return err
}

func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	_, err := call[dto.Message](ctx, s.base, http.MethodPost, "/auth/reset-password", nil, req)
	return err
}

func (s *AuthService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error {
	_, err := call[dto.Message](ctx, s.base, http.MethodPost, "/auth/change-password", nil, req)
	return err
}
