package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/cryptox"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/dmitrijs2005/fleetdesk/internal/server/auth"
	"github.com/dmitrijs2005/fleetdesk/internal/server/config"
)

// Seeded account ids; fixtures reference them.
const (
	SeedAdminID      = "u-admin"
	SeedDispatcherID = "u-dispatch"
	SeedDriverID     = "u-driver"
	SeedCustomerID   = "u-customer"
)

const resetTokenValidity = 15 * time.Minute

type TokenPair struct {
	AccessToken string
	User        *User
}

type resetToken struct {
	userID    string
	expiresAt time.Time
}

type Service struct {
	repo                        Repository
	log                         logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	now                         func() time.Time

	mu          sync.Mutex
	resetTokens map[string]resetToken
}

func NewService(repo Repository, cfg *config.Config, log logging.Logger) *Service {
	return &Service{
		repo:                        repo,
		log:                         log,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
		resetTokens:                 map[string]resetToken{},
	}
}

// Seed creates one account per platform role, all sharing password.
func (s *Service) Seed(ctx context.Context, password string) error {
	hash := cryptox.HashPassword([]byte(password))
	created := s.now().Add(-90 * 24 * time.Hour)
	seed := []*User{
		{ID: SeedAdminID, Name: "Ada Admin", Email: "admin@fleetdesk.io", Role: "ADMIN"},
		{ID: SeedDispatcherID, Name: "Dora Dispatch", Email: "dispatch@fleetdesk.io", Role: "DISPATCHER"},
		{ID: SeedDriverID, Name: "Dan Driver", Email: "driver@fleetdesk.io", Role: "DRIVER", Phone: "+15550100", Rating: 4.8,
			Vehicle: &dto.Vehicle{Make: "Toyota", Model: "Prius", Color: "white", PlateNumber: "FD-1024", Type: "car", Year: 2021, Verified: true}},
		{ID: SeedCustomerID, Name: "Cleo Customer", Email: "customer@fleetdesk.io", Role: "CUSTOMER", WalletBalance: 25},
	}
	for i, u := range seed {
		u.Status = dto.StatusActive
		u.PasswordHash = hash
		u.CreatedAt = created.Add(time.Duration(i) * time.Minute)
		if _, err := s.repo.Create(ctx, u); err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("seed %s: %w", u.Email, err)
		}
	}
	return nil
}

func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (*User, error) {
	role := req.Role
	if role == "" {
		role = "CUSTOMER"
	}
	status := dto.StatusActive
	if role == "DRIVER" {
		status = dto.StatusPending
	}

	user, err := s.repo.Create(ctx, &User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         role,
		Status:       status,
		PasswordHash: cryptox.HashPassword([]byte(req.Password)),
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	return auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
}

// Login checks credentials. Unknown accounts and wrong passwords are both
// common.ErrorUnauthorized; suspended accounts are common.ErrorForbidden.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, []byte(password))
	if err != nil {
		s.log.Error(ctx, "stored password hash unusable", "user", user.ID, "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	if user.Status == dto.StatusSuspended || user.Status == dto.StatusBanned {
		return nil, common.ErrorForbidden
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: accessToken, User: user}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, req dto.UpdateProfileRequest) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) setPassword(ctx context.Context, user *User, password string) error {
	user.PasswordHash = cryptox.HashPassword([]byte(password))
	return s.repo.Update(ctx, user)
}

func (s *Service) ChangePassword(ctx context.Context, id string, req dto.ChangePasswordRequest) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	ok, err := cryptox.VerifyPassword(user.PasswordHash, []byte(req.CurrentPassword))
	if err != nil {
		return common.ErrorInternal
	}
	if !ok {
		return fmt.Errorf("%w: current password is incorrect", common.ErrorValidation)
	}
	return s.setPassword(ctx, user, req.NewPassword)
}

// ForgotPassword issues a reset token for email. Unknown addresses get an
// empty token and no error so callers cannot tell which accounts exist.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", common.ErrorInternal
	}

	s.mu.Lock()
	s.resetTokens[token] = resetToken{userID: user.ID, expiresAt: s.now().Add(resetTokenValidity)}
	s.mu.Unlock()

	s.log.Info(ctx, "password reset requested", "user", user.ID, "token", token)
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	s.mu.Lock()
	rt, ok := s.resetTokens[req.Token]
	delete(s.resetTokens, req.Token)
	s.mu.Unlock()

	if !ok || !s.now().Before(rt.expiresAt) {
		return common.ErrInvalidToken
	}
	user, err := s.repo.GetUserByID(ctx, rt.userID)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, req.NewPassword)
}

func (s *Service) List(ctx context.Context, q dto.UserListQuery) (dto.Page[dto.User], error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return dto.Page[dto.User]{}, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	items := make([]dto.User, 0, len(all))
	for _, u := range all {
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) && !strings.Contains(u.Email, search) {
			continue
		}
		items = append(items, u.DTO())
	}
	return dto.Paginate(items, q.ListQuery), nil
}

func (s *Service) UpdateRole(ctx context.Context, id, role string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}
