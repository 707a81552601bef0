package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/labstack/echo/v4"
)

func (h *handler) register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.users.Register(c.Request().Context(), req)
	if errors.Is(err, common.ErrorAlreadyExists) {
		return newAPIError(http.StatusConflict, common.CodeConflict, "An account with this email already exists")
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, user.DTO())
}

func (h *handler) login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	pair, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return newAPIError(http.StatusUnauthorized, common.CodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, common.ErrorForbidden):
		return newAPIError(http.StatusForbidden, common.CodeForbidden, "This account is suspended")
	case err != nil:
		return err
	}

	h.log.Info(c.Request().Context(), "user signed in", "user", pair.User.ID, "role", pair.User.Role)
	return respond(c, http.StatusOK, dto.LoginResponse{AccessToken: pair.AccessToken, User: pair.User.DTO()})
}

func (h *handler) profile(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), userID(c))
	if err != nil {
		return notFound("User", err)
	}
	return respond(c, http.StatusOK, user.DTO())
}

func (h *handler) updateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateProfile(c.Request().Context(), userID(c), req)
	if err != nil {
		return notFound("User", err)
	}
	return respond(c, http.StatusOK, user.DTO())
}

func (h *handler) changePassword(c echo.Context) error {
	var req dto.ChangePasswordRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.users.ChangePassword(c.Request().Context(), userID(c), req); err != nil {
		return notFound("User", err)
	}
	return respond(c, http.StatusOK, dto.Message{Message: "Password changed"})
}

func (h *handler) forgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if _, err := h.users.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.Message{Message: "If the account exists, a reset link has been sent"})
}

func (h *handler) resetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	err := h.users.ResetPassword(c.Request().Context(), req)
	if errors.Is(err, common.ErrInvalidToken) {
		return newAPIError(http.StatusBadRequest, common.CodeValidation, "Reset token is invalid or expired")
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.Message{Message: "Password has been reset"})
}
