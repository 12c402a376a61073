// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"shophere/internal/delivery/http/middleware"
	"shophere/internal/delivery/http/response"
	"shophere/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// --- Request models ---

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Picture *string `json:"picture"`
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{
		"accountId": output.AccountID.String(),
	}, "Account registered successfully")
}

// SignIn handles the credential verification and token issuance request.
func (h *AccountHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.SignIn(c.Request().Context(), &usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"accessToken": output.AccessToken,
		"accountId":   output.AccountID.String(),
	}, "Signed in successfully")
}

// EmailExists reports whether an email address is already registered.
func (h *AccountHandler) EmailExists(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return response.BindingError(c, "INVALID_INPUT", "Query parameter 'email' is required")
	}

	exists, err := h.uc.EmailExists(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"exists": exists}, "")
}

// Me returns the public projection of the authenticated account.
func (h *AccountHandler) Me(c echo.Context) error {
	email, ok := c.Get(middleware.ContextKeyAccountEmail).(string)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Identity missing from token")
	}

	view, err := h.uc.LookupByEmail(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// ChangePassword replaces the authenticated account's credential.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	email, ok := c.Get(middleware.ContextKeyAccountEmail).(string)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Identity missing from token")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ChangePassword(c.Request().Context(), email, &usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// UpdateProfile applies targeted mutations to the authenticated account's profile.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	email, ok := c.Get(middleware.ContextKeyAccountEmail).(string)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Identity missing from token")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	err := h.uc.UpdateProfile(c.Request().Context(), email, &usecase.UpdateProfileInput{
		Name:    req.Name,
		Picture: req.Picture,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Profile updated successfully")
}

// Promote grants the owner role to the account identified by the path email.
func (h *AccountHandler) Promote(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return response.BindingError(c, "INVALID_INPUT", "Path parameter 'email' is required")
	}

	id, err := h.uc.PromoteToOwner(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"accountId": id.String(),
	}, "Account promoted successfully")
}

// Delete removes the account identified by the path id.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Path parameter 'id' must be a valid UUID")
	}

	deletedID, err := h.uc.Delete(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"accountId": deletedID.String(),
	}, "Account deleted successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
