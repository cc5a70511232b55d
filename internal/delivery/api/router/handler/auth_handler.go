package handler

import (
	"log/slog"
	"net/http"

	"storerating/internal/delivery/api/response"
	"storerating/internal/domain/entity"
	"storerating/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves registration, login and the caller's own account.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User *entity.User `json:"user"`
}

// Register handles self-registration. The account role is always USER.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.authUC.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, AuthResponse{Token: output.Token, User: output.User})
}

// Login handles the user login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.authUC.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, AuthResponse{Token: output.Token, User: output.User})
}

// UpdatePassword replaces the caller's password.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var input usecase.UpdatePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}

	if err := h.authUC.UpdatePassword(c.Request().Context(), user.ID, &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Password updated successfully")
}

// GetProfile returns the authenticated user. It also serves token verification.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, UserResponse{User: user})
}

// UpdateProfile changes the caller's name and address.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	updated, err := h.authUC.UpdateProfile(c.Request().Context(), user.ID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserResponse{User: updated})
}
