package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
	"github.com/samuelhany-cpu/blogging-platform/internal/logging"
	authmw "github.com/samuelhany-cpu/blogging-platform/internal/middleware/auth"
	"github.com/samuelhany-cpu/blogging-platform/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.New(http.StatusBadRequest, "invalid body", httperr.CodeValidationError)
	}

	user, err := h.Svc.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return httperr.New(http.StatusBadRequest, err.Error(), httperr.CodeValidationError)
		case errors.Is(err, service.ErrUserExists):
			return httperr.New(http.StatusBadRequest,
				"User with this email or username already exists", httperr.CodeUserExists)
		default:
			return httperr.StoreError()
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.New(http.StatusBadRequest, "invalid body", httperr.CodeValidationError)
	}

	res, err := h.Svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return httperr.InvalidCredentials()
		}
		return httperr.StoreError()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Login successful",
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
		"user":         res.User,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return httperr.New(http.StatusUnauthorized, "Refresh token required", httperr.CodeInvalidRefreshToken)
	}

	res, err := h.Svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return httperr.New(http.StatusUnauthorized, "Invalid refresh token", httperr.CodeInvalidRefreshToken)
		}
		return httperr.StoreError()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Token refreshed successfully",
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	id := authmw.CurrentUser(c)
	if id == nil {
		return httperr.AuthRequired()
	}

	if err := h.Svc.Logout(c.Request().Context(), id.ID, authmw.CurrentToken(c)); err != nil {
		logging.FromContext(c.Request().Context()).Error("logout failed", "error", err)
		return httperr.StoreError()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged out successfully",
		"code":    "LOGOUT_SUCCESS",
	})
}
