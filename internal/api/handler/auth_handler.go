package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken      string          `json:"access_token"`
	SessionToken     string          `json:"session_token"`
	SessionExpiresAt time.Time       `json:"session_expires_at"`
	Account          *domain.Account `json:"account"`
}

type sessionResponse struct {
	Valid bool `json:"valid"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account registration details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, account)
}

// Login authenticates an account and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Wrong password, unknown email and throttled attempts all
			// yield one 401; the cause never leaves the log.
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		// Infrastructure failures are not the caller's fault and surface
		// through the central error handler.
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:      result.AccessToken,
		SessionToken:     result.SessionToken,
		SessionExpiresAt: result.SessionExpiresAt,
		Account:          result.Account,
	})
}

// Logout clears the caller's session. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), accountID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Session reports whether the caller's session is still active. The
// predicate is evaluated fresh on every call.
//
// @Summary      Check session validity
// @Tags         auth
// @Produce      json
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	valid, err := h.authService.SessionValid(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{Valid: valid})
}
