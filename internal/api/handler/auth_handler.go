package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/evento-nomina/payroll-system/internal/api/metrics"
	"github.com/evento-nomina/payroll-system/internal/api/middleware"
	"github.com/evento-nomina/payroll-system/internal/core/domain"
	"github.com/evento-nomina/payroll-system/internal/core/ports"
)

// AuthHandler exposes the account and session lifecycle over HTTP.
type AuthHandler struct {
	auth ports.AuthService
	log  zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// SignUp creates an account plus its employee profile and returns a
// fresh session token so the client is signed in immediately.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.SignUp(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("signup").Inc()
	h.log.Info().Str("account_id", result.Account.ID).Msg("account created")

	return c.JSON(http.StatusCreated, authResponse{
		User:    result.Account,
		Profile: result.Profile,
		Token:   result.Token,
	})
}

// SignIn exchanges email/password credentials for a session token.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrMissingCredentials
	}

	result, err := h.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.SignInsTotal.WithLabelValues("rate_limited").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}

	metrics.SignInsTotal.WithLabelValues("ok").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("signin").Inc()

	return c.JSON(http.StatusOK, authResponse{
		User:    result.Account,
		Profile: result.Profile,
		Token:   result.Token,
	})
}

// Verify validates the bearer token and returns the account and profile
// it belongs to. This is the trusted identity source for clients: a
// locally decoded token payload is never authoritative.
func (h *AuthHandler) Verify(c echo.Context) error {
	token, err := middleware.BearerToken(c)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	account, profile, err := h.auth.Verify(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenVerificationsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, identityResponse{User: account, Profile: profile})
}

// Refresh exchanges a valid (possibly expired) token for a fresh one.
// The token travels in the Authorization header; a body {"token": ...}
// is accepted for older clients.
func (h *AuthHandler) Refresh(c echo.Context) error {
	token, err := middleware.BearerToken(c)
	if err != nil {
		var req refreshRequest
		if bindErr := c.Bind(&req); bindErr != nil || req.Token == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing token")
		}
		token = req.Token
	}

	fresh, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("invalid").Inc()
		return err
	}

	metrics.RefreshesTotal.WithLabelValues("ok").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	return c.JSON(http.StatusOK, tokenResponse{Token: fresh})
}
