package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evento-nomina/payroll-system/internal/api/middleware"
	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it
// is a routing mistake and fails closed with 401.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.ContextIdentity).(domain.Identity)
	if !ok || identity.AccountID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
