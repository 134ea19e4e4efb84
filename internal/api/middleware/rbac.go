package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

// RequireCapability enforces the authorization gate at the server
// boundary. Every state-mutating or privileged route must carry this in
// addition to any client-side gating.
func RequireCapability(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(ContextIdentity).(domain.Identity)
			if !ok || !domain.Authorize(identity.Role, capability) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
