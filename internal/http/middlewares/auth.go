package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"task-manager-system.com/task-manager-system/internal/services"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// Auth resolves the caller from the Authorization bearer token. The
// verified subject claim is the only accepted source of identity;
// there is deliberately no header fallback.
func Auth(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be a bearer token")
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextUserID, claims.Subject)
			c.Set(ContextUserEmail, claims.Email)

			return next(c)
		}
	}
}
