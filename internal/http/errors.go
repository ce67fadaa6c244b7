package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-manager-system.com/task-manager-system/internal/errors"
	middleware "task-manager-system.com/task-manager-system/internal/http/middlewares"
)

// toHTTPError maps service errors onto HTTP responses. Anything that
// is not a known Exception becomes a generic 500 so internals never
// leak to clients.
func toHTTPError(err error) error {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func callerID(c echo.Context) string {
	if id, ok := c.Get(middleware.ContextUserID).(string); ok {
		return id
	}
	return ""
}
