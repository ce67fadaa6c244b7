package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "task-manager-system.com/task-manager-system/internal/data_models"
)

func ValidateRegisterRequest(r *dto.RegisterRequest) error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}
	if len(r.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}
	if r.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if r.Email == "" || r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}
	return nil
}
