package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-manager-system.com/task-manager-system/internal/data_models"
	"task-manager-system.com/task-manager-system/pkg/constants"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if len(r.Title) < 3 || len(r.Title) > 200 {
		return echo.NewHTTPError(http.StatusBadRequest, "title must be between 3 and 200 characters")
	}
	if r.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if len(r.Description) < 10 || len(r.Description) > 2000 {
		return echo.NewHTTPError(http.StatusBadRequest, "description must be between 10 and 2000 characters")
	}
	if r.DeliveryDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "deliveryDate is required (ISO 8601)")
	}
	if r.Status != "" && !constants.ValidStatus(r.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be one of OPEN, PENDING, IN_PROGRESS, DONE")
	}
	if len(r.Comments) > 1000 {
		return echo.NewHTTPError(http.StatusBadRequest, "comments must not exceed 1000 characters")
	}
	if len(r.Responsible) > 100 {
		return echo.NewHTTPError(http.StatusBadRequest, "responsible must not exceed 100 characters")
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.Title != nil && (len(*r.Title) < 3 || len(*r.Title) > 200) {
		return echo.NewHTTPError(http.StatusBadRequest, "title must be between 3 and 200 characters")
	}
	if r.Description != nil && (len(*r.Description) < 10 || len(*r.Description) > 2000) {
		return echo.NewHTTPError(http.StatusBadRequest, "description must be between 10 and 2000 characters")
	}
	if r.Status != nil && !constants.ValidStatus(*r.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be one of OPEN, PENDING, IN_PROGRESS, DONE")
	}
	if r.Comments != nil && len(*r.Comments) > 1000 {
		return echo.NewHTTPError(http.StatusBadRequest, "comments must not exceed 1000 characters")
	}
	if r.Responsible != nil && len(*r.Responsible) > 100 {
		return echo.NewHTTPError(http.StatusBadRequest, "responsible must not exceed 100 characters")
	}
	return nil
}
