package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "task-manager-system.com/task-manager-system/internal/data_models"
	"task-manager-system.com/task-manager-system/internal/services"
)

// AuditHandler serves the administrative surface over the audit
// trail. Update and delete exist for manual use only; the task
// pathways never go through them.
type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

func (h *AuditHandler) Create(c echo.Context) error {
	var req dto.CreateAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Action == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "action is required")
	}

	userID := req.UserID
	if userID == "" {
		userID = callerID(c)
	}

	entry, err := h.auditService.Create(c.Request().Context(), userID, req.Action, req.TaskID, req.Details)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, entry)
}

func (h *AuditHandler) List(c echo.Context) error {
	entries, err := h.auditService.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *AuditHandler) Get(c echo.Context) error {
	id, err := auditID(c)
	if err != nil {
		return err
	}

	entry, err := h.auditService.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, entry)
}

func (h *AuditHandler) Update(c echo.Context) error {
	id, err := auditID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	fields, err := req.Fields()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "details must be a JSON object")
	}

	entry, err := h.auditService.Update(c.Request().Context(), id, fields)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, entry)
}

func (h *AuditHandler) Delete(c echo.Context) error {
	id, err := auditID(c)
	if err != nil {
		return err
	}

	if err := h.auditService.Remove(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "audit log entry deleted"})
}

func auditID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "audit id must be a positive integer")
	}
	return uint(id), nil
}
