package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	dto "task-manager-system.com/task-manager-system/internal/data_models"
	"task-manager-system.com/task-manager-system/internal/http/validators"
	repository "task-manager-system.com/task-manager-system/internal/repositories"
	"task-manager-system.com/task-manager-system/internal/services"
	"task-manager-system.com/task-manager-system/pkg/constants"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), req, callerID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter := repository.TaskFilter{
		Status:      constants.TaskStatus(c.QueryParam("status")),
		Responsible: c.QueryParam("responsible"),
	}

	if start, ok := parseDate(c.QueryParam("startDate")); ok {
		filter.StartDate = &start
	}
	if end, ok := parseDate(c.QueryParam("endDate")); ok {
		filter.EndDate = &end
	}
	if tags := c.QueryParam("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				filter.Tags = append(filter.Tags, trimmed)
			}
		}
	}

	page := repository.Pagination{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 10),
	}
	sort := repository.Sort{
		OrderBy:   c.QueryParam("orderBy"),
		Direction: c.QueryParam("orderDirection"),
	}

	result, err := h.taskService.List(c.Request().Context(), callerID(c), filter, page, sort)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), id, callerID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var patch dto.UpdateTaskRequest
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&patch); err != nil {
		return err
	}

	task, err := h.taskService.Update(c.Request().Context(), id, patch, callerID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	message, err := h.taskService.Remove(c.Request().Context(), id, callerID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *TaskHandler) UploadFile(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer file.Close()

	result, err := h.taskService.AttachFile(
		c.Request().Context(),
		id,
		file,
		fileHeader.Size,
		fileHeader.Filename,
		fileHeader.Header.Get(echo.HeaderContentType),
		callerID(c),
	)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.UploadFileResponse{
		Success: true,
		Message: "file uploaded successfully",
		File:    result,
	})
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "task id must be a positive integer")
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, defaultVal int) int {
	if v := c.QueryParam(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
