package services

import (
	"context"
	"errors"
	"io"
	"log"
	"math"

	"gorm.io/gorm"

	dto "task-manager-system.com/task-manager-system/internal/data_models"
	apperrors "task-manager-system.com/task-manager-system/internal/errors"
	repository "task-manager-system.com/task-manager-system/internal/repositories"
	"task-manager-system.com/task-manager-system/internal/storage"
	"task-manager-system.com/task-manager-system/pkg/constants"
	model "task-manager-system.com/task-manager-system/pkg/models"
)

// TaskService owns the ownership-or-public access rule: private tasks
// are mutable and visible only to their owner, public tasks to any
// authenticated caller.
type TaskService struct {
	repo    *repository.TaskRepository
	audit   *AuditService
	storage storage.ObjectStorage
}

func NewTaskService(
	repo *repository.TaskRepository,
	audit *AuditService,
	store storage.ObjectStorage,
) *TaskService {
	return &TaskService{
		repo:    repo,
		audit:   audit,
		storage: store,
	}
}

func (s *TaskService) Create(ctx context.Context, req dto.CreateTaskRequest, ownerID string) (*model.Task, error) {
	status := req.Status
	if status == "" {
		status = constants.StatusPending
	}

	task := &model.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		DeliveryDate: req.DeliveryDate,
		Comments:     req.Comments,
		Responsible:  req.Responsible,
		Tags:         model.TagList(req.Tags),
		IsPublic:     req.IsPublic,
		OwnerID:      ownerID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, ownerID, constants.ActionCreateTask, task.ID, req)

	return task, nil
}

// List returns the tasks visible to callerID, filtered, sorted and
// paginated. Page and limit are clamped to sane values rather than
// rejected.
func (s *TaskService) List(
	ctx context.Context,
	callerID string,
	filter repository.TaskFilter,
	page repository.Pagination,
	sort repository.Sort,
) (*dto.TaskListResult, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = 10
	}

	tasks, total, err := s.repo.List(ctx, callerID, filter, page, sort)
	if err != nil {
		return nil, err
	}

	field, direction := sort.SafeOrder()

	result := &dto.TaskListResult{
		Data:       tasks,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(page.Limit))),
		Filters: dto.ListFilters{
			Status:      string(filter.Status),
			Responsible: filter.Responsible,
		},
		Sorting: dto.ListSorting{
			OrderBy:        orderKeyForColumn(field),
			OrderDirection: direction,
		},
	}

	if filter.StartDate != nil {
		result.Filters.StartDate = filter.StartDate.Format("2006-01-02")
	}
	if filter.EndDate != nil {
		result.Filters.EndDate = filter.EndDate.Format("2006-01-02")
	}
	if len(filter.Tags) > 0 {
		result.Filters.Tags = filter.Tags[0]
	}

	return result, nil
}

// Get loads a task and checks visibility. An empty callerID means
// system access and skips the check.
func (s *TaskService) Get(ctx context.Context, id uint, callerID string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	if callerID != "" && !task.IsPublic && task.OwnerID != callerID {
		return nil, apperrors.ErrForbidden
	}

	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id uint, patch dto.UpdateTaskRequest, callerID string) (*model.Task, error) {
	task, err := s.Get(ctx, id, "")
	if err != nil {
		return nil, err
	}

	if !canMutate(task, callerID) {
		return nil, apperrors.ErrForbidden
	}

	if fields := patch.Fields(); len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	s.recordAudit(ctx, callerID, constants.ActionUpdateTask, id, patch)

	return s.Get(ctx, id, "")
}

func (s *TaskService) Remove(ctx context.Context, id uint, callerID string) (string, error) {
	task, err := s.Get(ctx, id, "")
	if err != nil {
		return "", err
	}

	if !canMutate(task, callerID) {
		return "", apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}

	if task.FileKey != "" {
		if err := s.storage.Delete(ctx, task.FileKey); err != nil {
			log.Printf("task %d: failed to delete attachment %s: %v", id, task.FileKey, err)
		}
	}

	s.recordAudit(ctx, callerID, constants.ActionDeleteTask, id, map[string]interface{}{
		"title": task.Title,
	})

	return "task deleted successfully", nil
}

// AttachFile uploads an attachment and records its metadata on the
// task. The task row is only touched after the store confirms the
// object, so an aborted upload never leaves a dangling reference.
func (s *TaskService) AttachFile(
	ctx context.Context,
	id uint,
	reader io.Reader,
	size int64,
	filename, mimeType string,
	callerID string,
) (*storage.UploadResult, error) {
	task, err := s.Get(ctx, id, "")
	if err != nil {
		return nil, err
	}

	if !canMutate(task, callerID) {
		return nil, apperrors.ErrForbidden
	}

	result, err := s.storage.Upload(ctx, reader, size, id, filename, mimeType)
	if err != nil {
		var clientErr *apperrors.Exception
		if errors.As(err, &clientErr) {
			return nil, err
		}
		log.Printf("task %d: upload by %s failed: %v", id, callerID, err)
		return nil, apperrors.ErrStorageFault
	}

	err = s.repo.UpdateFields(ctx, id, map[string]interface{}{
		"file_url":  result.URL,
		"file_name": result.Filename,
		"file_key":  result.Key,
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, callerID, constants.ActionUploadFile, id, map[string]interface{}{
		"filename": result.Filename,
		"size":     result.Size,
		"url":      result.URL,
	})

	return result, nil
}

func canMutate(task *model.Task, callerID string) bool {
	return task.IsPublic || task.OwnerID == callerID
}

// recordAudit is best-effort: the mutation has already committed, so a
// failed audit write is logged rather than surfaced to the caller.
func (s *TaskService) recordAudit(
	ctx context.Context,
	userID string,
	action constants.AuditAction,
	taskID uint,
	details interface{},
) {
	if _, err := s.audit.LogAction(ctx, userID, action, taskID, details); err != nil {
		log.Printf("audit: failed to record %s for task %d by user %s: %v", action, taskID, userID, err)
	}
}

func orderKeyForColumn(column string) string {
	switch column {
	case "created_at":
		return "createdAt"
	case "delivery_date":
		return "deliveryDate"
	case "updated_at":
		return "updatedAt"
	default:
		return column
	}
}
