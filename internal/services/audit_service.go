package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "task-manager-system.com/task-manager-system/internal/errors"
	repository "task-manager-system.com/task-manager-system/internal/repositories"
	"task-manager-system.com/task-manager-system/pkg/constants"
	model "task-manager-system.com/task-manager-system/pkg/models"
)

// AuditService appends one entry per task mutation and serves the
// administrative CRUD surface over the trail. The update and delete
// operations exist for manual administration only; nothing in the
// mutation pathways calls them.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// LogAction records who did what to which task. Details carry the
// mutation payload and are serialized to the JSON column.
func (s *AuditService) LogAction(
	ctx context.Context,
	userID string,
	action constants.AuditAction,
	taskID uint,
	details interface{},
) (*model.AuditLog, error) {
	entry := &model.AuditLog{
		UserID: userID,
		Action: action,
		TaskID: taskID,
	}

	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return nil, fmt.Errorf("serialize audit details: %w", err)
		}
		entry.Details = datatypes.JSON(raw)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *AuditService) Create(ctx context.Context, userID string, action constants.AuditAction, taskID uint, details map[string]interface{}) (*model.AuditLog, error) {
	return s.LogAction(ctx, userID, action, taskID, details)
}

func (s *AuditService) List(ctx context.Context) ([]model.AuditLog, error) {
	return s.repo.List(ctx)
}

func (s *AuditService) Get(ctx context.Context, id uint) (*model.AuditLog, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrAuditLogNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *AuditService) ListByTask(ctx context.Context, taskID uint) ([]model.AuditLog, error) {
	return s.repo.ListByTask(ctx, taskID)
}

func (s *AuditService) Update(ctx context.Context, id uint, patch map[string]interface{}) (*model.AuditLog, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if len(patch) > 0 {
		if err := s.repo.UpdateFields(ctx, id, patch); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *AuditService) Remove(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
