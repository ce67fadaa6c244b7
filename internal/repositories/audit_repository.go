package repository

import (
	"context"

	"gorm.io/gorm"

	model "task-manager-system.com/task-manager-system/pkg/models"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) List(ctx context.Context) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).Order("timestamp desc").Find(&entries).Error
	return entries, err
}

func (r *AuditRepository) FindByID(ctx context.Context, id uint) (*model.AuditLog, error) {
	var entry model.AuditLog
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *AuditRepository) ListByTask(ctx context.Context, taskID uint) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("timestamp asc").
		Find(&entries).Error
	return entries, err
}

func (r *AuditRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.AuditLog{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *AuditRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.AuditLog{}, "id = ?", id).Error
}
