package repository

import (
	"context"

	"gorm.io/gorm"

	model "task-manager-system.com/task-manager-system/pkg/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the page of tasks visible to callerID (owned or public)
// matching the filter, plus the total match count before slicing.
func (r *TaskRepository) List(
	ctx context.Context,
	callerID string,
	filter TaskFilter,
	page Pagination,
	sort Sort,
) ([]model.Task, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("owner_id = ? OR is_public = ?", callerID, true)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("delivery_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}

	if filter.Responsible != "" {
		query = query.Where("responsible = ?", filter.Responsible)
	}

	if len(filter.Tags) > 0 {
		// Tags persist as a comma-separated column; wrapping both sides
		// in commas gives exact-element containment for the first tag.
		query = query.Where("(',' || tags || ',') LIKE ?", "%,"+filter.Tags[0]+",%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	field, direction := sort.SafeOrder()

	var tasks []model.Task
	err := query.
		Order(field + " " + direction).
		Offset((page.Page - 1) * page.Limit).
		Limit(page.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateFields applies a partial patch by column. The owner_id column
// is never part of the map, so ownership cannot move after creation.
func (r *TaskRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id).Error
}
