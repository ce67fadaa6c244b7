package repository

import (
	"time"

	"task-manager-system.com/task-manager-system/pkg/constants"
)

// TaskFilter narrows a listing. Zero values mean "not filtered".
type TaskFilter struct {
	Status      constants.TaskStatus
	Responsible string
	StartDate   *time.Time
	EndDate     *time.Time
	Tags        []string
}

type Pagination struct {
	Page  int
	Limit int
}

type Sort struct {
	OrderBy   string
	Direction string
}

// sortableFields maps the exposed order keys onto their columns. It is
// the allow list for ORDER BY composition; anything else falls back to
// created_at.
var sortableFields = map[string]string{
	"createdAt":    "created_at",
	"deliveryDate": "delivery_date",
	"status":       "status",
	"title":        "title",
	"updatedAt":    "updated_at",
}

// SafeOrder resolves the requested sort against the allow list.
// Unknown fields silently fall back rather than erroring, and the
// direction is normalized to asc/desc.
func (s Sort) SafeOrder() (field, direction string) {
	field, ok := sortableFields[s.OrderBy]
	if !ok {
		field = "created_at"
	}

	direction = "desc"
	if s.Direction == "asc" || s.Direction == "ASC" {
		direction = "asc"
	}

	return field, direction
}
