package dto

import (
	"time"

	"task-manager-system.com/task-manager-system/pkg/constants"
	model "task-manager-system.com/task-manager-system/pkg/models"
)

type CreateTaskRequest struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	DeliveryDate time.Time            `json:"deliveryDate"`
	Status       constants.TaskStatus `json:"status,omitempty"`
	Comments     string               `json:"comments,omitempty"`
	Responsible  string               `json:"responsible,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
	IsPublic     bool                 `json:"isPublic,omitempty"`
}

// UpdateTaskRequest is a partial patch: only non-nil fields are
// applied.
type UpdateTaskRequest struct {
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	DeliveryDate *time.Time            `json:"deliveryDate,omitempty"`
	Status       *constants.TaskStatus `json:"status,omitempty"`
	Comments     *string               `json:"comments,omitempty"`
	Responsible  *string               `json:"responsible,omitempty"`
	Tags         *[]string             `json:"tags,omitempty"`
	IsPublic     *bool                 `json:"isPublic,omitempty"`
}

// Fields translates the patch into column updates. Ownership is not
// patchable, so owner_id never appears here.
func (r UpdateTaskRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.DeliveryDate != nil {
		fields["delivery_date"] = *r.DeliveryDate
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Comments != nil {
		fields["comments"] = *r.Comments
	}
	if r.Responsible != nil {
		fields["responsible"] = *r.Responsible
	}
	if r.Tags != nil {
		fields["tags"] = model.TagList(*r.Tags)
	}
	if r.IsPublic != nil {
		fields["is_public"] = *r.IsPublic
	}
	return fields
}

type ListFilters struct {
	Status      string `json:"status,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Responsible string `json:"responsible,omitempty"`
	Tags        string `json:"tags,omitempty"`
}

type ListSorting struct {
	OrderBy        string `json:"orderBy"`
	OrderDirection string `json:"orderDirection"`
}

type TaskListResult struct {
	Data       []model.Task `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
	Filters    ListFilters  `json:"filters"`
	Sorting    ListSorting  `json:"sorting"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadFileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	File    interface{} `json:"file"`
}
