package dto

import (
	"encoding/json"

	"gorm.io/datatypes"

	"task-manager-system.com/task-manager-system/pkg/constants"
)

type CreateAuditRequest struct {
	UserID  string                 `json:"userId"`
	Action  constants.AuditAction  `json:"action"`
	TaskID  uint                   `json:"taskId"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type UpdateAuditRequest struct {
	UserID  *string                 `json:"userId,omitempty"`
	Action  *constants.AuditAction  `json:"action,omitempty"`
	TaskID  *uint                   `json:"taskId,omitempty"`
	Details *map[string]interface{} `json:"details,omitempty"`
}

func (r UpdateAuditRequest) Fields() (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if r.UserID != nil {
		fields["user_id"] = *r.UserID
	}
	if r.Action != nil {
		fields["action"] = *r.Action
	}
	if r.TaskID != nil {
		fields["task_id"] = *r.TaskID
	}
	if r.Details != nil {
		raw, err := json.Marshal(*r.Details)
		if err != nil {
			return nil, err
		}
		fields["details"] = datatypes.JSON(raw)
	}
	return fields, nil
}
