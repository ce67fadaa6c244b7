package model

import (
	"time"

	"gorm.io/datatypes"

	"task-manager-system.com/task-manager-system/pkg/constants"
)

// AuditLog records a single mutating action for compliance and
// forensic analysis. Entries are written once per mutation and are
// not touched again by the task pathways.
type AuditLog struct {
	ID     uint                  `gorm:"primaryKey" json:"id"`
	UserID string                `gorm:"size:36;not null;index" json:"userId"`
	Action constants.AuditAction `gorm:"type:varchar(32);not null" json:"action"`
	TaskID uint                  `gorm:"not null;index" json:"taskId"`
	// Details carries the mutation payload serialized as JSON.
	Details   datatypes.JSON `json:"details,omitempty"`
	Timestamp time.Time      `gorm:"autoCreateTime" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
