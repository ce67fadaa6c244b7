package model

import (
	"time"

	"task-manager-system.com/task-manager-system/pkg/constants"
)

type Task struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	Title        string               `gorm:"size:200;not null" json:"title"`
	Description  string               `gorm:"size:2000;not null" json:"description"`
	Status       constants.TaskStatus `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	DeliveryDate time.Time            `gorm:"not null" json:"deliveryDate"`
	Comments     string               `gorm:"size:1000" json:"comments,omitempty"`
	Responsible  string               `gorm:"size:100" json:"responsible,omitempty"`
	Tags         TagList              `gorm:"type:text" json:"tags,omitempty"`
	IsPublic     bool                 `gorm:"not null;default:false" json:"isPublic"`
	// OwnerID is set at creation and never changed afterwards.
	OwnerID   string    `gorm:"size:36;not null;index" json:"ownerId"`
	FileURL   string    `json:"fileUrl,omitempty"`
	FileName  string    `json:"fileName,omitempty"`
	FileKey   string    `json:"fileKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
