package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	HelperStatusPending  = "pending"
	HelperStatusAccepted = "accepted"
	HelperStatusRejected = "rejected"
)

// TaskHelper is an invited collaborator on a single task. DisplayName is a
// snapshot of the invitee's profile at invite time, not a live link.
type TaskHelper struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	PhoneNumber string    `gorm:"size:20;not null" json:"phone_number"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	Status      string    `gorm:"size:10;not null;default:'pending'" json:"status"`
	AddedAt     time.Time `gorm:"not null" json:"added_at"`
	Task        Task      `gorm:"foreignKey:TaskID" json:"-"`
}
