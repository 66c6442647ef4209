package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the descriptive record attached 1:1 to a User. It is keyed by
// the user ID so a retry of the registration follow-up overwrites rather
// than duplicates.
type Profile struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DisplayName       string    `gorm:"size:100;not null" json:"display_name"`
	Email             string    `gorm:"size:255;not null" json:"email"`
	PhoneNumber       string    `gorm:"size:20;not null;index" json:"phone_number"`
	ProfilePictureURL string    `gorm:"type:text" json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	User              User      `gorm:"foreignKey:UserID" json:"-"`
}
