package models

import (
	"time"

	"github.com/google/uuid"
)

// Task categories are fixed; the client renders one screen per category.
const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
	CategoryShopping = "Shopping"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

var Categories = []string{CategoryWork, CategoryPersonal, CategoryShopping}
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_user_category" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Category  string    `gorm:"size:20;not null;index:idx_tasks_user_category" json:"category"`
	Priority  string    `gorm:"size:10;not null;default:'Medium'" json:"priority"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
