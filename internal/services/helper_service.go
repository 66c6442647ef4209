package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmate/taskmate-backend/internal/models"
	"github.com/taskmate/taskmate-backend/internal/session"
	"gorm.io/gorm"
)

var (
	ErrHelperNotFound      = errors.New("helper not found")
	ErrInvalidHelperStatus = errors.New("helper status must be accepted or rejected")
)

type HelperService struct {
	db       *gorm.DB
	profiles *ProfileService
}

func NewHelperService(db *gorm.DB, profiles *ProfileService) *HelperService {
	return &HelperService{db: db, profiles: profiles}
}

// Add invites the user behind phone to collaborate on the task. The display
// name is snapshotted from the matched profile at invite time.
func (s *HelperService) Add(ownerID, taskID uuid.UUID, phone string) (*models.TaskHelper, error) {
	if err := s.taskExists(ownerID, taskID); err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindUserByPhone(phone)
	if err != nil {
		return nil, err
	}

	helper := models.TaskHelper{
		ID:          uuid.New(),
		TaskID:      taskID,
		PhoneNumber: phone,
		DisplayName: profile.DisplayName,
		Status:      models.HelperStatusPending,
		AddedAt:     time.Now().UTC(),
	}

	if err := s.db.Create(&helper).Error; err != nil {
		return nil, fmt.Errorf("failed to add helper: %w", err)
	}

	return &helper, nil
}

func (s *HelperService) List(ownerID, taskID uuid.UUID) ([]models.TaskHelper, error) {
	if err := s.taskExists(ownerID, taskID); err != nil {
		return nil, err
	}

	var helpers []models.TaskHelper
	if err := s.db.Where("task_id = ?", taskID).Find(&helpers).Error; err != nil {
		return nil, fmt.Errorf("failed to list helpers: %w", err)
	}
	return helpers, nil
}

// UpdateStatus sets the helper's status to accepted or rejected. A resolved
// status may be overwritten by a later call; whether the caller is the
// invited helper is left to the client. There is deliberately no owner
// check here: the invitee acting on the invitation is not the task owner.
func (s *HelperService) UpdateStatus(taskID, helperID uuid.UUID, status string) (*models.TaskHelper, error) {
	if status != models.HelperStatusAccepted && status != models.HelperStatusRejected {
		return nil, ErrInvalidHelperStatus
	}

	var helper models.TaskHelper
	err := s.db.Where("task_id = ?", taskID).First(&helper, "id = ?", helperID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHelperNotFound
		}
		return nil, fmt.Errorf("failed to load helper: %w", err)
	}

	if err := s.db.Model(&helper).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update helper status: %w", err)
	}

	helper.Status = status
	return &helper, nil
}

func (s *HelperService) taskExists(ownerID, taskID uuid.UUID) error {
	var task models.Task
	err := s.db.Scopes(session.ForOwner(ownerID)).First(&task, "id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to load task: %w", err)
	}
	return nil
}
