package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/taskmate/taskmate-backend/internal/dto"
	"github.com/taskmate/taskmate-backend/internal/models"
	"github.com/taskmate/taskmate-backend/internal/session"
	"gorm.io/gorm"
)

var (
	ErrEmptyTitle      = errors.New("task title is required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrTaskNotFound    = errors.New("task not found")
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) Create(ownerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !models.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	task := models.Task{
		ID:       uuid.New(),
		UserID:   ownerID,
		Title:    title,
		Category: req.Category,
		Priority: priority,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// List returns every task of the owner in the given category. There is no
// pagination; callers re-fetch the full category after each mutation.
func (s *TaskService) List(ownerID uuid.UUID, category string) ([]models.Task, error) {
	if !models.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	var tasks []models.Task
	err := s.db.Scopes(session.ForOwner(ownerID)).
		Where("category = ?", category).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// SetCompleted stores the given completion state. Repeating a call with the
// same value is a no-op.
func (s *TaskService) SetCompleted(ownerID, taskID uuid.UUID, completed bool) (*models.Task, error) {
	task, err := s.get(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(task).Update("completed", completed).Error; err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	task.Completed = completed
	return task, nil
}

// Delete removes the task and, per containment, all its helpers.
func (s *TaskService) Delete(ownerID, taskID uuid.UUID) error {
	task, err := s.get(ownerID, taskID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskHelper{}).Error; err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
}

func (s *TaskService) get(ownerID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.Scopes(session.ForOwner(ownerID)).First(&task, "id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return &task, nil
}
