package dto

import "github.com/taskmate/taskmate-backend/internal/models"

type CreateTaskRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

type UpdateTaskStatusRequest struct {
	Completed bool `json:"completed"`
}

type TaskListResponse struct {
	Tasks []models.Task `json:"tasks"`
	Total int           `json:"total"`
}

type AddHelperRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type UpdateHelperStatusRequest struct {
	Status string `json:"status"`
}

type HelperListResponse struct {
	Helpers []models.TaskHelper `json:"helpers"`
	Total   int                 `json:"total"`
}
