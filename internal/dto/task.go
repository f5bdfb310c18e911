package dto

import (
	"time"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// --- Task DTOs ---

// CreateTaskRequest defines data for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	CustomerID  *string    `json:"customerID" binding:"omitempty,uuid"`
	DealID      *string    `json:"dealID" binding:"omitempty,uuid"`
}

// UpdateTaskRequest defines the updatable task fields. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Completed   *bool      `json:"completed"`
}

// TaskResponse defines data returned for a task.
type TaskResponse struct {
	TaskID      string     `json:"taskID"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Completed   bool       `json:"completed"`
	CustomerID  *string    `json:"customerID,omitempty"`
	DealID      *string    `json:"dealID,omitempty"`
	OwnerID     string     `json:"ownerID"`
	TeamID      *string    `json:"teamID,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToTaskResponse converts domain.Task to DTO.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Completed:   t.Completed,
		CustomerID:  t.CustomerID,
		DealID:      t.DealID,
		OwnerID:     t.OwnerID,
		TeamID:      t.TeamID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.LastUpdatedAt,
	}
}

// ListTasksResponse wraps a list of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// ToListTasksResponse converts a slice of domain.Task to DTO.
func ToListTasksResponse(ts []domain.Task) ListTasksResponse {
	list := make([]TaskResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTaskResponse(&t)
	}
	return ListTasksResponse{Tasks: list}
}
