package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// TaskSvcFacade manages task records.
type TaskSvcFacade interface {
	// ListTasks retrieves the tasks visible to the principal.
	ListTasks(ctx context.Context, p domain.Principal) ([]domain.Task, error)

	// ListUpcomingTasks retrieves visible open tasks due within the next days.
	ListUpcomingTasks(ctx context.Context, p domain.Principal, days int) ([]domain.Task, error)

	// ListOverdueTasks retrieves visible open tasks whose due date has passed.
	ListOverdueTasks(ctx context.Context, p domain.Principal) ([]domain.Task, error)

	// GetTaskByID retrieves one visible task.
	GetTaskByID(ctx context.Context, p domain.Principal, taskID string) (*domain.Task, error)

	// CreateTask creates a task. Gate: admin, sales.
	CreateTask(ctx context.Context, p domain.Principal, req dto.CreateTaskRequest) (*domain.Task, error)

	// UpdateTask updates a visible task. Gate: admin, sales.
	UpdateTask(ctx context.Context, p domain.Principal, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error)

	// ToggleTaskCompletion flips the completed flag, recording a completed or
	// reopened audit entry. Gate: admin, sales.
	ToggleTaskCompletion(ctx context.Context, p domain.Principal, taskID string) (*domain.Task, error)

	// DeleteTask deletes a visible task. Gate: admin, sales.
	DeleteTask(ctx context.Context, p domain.Principal, taskID string) error
}
