package repositories

import (
	"context"
	"time"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// TaskReader defines scoped read operations for task data.
type TaskReader interface {
	// FindTaskByID retrieves a task visible under the scope.
	FindTaskByID(ctx context.Context, taskID string, scope domain.Scope) (*domain.Task, error)

	// ListTasks retrieves the tasks visible under the scope: open tasks first,
	// then by due date, then newest first.
	ListTasks(ctx context.Context, scope domain.Scope) ([]domain.Task, error)

	// ListTasksDueBetween retrieves open tasks with a due date inside [from, to].
	ListTasksDueBetween(ctx context.Context, scope domain.Scope, from, to time.Time) ([]domain.Task, error)

	// ListTasksOverdue retrieves open tasks whose due date passed before now.
	ListTasksOverdue(ctx context.Context, scope domain.Scope, now time.Time) ([]domain.Task, error)

	// ListTasksByTeam retrieves a team's tasks.
	ListTasksByTeam(ctx context.Context, teamID string) ([]domain.Task, error)
}

// TaskWriter defines write operations for task data.
type TaskWriter interface {
	// SaveTask persists a new task.
	SaveTask(ctx context.Context, task domain.Task) error

	// UpdateTask updates the mutable fields of an existing task.
	UpdateTask(ctx context.Context, task domain.Task) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, taskID string) error
}

// TaskRepositoryFacade combines all task repository interfaces.
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
}
