package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
)

type PgxTaskRepository struct {
	BaseRepository
}

// newPgxTaskRepository creates a new repository for task data.
func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

var FULL_TASK_SELECT_QUERY = `
SELECT
	tk.task_id, tk.title, tk.description, tk.due_date, tk.priority, tk.completed,
	tk.customer_id, tk.deal_id, tk.owner_id, tk.team_id,
	tk.created_at, tk.created_by, tk.last_updated_at, tk.last_updated_by
FROM tasks tk
`

func (r *PgxTaskRepository) getTasks(ctx context.Context, filterQuery string, args ...any) ([]domain.Task, error) {
	query := FULL_TASK_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tasks", err)
	}
	defer rows.Close()
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Task{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect task rows", err)
	}
	return tasks, nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string, scope domain.Scope) (*domain.Task, error) {
	clause, args := scopeClause("tk", scope, 2)
	tasks, err := r.getTasks(ctx, `WHERE tk.task_id = $1 AND `+clause, append([]any{taskID}, args...)...)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperrors.NewNotFoundError("task " + taskID + " not found")
	}
	return &tasks[0], nil
}

func (r *PgxTaskRepository) ListTasks(ctx context.Context, scope domain.Scope) ([]domain.Task, error) {
	clause, args := scopeClause("tk", scope, 1)
	filter := `WHERE ` + clause + ` ORDER BY tk.completed ASC, tk.due_date ASC NULLS LAST, tk.created_at DESC`
	return r.getTasks(ctx, filter, args...)
}

func (r *PgxTaskRepository) ListTasksDueBetween(ctx context.Context, scope domain.Scope, from, to time.Time) ([]domain.Task, error) {
	clause, args := scopeClause("tk", scope, 1)
	filter := fmt.Sprintf(
		`WHERE %s AND tk.completed = FALSE AND tk.due_date BETWEEN $%d AND $%d ORDER BY tk.due_date ASC`,
		clause, len(args)+1, len(args)+2,
	)
	args = append(args, from, to)
	return r.getTasks(ctx, filter, args...)
}

func (r *PgxTaskRepository) ListTasksOverdue(ctx context.Context, scope domain.Scope, now time.Time) ([]domain.Task, error) {
	clause, args := scopeClause("tk", scope, 1)
	filter := fmt.Sprintf(
		`WHERE %s AND tk.completed = FALSE AND tk.due_date < $%d ORDER BY tk.due_date ASC`,
		clause, len(args)+1,
	)
	args = append(args, now)
	return r.getTasks(ctx, filter, args...)
}

func (r *PgxTaskRepository) ListTasksByTeam(ctx context.Context, teamID string) ([]domain.Task, error) {
	return r.getTasks(ctx, `WHERE tk.team_id = $1 ORDER BY tk.created_at DESC`, teamID)
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
		INSERT INTO tasks (
			task_id, title, description, due_date, priority, completed,
			customer_id, deal_id, owner_id, team_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		task.TaskID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Completed,
		task.CustomerID,
		task.DealID,
		task.OwnerID,
		task.TeamID,
		task.CreatedAt,
		task.CreatedBy,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("task " + task.TaskID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("linked customer or deal does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save task "+task.TaskID, err)
	}
	return nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, priority = $4, completed = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE task_id = $8;
	`
	result, err := r.Pool.Exec(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Completed,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
		task.TaskID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update task "+task.TaskID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("task " + task.TaskID + " not found")
	}
	return nil
}

func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, taskID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete task "+taskID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("task " + taskID + " not found")
	}
	return nil
}
