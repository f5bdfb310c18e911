package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

const defaultUpcomingDays = 7

// taskService implements the TaskSvcFacade interface
type taskService struct {
	BaseService
	taskRepo portsrepo.TaskRepositoryFacade
	recorder portssvc.ActivityRecorderSvc
}

// NewTaskService creates a new task service with the provided dependencies
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade, recorder portssvc.ActivityRecorderSvc) portssvc.TaskSvcFacade {
	return &taskService{
		taskRepo: taskRepo,
		recorder: recorder,
	}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

// ListTasks retrieves the tasks visible to the principal.
func (s *taskService) ListTasks(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListTasks(ctx, domain.ScopeFor(p))
	if err != nil {
		s.LogError(ctx, err, "Failed to list tasks",
			slog.String("user_id", p.UserID))
		return nil, err
	}

	if tasks == nil {
		return []domain.Task{}, nil
	}
	return tasks, nil
}

// ListUpcomingTasks retrieves visible open tasks due within the next days.
// days <= 0 falls back to a week.
func (s *taskService) ListUpcomingTasks(ctx context.Context, p domain.Principal, days int) ([]domain.Task, error) {
	if days <= 0 {
		days = defaultUpcomingDays
	}

	now := time.Now()
	tasks, err := s.taskRepo.ListTasksDueBetween(ctx, domain.ScopeFor(p), now, now.AddDate(0, 0, days))
	if err != nil {
		s.LogError(ctx, err, "Failed to list upcoming tasks",
			slog.String("user_id", p.UserID),
			slog.Int("days", days))
		return nil, err
	}

	if tasks == nil {
		return []domain.Task{}, nil
	}
	return tasks, nil
}

// ListOverdueTasks retrieves visible open tasks whose due date has passed.
func (s *taskService) ListOverdueTasks(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListTasksOverdue(ctx, domain.ScopeFor(p), time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue tasks",
			slog.String("user_id", p.UserID))
		return nil, err
	}

	if tasks == nil {
		return []domain.Task{}, nil
	}
	return tasks, nil
}

// GetTaskByID retrieves one task. Ids outside the principal's scope read as
// not found.
func (s *taskService) GetTaskByID(ctx context.Context, p domain.Principal, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find task by ID",
				slog.String("task_id", taskID))
		}
		return nil, err
	}
	return task, nil
}

// CreateTask creates a task owned by the principal.
func (s *taskService) CreateTask(ctx context.Context, p domain.Principal, req dto.CreateTaskRequest) (*domain.Task, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	now := time.Now()
	task := domain.Task{
		TaskID:      uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		CustomerID:  req.CustomerID,
		DealID:      req.DealID,
		Ownership: domain.Ownership{
			OwnerID: p.UserID,
			TeamID:  p.TeamID,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		s.LogError(ctx, err, "Failed to save task",
			slog.String("task_id", task.TaskID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionCreated,
		EntityType: domain.EntityTask,
		EntityID:   task.TaskID,
		EntityName: task.Title,
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Task created successfully",
		slog.String("task_id", task.TaskID),
		slog.String("owner_id", p.UserID))
	return &task, nil
}

// UpdateTask updates a visible task. When the update flips the completed flag
// the audit entry records completed or reopened instead of a generic update.
func (s *taskService) UpdateTask(ctx context.Context, p domain.Principal, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindTaskByID(ctx, taskID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find task for update",
				slog.String("task_id", taskID))
		}
		return nil, err
	}

	action := domain.ActionUpdated
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Completed != nil && *req.Completed != task.Completed {
		task.Completed = *req.Completed
		if task.Completed {
			action = domain.ActionCompleted
		} else {
			action = domain.ActionReopened
		}
	}
	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = p.UserID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "Failed to update task",
			slog.String("task_id", taskID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     action,
		EntityType: domain.EntityTask,
		EntityID:   task.TaskID,
		EntityName: task.Title,
		UserID:     &p.UserID,
	})

	return task, nil
}

// ToggleTaskCompletion flips the completed flag of a visible task.
func (s *taskService) ToggleTaskCompletion(ctx context.Context, p domain.Principal, taskID string) (*domain.Task, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindTaskByID(ctx, taskID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find task for completion toggle",
				slog.String("task_id", taskID))
		}
		return nil, err
	}

	task.Completed = !task.Completed
	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = p.UserID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "Failed to toggle task completion",
			slog.String("task_id", taskID))
		return nil, err
	}

	action := domain.ActionReopened
	if task.Completed {
		action = domain.ActionCompleted
	}
	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     action,
		EntityType: domain.EntityTask,
		EntityID:   task.TaskID,
		EntityName: task.Title,
		UserID:     &p.UserID,
	})

	return task, nil
}

// DeleteTask deletes a visible task.
func (s *taskService) DeleteTask(ctx context.Context, p domain.Principal, taskID string) error {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return err
	}

	task, err := s.taskRepo.FindTaskByID(ctx, taskID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find task for deletion",
				slog.String("task_id", taskID))
		}
		return err
	}

	if err := s.taskRepo.DeleteTask(ctx, taskID); err != nil {
		s.LogError(ctx, err, "Failed to delete task",
			slog.String("task_id", taskID))
		return err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionDeleted,
		EntityType: domain.EntityTask,
		EntityID:   task.TaskID,
		EntityName: task.Title,
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Task deleted successfully",
		slog.String("task_id", taskID),
		slog.String("user_id", p.UserID))
	return nil
}
