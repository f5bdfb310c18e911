package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/core/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// MockTaskRepository is a mock type for the TaskRepositoryFacade interface
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindTaskByID(ctx context.Context, taskID string, scope domain.Scope) (*domain.Task, error) {
	args := m.Called(ctx, taskID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListTasks(ctx context.Context, scope domain.Scope) ([]domain.Task, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListTasksDueBetween(ctx context.Context, scope domain.Scope, from, to time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListTasksOverdue(ctx context.Context, scope domain.Scope, now time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, scope, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListTasksByTeam(ctx context.Context, teamID string) ([]domain.Task, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TaskServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockTaskRepository
	mockRecorder *MockActivityRecorder
	service      portssvc.TaskSvcFacade
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTaskRepository)
	suite.mockRecorder = new(MockActivityRecorder)
	suite.service = services.NewTaskService(suite.mockRepo, suite.mockRecorder)
}

// --- Test Cases ---

func (suite *TaskServiceTestSuite) TestListUpcomingTasks_DefaultWindow() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}

	suite.mockRepo.On("ListTasksDueBetween", ctx, mock.AnythingOfType("domain.Scope"),
		mock.AnythingOfType("time.Time"), mock.MatchedBy(func(to time.Time) bool {
			// days <= 0 falls back to a one-week window.
			return to.After(time.Now().Add(6*24*time.Hour)) && to.Before(time.Now().Add(8*24*time.Hour))
		})).Return([]domain.Task{}, nil).Once()

	tasks, err := suite.service.ListUpcomingTasks(ctx, p, 0)

	suite.Require().NoError(err)
	suite.NotNil(tasks)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestUpdateTask_CompletingRecordsCompleted() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}
	testID := uuid.NewString()
	existing := &domain.Task{TaskID: testID, Title: "Call back", Completed: false}

	completed := true
	req := dto.UpdateTaskRequest{Completed: &completed}

	suite.mockRepo.On("FindTaskByID", ctx, testID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()
	suite.mockRepo.On("UpdateTask", ctx, mock.MatchedBy(func(t domain.Task) bool {
		return t.Completed
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionCompleted && e.EntityType == domain.EntityTask
	})).Return().Once()

	task, err := suite.service.UpdateTask(ctx, p, testID, req)

	suite.Require().NoError(err)
	suite.True(task.Completed)
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestUpdateTask_SameCompletedValueRecordsUpdated() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}
	testID := uuid.NewString()
	existing := &domain.Task{TaskID: testID, Title: "Already open", Completed: false}

	stillOpen := false
	newTitle := "Renamed"
	req := dto.UpdateTaskRequest{Title: &newTitle, Completed: &stillOpen}

	suite.mockRepo.On("FindTaskByID", ctx, testID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()
	suite.mockRepo.On("UpdateTask", ctx, mock.AnythingOfType("domain.Task")).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionUpdated
	})).Return().Once()

	task, err := suite.service.UpdateTask(ctx, p, testID, req)

	suite.Require().NoError(err)
	suite.Equal("Renamed", task.Title)
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestToggleTaskCompletion_ReopeningRecordsReopened() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	testID := uuid.NewString()
	existing := &domain.Task{TaskID: testID, Title: "Done once", Completed: true}

	suite.mockRepo.On("FindTaskByID", ctx, testID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()
	suite.mockRepo.On("UpdateTask", ctx, mock.MatchedBy(func(t domain.Task) bool {
		return !t.Completed
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionReopened
	})).Return().Once()

	task, err := suite.service.ToggleTaskCompletion(ctx, p, testID)

	suite.Require().NoError(err)
	suite.False(task.Completed)
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestToggleTaskCompletion_ViewerForbidden() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleViewer}

	task, err := suite.service.ToggleTaskCompletion(ctx, p, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(task)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindTaskByID", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestTaskService(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
