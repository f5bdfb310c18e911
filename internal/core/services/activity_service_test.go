package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/core/services"
)

// MockActivityLogRepository is a mock type for the ActivityLogRepositoryFacade interface
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) ListRecentEntries(ctx context.Context, scope domain.Scope, limit int) ([]domain.ActivityLogEntry, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLogEntry), args.Error(1)
}

func (m *MockActivityLogRepository) ListEntriesByEntity(ctx context.Context, entityType, entityID string) ([]domain.ActivityLogEntry, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLogEntry), args.Error(1)
}

func (m *MockActivityLogRepository) SaveEntry(ctx context.Context, entry domain.ActivityLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ActivityServiceTestSuite struct {
	suite.Suite
	mockRepo *MockActivityLogRepository
	service  portssvc.ActivitySvcFacade
}

func (suite *ActivityServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockActivityLogRepository)
	suite.service = services.NewActivityService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ActivityServiceTestSuite) TestRecordActivity_FillsIDAndTimestamp() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.EntryID != "" && !e.CreatedAt.IsZero() && e.Action == domain.ActionCreated
	})).Return(nil).Once()

	suite.service.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionCreated,
		EntityType: domain.EntityCustomer,
		EntityID:   uuid.NewString(),
		UserID:     &userID,
	})

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestRecordActivity_SaveFailureIsSwallowed() {
	ctx := context.Background()

	suite.mockRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.ActivityLogEntry")).
		Return(assert.AnError).Once()

	// The recorder returns nothing: a failed write must not panic or propagate.
	suite.service.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionDeleted,
		EntityType: domain.EntityDeal,
		EntityID:   uuid.NewString(),
	})

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestListRecentActivity_DefaultLimit() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	suite.mockRepo.On("ListRecentEntries", ctx, mock.MatchedBy(func(s domain.Scope) bool {
		return s.Unrestricted
	}), 50).Return([]domain.ActivityLogEntry{}, nil).Once()

	entries, err := suite.service.ListRecentActivity(ctx, p, 0)

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestListRecentActivity_LimitCapped() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	suite.mockRepo.On("ListRecentEntries", ctx, mock.AnythingOfType("domain.Scope"), 500).
		Return([]domain.ActivityLogEntry{}, nil).Once()

	_, err := suite.service.ListRecentActivity(ctx, p, 10000)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestListRecentActivity_ScopedForNonAdmin() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}

	suite.mockRepo.On("ListRecentEntries", ctx, mock.MatchedBy(func(s domain.Scope) bool {
		return !s.Unrestricted && s.OwnerID == p.UserID
	}), 50).Return([]domain.ActivityLogEntry{}, nil).Once()

	_, err := suite.service.ListRecentActivity(ctx, p, 0)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestListActivityByEntity_SurvivesDeletedEntities() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}
	entityID := uuid.NewString()
	history := []domain.ActivityLogEntry{
		{EntryID: uuid.NewString(), Action: domain.ActionDeleted, EntityType: domain.EntityCustomer, EntityID: entityID},
		{EntryID: uuid.NewString(), Action: domain.ActionCreated, EntityType: domain.EntityCustomer, EntityID: entityID},
	}

	suite.mockRepo.On("ListEntriesByEntity", ctx, domain.EntityCustomer, entityID).
		Return(history, nil).Once()

	entries, err := suite.service.ListActivityByEntity(ctx, p, domain.EntityCustomer, entityID)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestActivityService(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}
