package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/core/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// MockInteractionRepository is a mock type for the InteractionRepositoryFacade interface
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) FindInteractionByID(ctx context.Context, interactionID string, scope domain.Scope) (*domain.Interaction, error) {
	args := m.Called(ctx, interactionID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) ListRecentInteractions(ctx context.Context, scope domain.Scope, limit int) ([]domain.Interaction, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) ListInteractionsByCustomer(ctx context.Context, customerID string, scope domain.Scope) ([]domain.Interaction, error) {
	args := m.Called(ctx, customerID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) SaveInteraction(ctx context.Context, interaction domain.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockInteractionRepository) DeleteInteraction(ctx context.Context, interactionID string) error {
	args := m.Called(ctx, interactionID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type InteractionServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockInteractionRepository
	mockRecorder *MockActivityRecorder
	service      portssvc.InteractionSvcFacade
}

func (suite *InteractionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInteractionRepository)
	suite.mockRecorder = new(MockActivityRecorder)
	suite.service = services.NewInteractionService(suite.mockRepo, suite.mockRecorder)
}

// --- Test Cases ---

func (suite *InteractionServiceTestSuite) TestCreateInteraction_Success() {
	ctx := context.Background()
	teamID := uuid.NewString()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales, TeamID: &teamID}
	customerID := uuid.NewString()
	req := dto.CreateInteractionRequest{Type: "call", Content: "Discussed renewal terms", CustomerID: customerID}

	suite.mockRepo.On("SaveInteraction", ctx, mock.MatchedBy(func(i domain.Interaction) bool {
		return i.InteractionID != "" &&
			i.Type == domain.InteractionCall &&
			i.CustomerID == customerID &&
			i.OwnerID == p.UserID &&
			i.TeamID != nil && *i.TeamID == teamID
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionCreated && e.EntityType == domain.EntityInteraction
	})).Return().Once()

	interaction, err := suite.service.CreateInteraction(ctx, p, req)

	suite.Require().NoError(err)
	suite.Equal(domain.InteractionCall, interaction.Type)
	suite.Equal(p.UserID, interaction.OwnerID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *InteractionServiceTestSuite) TestCreateInteraction_InvalidType() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}
	req := dto.CreateInteractionRequest{Type: "fax", Content: "?", CustomerID: uuid.NewString()}

	interaction, err := suite.service.CreateInteraction(ctx, p, req)

	suite.Require().Error(err)
	suite.Nil(interaction)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInteraction", mock.Anything, mock.Anything)
}

func (suite *InteractionServiceTestSuite) TestCreateInteraction_ViewerForbidden() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleViewer}
	req := dto.CreateInteractionRequest{Type: "note", Content: "Left a voicemail", CustomerID: uuid.NewString()}

	interaction, err := suite.service.CreateInteraction(ctx, p, req)

	suite.Require().Error(err)
	suite.Nil(interaction)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInteraction", mock.Anything, mock.Anything)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordActivity", mock.Anything, mock.Anything)
}

func (suite *InteractionServiceTestSuite) TestListRecentInteractions_ScopedAndCapped() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}

	suite.mockRepo.On("ListRecentInteractions", ctx, mock.MatchedBy(func(s domain.Scope) bool {
		return !s.Unrestricted && s.OwnerID == p.UserID
	}), 50).Return([]domain.Interaction{}, nil).Once()

	interactions, err := suite.service.ListRecentInteractions(ctx, p)

	suite.Require().NoError(err)
	suite.NotNil(interactions)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InteractionServiceTestSuite) TestListInteractionsByCustomer_PassesScope() {
	ctx := context.Background()
	teamID := uuid.NewString()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales, TeamID: &teamID}
	customerID := uuid.NewString()
	history := []domain.Interaction{
		{InteractionID: uuid.NewString(), Type: domain.InteractionMeeting, CustomerID: customerID},
	}

	suite.mockRepo.On("ListInteractionsByCustomer", ctx, customerID, mock.MatchedBy(func(s domain.Scope) bool {
		return s.TeamID != nil && *s.TeamID == teamID
	})).Return(history, nil).Once()

	interactions, err := suite.service.ListInteractionsByCustomer(ctx, p, customerID)

	suite.Require().NoError(err)
	suite.Len(interactions, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InteractionServiceTestSuite) TestDeleteInteraction_RecordsAudit() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	interactionID := uuid.NewString()
	existing := &domain.Interaction{InteractionID: interactionID, Type: domain.InteractionEmail}

	suite.mockRepo.On("FindInteractionByID", ctx, interactionID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()
	suite.mockRepo.On("DeleteInteraction", ctx, interactionID).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionDeleted &&
			e.EntityType == domain.EntityInteraction &&
			e.EntityID == interactionID
	})).Return().Once()

	err := suite.service.DeleteInteraction(ctx, p, interactionID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *InteractionServiceTestSuite) TestDeleteInteraction_OutOfScopeReadsAsNotFound() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}
	interactionID := uuid.NewString()

	suite.mockRepo.On("FindInteractionByID", ctx, interactionID, mock.AnythingOfType("domain.Scope")).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteInteraction(ctx, p, interactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteInteraction", mock.Anything, mock.Anything)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordActivity", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestInteractionService(t *testing.T) {
	suite.Run(t, new(InteractionServiceTestSuite))
}
