package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/core/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// MockDealRepository is a mock type for the DealRepositoryFacade interface
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindDealByID(ctx context.Context, dealID string, scope domain.Scope) (*domain.Deal, error) {
	args := m.Called(ctx, dealID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) ListDeals(ctx context.Context, scope domain.Scope, stage domain.DealStage) ([]domain.Deal, error) {
	args := m.Called(ctx, scope, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealRepository) ListDealsByTeam(ctx context.Context, teamID string, stage domain.DealStage) ([]domain.Deal, error) {
	args := m.Called(ctx, teamID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) UpdateDeal(ctx context.Context, deal domain.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) DeleteDeal(ctx context.Context, dealID string) error {
	args := m.Called(ctx, dealID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type DealServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockDealRepository
	mockRecorder *MockActivityRecorder
	service      portssvc.DealSvcFacade
}

func (suite *DealServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDealRepository)
	suite.mockRecorder = new(MockActivityRecorder)
	suite.service = services.NewDealService(suite.mockRepo, suite.mockRecorder)
}

func (suite *DealServiceTestSuite) salesPrincipal() domain.Principal {
	return domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}
}

// --- Test Cases ---

func (suite *DealServiceTestSuite) TestCreateDeal_DefaultsToLead() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	req := dto.CreateDealRequest{
		Title:      "New opportunity",
		Value:      decimal.NewFromInt(5000),
		CustomerID: uuid.NewString(),
	}

	suite.mockRepo.On("SaveDeal", ctx, mock.MatchedBy(func(d domain.Deal) bool {
		return d.Stage == domain.StageLead && d.ClosedAt == nil && d.OwnerID == p.UserID
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionCreated && e.EntityType == domain.EntityDeal
	})).Return().Once()

	deal, err := suite.service.CreateDeal(ctx, p, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StageLead, deal.Stage)
	suite.Nil(deal.ClosedAt)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestCreateDeal_InClosingStageStampsClosedAt() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	stage := "won"
	req := dto.CreateDealRequest{
		Title:      "Walk-in sale",
		Stage:      &stage,
		CustomerID: uuid.NewString(),
	}

	suite.mockRepo.On("SaveDeal", ctx, mock.MatchedBy(func(d domain.Deal) bool {
		return d.Stage == domain.StageWon && d.ClosedAt != nil
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.AnythingOfType("domain.ActivityLogEntry")).Return().Once()

	deal, err := suite.service.CreateDeal(ctx, p, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(deal.ClosedAt)
	suite.WithinDuration(time.Now(), *deal.ClosedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestCreateDeal_InvalidStage() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	stage := "maybe"
	req := dto.CreateDealRequest{Title: "Bad stage", Stage: &stage, CustomerID: uuid.NewString()}

	deal, err := suite.service.CreateDeal(ctx, p, req)

	suite.Require().Error(err)
	suite.Nil(deal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDeal", mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestUpdateDealStage_SameStageIsNoOp() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	testID := uuid.NewString()
	existing := &domain.Deal{DealID: testID, Title: "Stuck deal", Stage: domain.StageProposal}

	suite.mockRepo.On("FindDealByID", ctx, testID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()

	deal, err := suite.service.UpdateDealStage(ctx, p, testID, domain.StageProposal)

	suite.Require().NoError(err)
	suite.Equal(existing, deal)

	// No write, no audit entry.
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDeal", mock.Anything, mock.Anything)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordActivity", mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestUpdateDealStage_TransitionToWonStampsClosedAt() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	testID := uuid.NewString()
	existing := &domain.Deal{DealID: testID, Title: "Closing deal", Stage: domain.StageNegotiation}

	suite.mockRepo.On("FindDealByID", ctx, testID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()
	suite.mockRepo.On("UpdateDeal", ctx, mock.MatchedBy(func(d domain.Deal) bool {
		return d.Stage == domain.StageWon && d.ClosedAt != nil && d.LastUpdatedBy == p.UserID
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionStageChanged &&
			e.OldValue != nil && *e.OldValue == "negotiation" &&
			e.NewValue != nil && *e.NewValue == "won"
	})).Return().Once()

	deal, err := suite.service.UpdateDealStage(ctx, p, testID, domain.StageWon)

	suite.Require().NoError(err)
	suite.Equal(domain.StageWon, deal.Stage)
	suite.Require().NotNil(deal.ClosedAt)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestUpdateDealStage_ReopeningClearsClosedAt() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	testID := uuid.NewString()
	closedAt := time.Now().Add(-time.Hour)
	existing := &domain.Deal{DealID: testID, Title: "Second chance", Stage: domain.StageLost, ClosedAt: &closedAt}

	suite.mockRepo.On("FindDealByID", ctx, testID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()
	suite.mockRepo.On("UpdateDeal", ctx, mock.MatchedBy(func(d domain.Deal) bool {
		return d.Stage == domain.StageNegotiation && d.ClosedAt == nil
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionStageChanged &&
			e.OldValue != nil && *e.OldValue == "lost" &&
			e.NewValue != nil && *e.NewValue == "negotiation"
	})).Return().Once()

	deal, err := suite.service.UpdateDealStage(ctx, p, testID, domain.StageNegotiation)

	suite.Require().NoError(err)
	suite.Nil(deal.ClosedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestUpdateDealStage_WonToLostRefreshesClosedAt() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	testID := uuid.NewString()
	oldClose := time.Now().Add(-48 * time.Hour)
	existing := &domain.Deal{DealID: testID, Title: "Flipped", Stage: domain.StageWon, ClosedAt: &oldClose}

	suite.mockRepo.On("FindDealByID", ctx, testID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()
	suite.mockRepo.On("UpdateDeal", ctx, mock.MatchedBy(func(d domain.Deal) bool {
		return d.Stage == domain.StageLost && d.ClosedAt != nil && d.ClosedAt.After(oldClose)
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.AnythingOfType("domain.ActivityLogEntry")).Return().Once()

	deal, err := suite.service.UpdateDealStage(ctx, p, testID, domain.StageLost)

	suite.Require().NoError(err)
	suite.Require().NotNil(deal.ClosedAt)
	suite.True(deal.ClosedAt.After(oldClose))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestUpdateDealStage_ViewerForbidden() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleViewer}

	deal, err := suite.service.UpdateDealStage(ctx, p, uuid.NewString(), domain.StageWon)

	suite.Require().Error(err)
	suite.Nil(deal)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindDealByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestUpdateDeal_NeverTouchesStage() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	testID := uuid.NewString()
	existing := &domain.Deal{DealID: testID, Title: "Old title", Stage: domain.StageProposal}

	newTitle := "New title"
	req := dto.UpdateDealRequest{Title: &newTitle}

	suite.mockRepo.On("FindDealByID", ctx, testID, mock.AnythingOfType("domain.Scope")).
		Return(existing, nil).Once()
	suite.mockRepo.On("UpdateDeal", ctx, mock.MatchedBy(func(d domain.Deal) bool {
		return d.Title == newTitle && d.Stage == domain.StageProposal
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordActivity", ctx, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionUpdated
	})).Return().Once()

	deal, err := suite.service.UpdateDeal(ctx, p, testID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StageProposal, deal.Stage)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestGetDealStats_AggregatesByStage() {
	ctx := context.Background()
	p := suite.salesPrincipal()
	deals := []domain.Deal{
		{Stage: domain.StageLead, Value: decimal.NewFromInt(100)},
		{Stage: domain.StageWon, Value: decimal.NewFromInt(2000)},
		{Stage: domain.StageWon, Value: decimal.NewFromInt(3000)},
		{Stage: domain.StageLost, Value: decimal.NewFromInt(400)},
	}

	suite.mockRepo.On("ListDeals", ctx, mock.AnythingOfType("domain.Scope"), domain.DealStage("")).
		Return(deals, nil).Once()

	stats, err := suite.service.GetDealStats(ctx, p)

	suite.Require().NoError(err)
	suite.Equal(4, stats.Total)
	suite.True(stats.TotalValue.Equal(decimal.NewFromInt(5500)))
	suite.True(stats.WonValue.Equal(decimal.NewFromInt(5000)))
	suite.True(stats.LostValue.Equal(decimal.NewFromInt(400)))
	suite.Equal(2, stats.ByStage[domain.StageWon].Count)
	suite.Equal(1, stats.ByStage[domain.StageLead].Count)
	// Every stage is present even when empty.
	suite.Equal(0, stats.ByStage[domain.StageContact].Count)
	suite.True(stats.ByStage[domain.StageContact].Value.Equal(decimal.Zero))
}

// --- Run Test Suite ---

func TestDealService(t *testing.T) {
	suite.Run(t, new(DealServiceTestSuite))
}
