package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/core/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// MockTeamRepository is a mock type for the TeamRepositoryWithTx interface
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) FindTeamBySlug(ctx context.Context, slug string) (*domain.Team, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockTeamRepository) SaveTeamTx(ctx context.Context, tx pgx.Tx, team domain.Team) error {
	args := m.Called(ctx, tx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateTeam(ctx context.Context, team domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) DeleteTeamTx(ctx context.Context, tx pgx.Tx, teamID string) error {
	args := m.Called(ctx, tx, teamID)
	return args.Error(0)
}

func (m *MockTeamRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTeamRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTeamRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockProfileRepository is a mock type for the ProfileRepositoryFacade interface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) CountTeamMembers(ctx context.Context, teamID string) (int, error) {
	args := m.Called(ctx, teamID)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteProfile(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

func (m *MockProfileRepository) SetProfileTeam(ctx context.Context, profileID string, teamID *string, role domain.Role, updatedBy string) error {
	args := m.Called(ctx, profileID, teamID, role, updatedBy)
	return args.Error(0)
}

func (m *MockProfileRepository) SetProfileTeamTx(ctx context.Context, tx pgx.Tx, profileID string, teamID *string, role domain.Role, updatedBy string) error {
	args := m.Called(ctx, tx, profileID, teamID, role, updatedBy)
	return args.Error(0)
}

func (m *MockProfileRepository) DetachTeamMembersTx(ctx context.Context, tx pgx.Tx, teamID string, updatedBy string) error {
	args := m.Called(ctx, tx, teamID, updatedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TeamServiceTestSuite struct {
	suite.Suite
	mockTeamRepo     *MockTeamRepository
	mockProfileRepo  *MockProfileRepository
	mockCustomerRepo *MockCustomerRepository
	mockDealRepo     *MockDealRepository
	mockTaskRepo     *MockTaskRepository
	service          portssvc.TeamSvcFacade
}

func (suite *TeamServiceTestSuite) SetupTest() {
	suite.mockTeamRepo = new(MockTeamRepository)
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockDealRepo = new(MockDealRepository)
	suite.mockTaskRepo = new(MockTaskRepository)
	suite.service = services.NewTeamService(
		suite.mockTeamRepo,
		suite.mockProfileRepo,
		suite.mockCustomerRepo,
		suite.mockDealRepo,
		suite.mockTaskRepo,
	)
}

func (suite *TeamServiceTestSuite) adminPrincipal() domain.Principal {
	return domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

// --- Test Cases ---

func (suite *TeamServiceTestSuite) TestCreateTeam_PromotesCreatorInTransaction() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}
	req := dto.CreateTeamRequest{Name: "North Sales", Slug: "north-sales"}

	suite.mockTeamRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTeamRepo.On("SaveTeamTx", ctx, nil, mock.MatchedBy(func(t domain.Team) bool {
		return t.Slug == "north-sales" && t.CreatedBy == p.UserID
	})).Return(nil).Once()
	suite.mockProfileRepo.On("SetProfileTeamTx", ctx, nil, p.UserID, mock.AnythingOfType("*string"), domain.RoleAdmin, p.UserID).
		Return(nil).Once()
	suite.mockTeamRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockTeamRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	team, err := suite.service.CreateTeam(ctx, p, req)

	suite.Require().NoError(err)
	suite.NotEmpty(team.TeamID)
	suite.Equal("north-sales", team.Slug)
	suite.mockTeamRepo.AssertExpectations(suite.T())
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestCreateTeam_AlreadyInTeam() {
	ctx := context.Background()
	existingTeam := uuid.NewString()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales, TeamID: &existingTeam}

	team, err := suite.service.CreateTeam(ctx, p, dto.CreateTeamRequest{Name: "Dup", Slug: "dup"})

	suite.Require().Error(err)
	suite.Nil(team)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TeamServiceTestSuite) TestCreateTeam_PromotionFailureRollsBack() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}
	promoteErr := apperrors.NewNotFoundError("profile not found")

	suite.mockTeamRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTeamRepo.On("SaveTeamTx", ctx, nil, mock.AnythingOfType("domain.Team")).Return(nil).Once()
	suite.mockProfileRepo.On("SetProfileTeamTx", ctx, nil, p.UserID, mock.AnythingOfType("*string"), domain.RoleAdmin, p.UserID).
		Return(promoteErr).Once()
	suite.mockTeamRepo.On("Rollback", ctx, nil).Return(nil).Once()

	team, err := suite.service.CreateTeam(ctx, p, dto.CreateTeamRequest{Name: "Half", Slug: "half"})

	suite.Require().Error(err)
	suite.Nil(team)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestDeleteTeam_DetachesMembersFirst() {
	ctx := context.Background()
	p := suite.adminPrincipal()
	teamID := uuid.NewString()

	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).
		Return(&domain.Team{TeamID: teamID, Name: "Doomed"}, nil).Once()
	suite.mockTeamRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProfileRepo.On("DetachTeamMembersTx", ctx, nil, teamID, p.UserID).Return(nil).Once()
	suite.mockTeamRepo.On("DeleteTeamTx", ctx, nil, teamID).Return(nil).Once()
	suite.mockTeamRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockTeamRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	err := suite.service.DeleteTeam(ctx, p, teamID)

	suite.Require().NoError(err)
	suite.mockTeamRepo.AssertExpectations(suite.T())
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestDeleteTeam_NonAdminForbidden() {
	ctx := context.Background()
	p := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSales}

	err := suite.service.DeleteTeam(ctx, p, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "FindTeamByID", mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestAddMember_DefaultsToSalesRole() {
	ctx := context.Background()
	p := suite.adminPrincipal()
	teamID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).
		Return(&domain.Team{TeamID: teamID}, nil).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, userID).
		Return(&domain.Profile{ProfileID: userID, Role: domain.RoleViewer}, nil).Once()
	suite.mockProfileRepo.On("SetProfileTeam", ctx, userID, mock.AnythingOfType("*string"), domain.RoleSales, p.UserID).
		Return(nil).Once()

	profile, err := suite.service.AddMember(ctx, p, teamID, userID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleSales, profile.Role)
	suite.Require().NotNil(profile.TeamID)
	suite.Equal(teamID, *profile.TeamID)
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestAddMember_AlreadyInTeam() {
	ctx := context.Background()
	p := suite.adminPrincipal()
	teamID := uuid.NewString()
	userID := uuid.NewString()
	otherTeam := uuid.NewString()

	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).
		Return(&domain.Team{TeamID: teamID}, nil).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, userID).
		Return(&domain.Profile{ProfileID: userID, TeamID: &otherTeam}, nil).Once()

	profile, err := suite.service.AddMember(ctx, p, teamID, userID, domain.RoleSales)

	suite.Require().Error(err)
	suite.Nil(profile)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "SetProfileTeam",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestRemoveMember_ResetsRoleToSales() {
	ctx := context.Background()
	p := suite.adminPrincipal()
	teamID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockProfileRepo.On("FindProfileByID", ctx, userID).
		Return(&domain.Profile{ProfileID: userID, TeamID: &teamID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockProfileRepo.On("SetProfileTeam", ctx, userID, (*string)(nil), domain.RoleSales, p.UserID).
		Return(nil).Once()

	err := suite.service.RemoveMember(ctx, p, teamID, userID)

	suite.Require().NoError(err)
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestRemoveMember_NotAMember() {
	ctx := context.Background()
	p := suite.adminPrincipal()
	teamID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockProfileRepo.On("FindProfileByID", ctx, userID).
		Return(&domain.Profile{ProfileID: userID}, nil).Once()

	err := suite.service.RemoveMember(ctx, p, teamID, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TeamServiceTestSuite) TestGetTeamStats_Aggregates() {
	ctx := context.Background()
	p := suite.adminPrincipal()
	teamID := uuid.NewString()

	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).
		Return(&domain.Team{TeamID: teamID, Name: "Metrics"}, nil).Once()
	suite.mockProfileRepo.On("CountTeamMembers", mock.Anything, teamID).Return(3, nil).Once()
	suite.mockCustomerRepo.On("CountCustomersByTeam", mock.Anything, teamID).Return(12, nil).Once()
	suite.mockDealRepo.On("ListDealsByTeam", mock.Anything, teamID, domain.DealStage("")).
		Return([]domain.Deal{
			{Stage: domain.StageWon, Value: decimal.NewFromInt(1000)},
			{Stage: domain.StageWon, Value: decimal.NewFromInt(500)},
			{Stage: domain.StageLost, Value: decimal.NewFromInt(700)},
			{Stage: domain.StageLead, Value: decimal.NewFromInt(50)},
		}, nil).Once()
	suite.mockTaskRepo.On("ListTasksByTeam", mock.Anything, teamID).
		Return([]domain.Task{{Completed: true}, {Completed: false}}, nil).Once()

	stats, err := suite.service.GetTeamStats(ctx, p, teamID)

	suite.Require().NoError(err)
	suite.Equal(3, stats.MemberCount)
	suite.Equal(12, stats.CustomerCount)
	suite.Equal(4, stats.DealCount)
	suite.Equal("2250", stats.TotalDealValue)
	suite.Equal("1500", stats.WonDealValue)
	suite.Equal(2, stats.TaskCount)
	suite.Equal(1, stats.CompletedTasks)
	// 2 won of 3 closed deals.
	suite.Equal(66, stats.WinRatePercent)
}

func (suite *TeamServiceTestSuite) TestGetTeamStats_NoClosedDeals() {
	ctx := context.Background()
	p := suite.adminPrincipal()
	teamID := uuid.NewString()

	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).
		Return(&domain.Team{TeamID: teamID, Name: "Fresh"}, nil).Once()
	suite.mockProfileRepo.On("CountTeamMembers", mock.Anything, teamID).Return(1, nil).Once()
	suite.mockCustomerRepo.On("CountCustomersByTeam", mock.Anything, teamID).Return(0, nil).Once()
	suite.mockDealRepo.On("ListDealsByTeam", mock.Anything, teamID, domain.DealStage("")).
		Return([]domain.Deal{}, nil).Once()
	suite.mockTaskRepo.On("ListTasksByTeam", mock.Anything, teamID).
		Return([]domain.Task{}, nil).Once()

	stats, err := suite.service.GetTeamStats(ctx, p, teamID)

	suite.Require().NoError(err)
	suite.Equal(0, stats.WinRatePercent)
	suite.Equal("0", stats.TotalDealValue)
}

// --- Run Test Suite ---

func TestTeamService(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
