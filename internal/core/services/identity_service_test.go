package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/core/services"
	"github.com/solvikcrm/solvik_crm/internal/utils"
)

const (
	testJWTSecret = "test-secret-do-not-use"
	testJWTIssuer = "solvik-identity"
)

// --- Test Suite Setup ---

type IdentityServiceTestSuite struct {
	suite.Suite
	mockProfileRepo *MockProfileRepository
	service         portssvc.IdentitySvcFacade
}

func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.service = services.NewIdentityService(suite.mockProfileRepo, testJWTSecret, testJWTIssuer)
}

func (suite *IdentityServiceTestSuite) signToken(subject, email string, expiry time.Duration) string {
	claims := utils.AccessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    testJWTIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	return signed
}

// --- Test Cases ---

func (suite *IdentityServiceTestSuite) TestResolvePrincipal_WithProfile() {
	ctx := context.Background()
	userID := uuid.NewString()
	teamID := uuid.NewString()
	token := suite.signToken(userID, "sales@example.com", time.Hour)

	suite.mockProfileRepo.On("FindProfileByID", ctx, userID).
		Return(&domain.Profile{
			ProfileID: userID,
			Email:     "sales@example.com",
			Role:      domain.RoleSales,
			TeamID:    &teamID,
		}, nil).Once()

	p, err := suite.service.ResolvePrincipal(ctx, token)

	suite.Require().NoError(err)
	suite.Equal(userID, p.UserID)
	suite.Equal(domain.RoleSales, p.Role)
	suite.Require().NotNil(p.TeamID)
	suite.Equal(teamID, *p.TeamID)
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestResolvePrincipal_NoProfileResolvesAsViewer() {
	ctx := context.Background()
	userID := uuid.NewString()
	token := suite.signToken(userID, "new@example.com", time.Hour)

	suite.mockProfileRepo.On("FindProfileByID", ctx, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	p, err := suite.service.ResolvePrincipal(ctx, token)

	suite.Require().NoError(err)
	suite.Equal(userID, p.UserID)
	suite.Equal("new@example.com", p.Email)
	suite.Equal(domain.RoleViewer, p.Role)
	suite.Nil(p.TeamID)
}

func (suite *IdentityServiceTestSuite) TestResolvePrincipal_GarbageToken() {
	ctx := context.Background()

	p, err := suite.service.ResolvePrincipal(ctx, "not-a-token")

	suite.Require().Error(err)
	suite.Nil(p)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "FindProfileByID", mock.Anything, mock.Anything)
}

func (suite *IdentityServiceTestSuite) TestResolvePrincipal_ExpiredToken() {
	ctx := context.Background()
	token := suite.signToken(uuid.NewString(), "late@example.com", -time.Hour)

	p, err := suite.service.ResolvePrincipal(ctx, token)

	suite.Require().Error(err)
	suite.Nil(p)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *IdentityServiceTestSuite) TestResolvePrincipal_WrongSecret() {
	ctx := context.Background()
	claims := utils.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	suite.Require().NoError(err)

	p, resolveErr := suite.service.ResolvePrincipal(ctx, signed)

	suite.Require().Error(resolveErr)
	suite.Nil(p)
	suite.ErrorIs(resolveErr, apperrors.ErrUnauthorized)
}

func (suite *IdentityServiceTestSuite) TestResolvePrincipal_WrongIssuer() {
	ctx := context.Background()
	claims := utils.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "some-other-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)

	p, resolveErr := suite.service.ResolvePrincipal(ctx, signed)

	suite.Require().Error(resolveErr)
	suite.Nil(p)
	suite.ErrorIs(resolveErr, apperrors.ErrUnauthorized)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "FindProfileByID", mock.Anything, mock.Anything)
}

func (suite *IdentityServiceTestSuite) TestResolvePrincipal_MissingSubject() {
	ctx := context.Background()
	token := suite.signToken("", "nosub@example.com", time.Hour)

	p, err := suite.service.ResolvePrincipal(ctx, token)

	suite.Require().Error(err)
	suite.Nil(p)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Run Test Suite ---

func TestIdentityService(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}
