package services_test

import (
	"context"
	"testing"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/core/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	password := "password123"

	suite.mockUserRepo.On("FindUserByEmail", ctx, "traveller@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "traveller@example.com" && user.PasswordHash != "" && user.PasswordHash != password
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, dto.RegisterRequest{
		Email:    "  Traveller@Example.com ",
		Password: password,
		Name:     "Test Traveller",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(createdUser.UserID)
	suite.Equal(domain.RoleUser, createdUser.Role)
	suite.Equal(domain.ProviderLocal, createdUser.AuthProvider)
	suite.True(utils.CheckPasswordHash(password, createdUser.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_EmailTaken() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "taken@example.com").Return(&domain.User{UserID: "u1"}, nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, dto.RegisterRequest{Email: "taken@example.com", Password: "password123", Name: "X"})

	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_ShortPassword() {
	_, err := suite.service.CreateUser(context.Background(), dto.RegisterRequest{Email: "a@b.co", Password: "short", Name: "X"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "save@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	createdUser, err := suite.service.CreateUser(ctx, dto.RegisterRequest{Email: "save@example.com", Password: "password123", Name: "X"})

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, assert.AnError)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "u1", Email: "a@example.com", PasswordHash: hash, Role: domain.RoleGuide}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@example.com").Return(user, nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	got, err := suite.service.AuthenticateUser(ctx, "A@example.com", "password123")
	suite.Require().NoError(err)
	suite.Equal("u1", got.UserID)

	_, err = suite.service.AuthenticateUser(ctx, "a@example.com", "wrong-password")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(ctx, "ghost@example.com", "password123")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- FindOrCreateGoogleUser Tests ---
func (suite *UserServiceTestSuite) TestGoogleUser_ExistingIdentity() {
	ctx := context.Background()
	existing := &domain.User{UserID: "u1"}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "sub-1").Return(existing, nil).Once()

	got, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-1", Email: "a@example.com", EmailVerified: true})

	suite.Require().NoError(err)
	suite.Equal("u1", got.UserID)
}

func (suite *UserServiceTestSuite) TestGoogleUser_LinksExistingEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: "u1", Email: "a@example.com"}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "sub-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@example.com").Return(existing, nil).Once()
	suite.mockUserRepo.On("LinkProvider", ctx, "u1", domain.ProviderGoogle, "sub-1").Return(nil).Once()

	got, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-1", Email: "A@example.com", EmailVerified: true})

	suite.Require().NoError(err)
	suite.Equal("u1", got.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGoogleUser_CreatesNewUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle && u.ProviderUserID != nil && *u.ProviderUserID == "sub-2" && u.PasswordHash == ""
	})).Return(nil).Once()

	got, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-2", Email: "new@example.com", EmailVerified: true})

	suite.Require().NoError(err)
	suite.Equal("new", got.Name)
	suite.Equal(domain.RoleUser, got.Role)
}

func (suite *UserServiceTestSuite) TestGoogleUser_UnverifiedEmail() {
	_, err := suite.service.FindOrCreateGoogleUser(context.Background(), domain.GoogleUserInfo{Subject: "sub", Email: "a@example.com"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
