package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openboard/comment_board_app/internal/apperrors"
	"github.com/openboard/comment_board_app/internal/core/domain"
	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
	"github.com/openboard/comment_board_app/internal/core/services"
	"github.com/openboard/comment_board_app/internal/platform/config"
	"github.com/openboard/comment_board_app/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockUserRepo    *MockUserRepository
	mockRefreshRepo *MockRefreshTokenRepository
	service         portssvc.TokenSvcFacade
	user            *domain.User
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:                  "test-access-secret",
		JWTIssuer:                  "test-issuer",
		JWTExpiryDuration:          15 * time.Minute,
		RefreshTokenSecret:         "test-refresh-secret",
		RefreshTokenExpiryDuration: 168 * time.Hour,
		ResetTokenExpiryDuration:   time.Hour,
	}
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRefreshRepo = new(MockRefreshTokenRepository)
	suite.service = services.NewTokenService(suite.cfg, suite.mockUserRepo, suite.mockRefreshRepo)
	suite.user = &domain.User{UserID: uuid.NewString(), Role: domain.RoleMember}
}

func (suite *TokenServiceTestSuite) TestIssueTokenPair_PersistsRefreshHash() {
	ctx := context.Background()

	var saved domain.RefreshToken
	suite.mockRefreshRepo.On("SaveRefreshToken", ctx, mock.AnythingOfType("domain.RefreshToken")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.RefreshToken)
		}).Return(nil).Once()

	pair, err := suite.service.IssueTokenPair(ctx, suite.user)

	suite.Require().NoError(err)
	suite.NotEmpty(pair.AccessToken)
	suite.NotEmpty(pair.RefreshToken)
	suite.NotEqual(pair.AccessToken, pair.RefreshToken)

	// Only the hash is at rest, never the token string itself.
	suite.Equal(utils.HashToken(pair.RefreshToken), saved.TokenHash)
	suite.NotContains(saved.TokenHash, pair.RefreshToken)
	suite.Equal(suite.user.UserID, saved.UserID)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestVerifyAccessToken_Success() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("SaveRefreshToken", ctx, mock.Anything).Return(nil).Once()
	pair, err := suite.service.IssueTokenPair(ctx, suite.user)
	suite.Require().NoError(err)

	userID, err := suite.service.VerifyAccessToken(ctx, pair.AccessToken)

	suite.Require().NoError(err)
	suite.Equal(suite.user.UserID, userID)
}

func (suite *TokenServiceTestSuite) TestVerifyAccessToken_Expired() {
	ctx := context.Background()
	expired, err := utils.GenerateJWT(suite.user.UserID, suite.cfg.JWTSecret, -time.Minute, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	_, err = suite.service.VerifyAccessToken(ctx, expired)

	suite.ErrorIs(err, apperrors.ErrTokenExpired)
}

func (suite *TokenServiceTestSuite) TestVerifyAccessToken_WrongSecret() {
	ctx := context.Background()
	forged, err := utils.GenerateJWT(suite.user.UserID, "some-other-secret", time.Minute, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	_, err = suite.service.VerifyAccessToken(ctx, forged)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestVerifyAccessToken_RefreshTokenRejected() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("SaveRefreshToken", ctx, mock.Anything).Return(nil).Once()
	pair, err := suite.service.IssueTokenPair(ctx, suite.user)
	suite.Require().NoError(err)

	// Signed with the refresh secret; must never pass as an access token.
	_, err = suite.service.VerifyAccessToken(ctx, pair.RefreshToken)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_Success() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("SaveRefreshToken", ctx, mock.Anything).Return(nil).Once()
	pair, err := suite.service.IssueTokenPair(ctx, suite.user)
	suite.Require().NoError(err)

	record := &domain.RefreshToken{
		TokenHash: utils.HashToken(pair.RefreshToken),
		UserID:    suite.user.UserID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	suite.mockRefreshRepo.On("FindRefreshToken", ctx, record.TokenHash).Return(record, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	accessToken, err := suite.service.RefreshAccessToken(ctx, pair.RefreshToken)

	suite.Require().NoError(err)
	userID, err := suite.service.VerifyAccessToken(ctx, accessToken)
	suite.Require().NoError(err)
	suite.Equal(suite.user.UserID, userID)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_PurgedByLogout() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("SaveRefreshToken", ctx, mock.Anything).Return(nil).Once()
	pair, err := suite.service.IssueTokenPair(ctx, suite.user)
	suite.Require().NoError(err)

	// The token still verifies cryptographically, but logout purged the store.
	suite.mockRefreshRepo.On("FindRefreshToken", ctx, utils.HashToken(pair.RefreshToken)).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err = suite.service.RefreshAccessToken(ctx, pair.RefreshToken)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_ExpiredSignature() {
	ctx := context.Background()
	expired, err := utils.GenerateJWT(suite.user.UserID, suite.cfg.RefreshTokenSecret, -time.Minute, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	_, err = suite.service.RefreshAccessToken(ctx, expired)

	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_ExpiredRecord() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("SaveRefreshToken", ctx, mock.Anything).Return(nil).Once()
	pair, err := suite.service.IssueTokenPair(ctx, suite.user)
	suite.Require().NoError(err)

	record := &domain.RefreshToken{
		TokenHash: utils.HashToken(pair.RefreshToken),
		UserID:    suite.user.UserID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	suite.mockRefreshRepo.On("FindRefreshToken", ctx, record.TokenHash).Return(record, nil).Once()

	_, err = suite.service.RefreshAccessToken(ctx, pair.RefreshToken)

	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_AccessTokenRejected() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("SaveRefreshToken", ctx, mock.Anything).Return(nil).Once()
	pair, err := suite.service.IssueTokenPair(ctx, suite.user)
	suite.Require().NoError(err)

	// Signed with the access secret; must never pass as a refresh token.
	_, err = suite.service.RefreshAccessToken(ctx, pair.AccessToken)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestRevokeRefreshTokens() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("DeleteRefreshTokensForUser", ctx, suite.user.UserID).Return(nil).Once()

	err := suite.service.RevokeRefreshTokens(ctx, suite.user.UserID)

	suite.Require().NoError(err)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestResetToken_RoundTrip() {
	ctx := context.Background()

	token, expiresAt, err := suite.service.GenerateResetToken(ctx, suite.user)
	suite.Require().NoError(err)
	suite.WithinDuration(time.Now().Add(suite.cfg.ResetTokenExpiryDuration), expiresAt, 5*time.Second)

	userID, err := suite.service.VerifyResetToken(ctx, token)
	suite.Require().NoError(err)
	suite.Equal(suite.user.UserID, userID)
}

func (suite *TokenServiceTestSuite) TestVerifyAccessToken_ResetTokenRejected() {
	ctx := context.Background()
	resetToken, _, err := suite.service.GenerateResetToken(ctx, suite.user)
	suite.Require().NoError(err)

	// A leaked reset token must never act as a bearer token.
	_, err = suite.service.VerifyAccessToken(ctx, resetToken)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestVerifyResetToken_AccessTokenRejected() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("SaveRefreshToken", ctx, mock.Anything).Return(nil).Once()
	pair, err := suite.service.IssueTokenPair(ctx, suite.user)
	suite.Require().NoError(err)

	// An access token must never drive a password reset.
	_, err = suite.service.VerifyResetToken(ctx, pair.AccessToken)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TokenServiceTestSuite) TestVerifyResetToken_Garbage() {
	ctx := context.Background()

	_, err := suite.service.VerifyResetToken(ctx, "not-a-token")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
