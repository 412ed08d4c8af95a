package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/openboard/comment_board_app/internal/core/domain"
	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePermissions(ctx context.Context, userID string, permissions domain.PermissionSet) error {
	args := m.Called(ctx, userID, permissions)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ResetPassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

// --- Mock CommentRepository ---

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	var comment *domain.Comment
	if args.Get(0) != nil {
		comment = args.Get(0).(*domain.Comment)
	}
	return comment, args.Error(1)
}

func (m *MockCommentRepository) FindReadableComments(ctx context.Context, userID string, includeAll bool) ([]domain.Comment, error) {
	args := m.Called(ctx, userID, includeAll)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Error(1)
}

func (m *MockCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment, replaceACL bool) error {
	args := m.Called(ctx, comment, replaceACL)
	return args.Error(0)
}

func (m *MockCommentRepository) MarkCommentDeleted(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

// --- Mock RefreshTokenRepository ---

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	var token *domain.RefreshToken
	if args.Get(0) != nil {
		token = args.Get(0).(*domain.RefreshToken)
	}
	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TokenSvcFacade ---

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueTokenPair(ctx context.Context, user *domain.User) (*portssvc.TokenPair, error) {
	args := m.Called(ctx, user)
	var pair *portssvc.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*portssvc.TokenPair)
	}
	return pair, args.Error(1)
}

func (m *MockTokenService) GenerateResetToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) VerifyAccessToken(ctx context.Context, tokenString string) (string, error) {
	args := m.Called(ctx, tokenString)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) VerifyResetToken(ctx context.Context, tokenString string) (string, error) {
	args := m.Called(ctx, tokenString)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	args := m.Called(ctx, refreshTokenString)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock AuthorizerSvcFacade ---

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) ResolveSubject(ctx context.Context, userID string) (domain.Subject, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Subject), args.Error(1)
}

func (m *MockAuthorizer) Authorize(subject domain.Subject, action domain.Action, comment *domain.Comment) bool {
	args := m.Called(subject, action, comment)
	return args.Bool(0)
}
