package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openboard/comment_board_app/internal/apperrors"
	"github.com/openboard/comment_board_app/internal/core/domain"
	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
	"github.com/openboard/comment_board_app/internal/dto"
	"github.com/openboard/comment_board_app/internal/handlers"
	"github.com/openboard/comment_board_app/internal/platform/config"
)

type CommentHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockUserSvc    *MockUserService
	mockTokenSvc   *MockTokenService
	mockCommentSvc *MockCommentService
	userID         string
}

func (suite *CommentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.userID = uuid.NewString()

	suite.mockUserSvc = new(MockUserService)
	suite.mockTokenSvc = new(MockTokenService)
	suite.mockCommentSvc = new(MockCommentService)

	services := &portssvc.ServiceContainer{
		User:    suite.mockUserSvc,
		Token:   suite.mockTokenSvc,
		Comment: suite.mockCommentSvc,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, services)

	// Every authed request in this suite presents the same valid token.
	suite.mockTokenSvc.On("VerifyAccessToken", mock.Anything, "valid-access").Return(suite.userID, nil)
}

func (suite *CommentHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		buf, err := json.Marshal(body)
		suite.Require().NoError(err)
		req, _ = http.NewRequest(method, path, bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer valid-access")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func testComment(authorID string) *domain.Comment {
	now := time.Now()
	return &domain.Comment{
		CommentID: uuid.NewString(),
		Content:   "hello board",
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (suite *CommentHandlerTestSuite) TestListComments_Success() {
	comments := []domain.Comment{*testComment(suite.userID), *testComment(uuid.NewString())}
	suite.mockCommentSvc.On("ListComments", mock.Anything, suite.userID).Return(comments, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/comments", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListCommentsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Comments, 2)
	suite.mockCommentSvc.AssertExpectations(suite.T())
}

func (suite *CommentHandlerTestSuite) TestListComments_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/comments", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCommentSvc.AssertNotCalled(suite.T(), "ListComments", mock.Anything, mock.Anything)
}

func (suite *CommentHandlerTestSuite) TestCreateComment_Success() {
	comment := testComment(suite.userID)
	grantee := uuid.NewString()

	suite.mockCommentSvc.On("CreateComment", mock.Anything, suite.userID,
		mock.MatchedBy(func(req dto.CreateCommentRequest) bool {
			return req.Content == "hello board" &&
				len(req.Permissions) == 1 && req.Permissions[0].UserID == grantee
		})).Return(comment, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/comments", dto.CreateCommentRequest{
		Content:     "hello board",
		Permissions: []dto.ACLEntryRequest{{UserID: grantee, CanRead: true}},
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CommentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(comment.CommentID, resp.ID)
	suite.Equal(suite.userID, resp.AuthorID)
}

func (suite *CommentHandlerTestSuite) TestCreateComment_WithoutWritePermission() {
	suite.mockCommentSvc.On("CreateComment", mock.Anything, suite.userID, mock.Anything).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.do(http.MethodPost, "/api/v1/comments", dto.CreateCommentRequest{Content: "hi"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "forbidden")
}

func (suite *CommentHandlerTestSuite) TestCreateComment_MissingContent() {
	w := suite.do(http.MethodPost, "/api/v1/comments", map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCommentSvc.AssertNotCalled(suite.T(), "CreateComment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommentHandlerTestSuite) TestGetComment_Success() {
	comment := testComment(uuid.NewString())
	suite.mockCommentSvc.On("GetComment", mock.Anything, suite.userID, comment.CommentID).
		Return(comment, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/comments/"+comment.CommentID, nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *CommentHandlerTestSuite) TestGetComment_DenialIs404() {
	commentID := uuid.NewString()
	suite.mockCommentSvc.On("GetComment", mock.Anything, suite.userID, commentID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/comments/%s", commentID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "not_found")
}

func (suite *CommentHandlerTestSuite) TestUpdateComment_Success() {
	comment := testComment(suite.userID)
	comment.Content = "rewritten"

	suite.mockCommentSvc.On("UpdateComment", mock.Anything, suite.userID, comment.CommentID,
		mock.MatchedBy(func(req dto.UpdateCommentRequest) bool {
			return req.Content == "rewritten" && req.Permissions == nil
		})).Return(comment, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/comments/"+comment.CommentID, dto.UpdateCommentRequest{
		Content: "rewritten",
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.CommentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("rewritten", resp.Content)
}

func (suite *CommentHandlerTestSuite) TestUpdateComment_WithACLReplacement() {
	comment := testComment(suite.userID)
	newACL := []dto.ACLEntryRequest{{UserID: uuid.NewString(), CanWrite: true}}

	suite.mockCommentSvc.On("UpdateComment", mock.Anything, suite.userID, comment.CommentID,
		mock.MatchedBy(func(req dto.UpdateCommentRequest) bool {
			return req.Permissions != nil && len(*req.Permissions) == 1
		})).Return(comment, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/comments/"+comment.CommentID, dto.UpdateCommentRequest{
		Content:     "rewritten",
		Permissions: &newACL,
	})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *CommentHandlerTestSuite) TestDeleteComment_Success() {
	commentID := uuid.NewString()
	suite.mockCommentSvc.On("DeleteComment", mock.Anything, suite.userID, commentID).
		Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/comments/"+commentID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockCommentSvc.AssertExpectations(suite.T())
}

func (suite *CommentHandlerTestSuite) TestDeleteComment_DenialIs404() {
	commentID := uuid.NewString()
	suite.mockCommentSvc.On("DeleteComment", mock.Anything, suite.userID, commentID).
		Return(apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodDelete, "/api/v1/comments/"+commentID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestCommentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CommentHandlerTestSuite))
}
