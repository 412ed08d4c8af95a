package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
	"github.com/openboard/comment_board_app/internal/dto"
	"github.com/openboard/comment_board_app/internal/middleware"
)

// UserHandler handles user administration requests.
type UserHandler struct {
	userService portssvc.UserSvcFacade
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us portssvc.UserSvcFacade) *UserHandler {
	return &UserHandler{userService: us}
}

func registerUserRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewUserHandler(services.User)

	users := rg.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.GET("/:id/permissions", h.GetPermissions)
		users.PUT("/:id/permissions", h.UpdatePermissions)
	}
}

// resolveTargetID maps the literal "me" path segment to the requester's own ID.
func resolveTargetID(c *gin.Context, requesterID string) string {
	id := c.Param("id")
	if id == "me" {
		return requesterID
	}
	return id
}

// ListUsers godoc
// @Summary List users
// @Description Returns a page of user accounts. Admin only.
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "Invalid query parameters"})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// GetUser godoc
// @Summary Get a user
// @Description Returns a single user account. Admin only.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	user, err := h.userService.GetUserForAdmin(c.Request.Context(), userID, resolveTargetID(c, userID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// GetPermissions godoc
// @Summary Get a user's global permissions
// @Description Returns the target user's global permission flags. Users may read their own; reading another user's requires admin. The literal id "me" resolves to the requester.
// @Tags users
// @Produce json
// @Param id path string true "User ID or 'me'"
// @Success 200 {object} dto.PermissionsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/permissions [get]
func (h *UserHandler) GetPermissions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	targetID := resolveTargetID(c, userID)

	var perms []string
	if targetID == userID {
		user, err := h.userService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		perms = dto.ToUserResponse(user).Permissions
	} else {
		user, err := h.userService.GetUserForAdmin(c.Request.Context(), userID, targetID)
		if err != nil {
			respondError(c, err)
			return
		}
		perms = dto.ToUserResponse(user).Permissions
	}

	c.JSON(http.StatusOK, dto.PermissionsResponse{UserID: targetID, Permissions: perms})
}

// UpdatePermissions godoc
// @Summary Update a user's global permissions
// @Description Replaces the target user's global permission flags. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param permissions body dto.UpdatePermissionsRequest true "Replacement permission flags"
// @Success 200 {object} dto.PermissionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/permissions [put]
func (h *UserHandler) UpdatePermissions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var req dto.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "Invalid request body: " + err.Error()})
		return
	}

	targetID := resolveTargetID(c, userID)
	user, err := h.userService.UpdatePermissions(c.Request.Context(), userID, targetID, req.ToPermissionSet())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PermissionsResponse{UserID: user.UserID, Permissions: dto.ToUserResponse(user).Permissions})
}
