package dto

import (
	"time"

	"github.com/openboard/comment_board_app/internal/core/domain"
)

// UserResponse is the external shape of a user account. Password hashes and
// reset tokens are structurally absent; they cannot leak from here.
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its external shape.
func ToUserResponse(user *domain.User) UserResponse {
	perms := make([]string, len(user.Permissions))
	for i, p := range user.Permissions {
		perms[i] = string(p)
	}
	return UserResponse{
		ID:          user.UserID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        string(user.Role),
		Permissions: perms,
		CreatedAt:   user.CreatedAt,
	}
}

// ListUsersResponse wraps the admin user listing.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain users.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: out}
}

// ListUsersParams defines query parameters for the admin user listing.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UpdatePermissionsRequest replaces a user's global permission set.
// Each entry must be one of read, write, delete.
type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required,dive,permflag"`
}

// PermissionsResponse reports a user's global permission set.
type PermissionsResponse struct {
	UserID      string   `json:"userId"`
	Permissions []string `json:"permissions"`
}

// ToPermissionSet converts the request strings to domain permissions.
func (r UpdatePermissionsRequest) ToPermissionSet() domain.PermissionSet {
	set := make(domain.PermissionSet, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perm := domain.Permission(p)
		if !set.Has(perm) {
			set = append(set, perm)
		}
	}
	return set
}
