package domain

import "time"

// Role is the coarse-grained account role. Administrative endpoints are gated
// on RoleAdmin alone; global permissions never substitute for it.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Permission is a global capability flag attached to a user account,
// independent of any specific comment.
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionWrite  Permission = "write"
	PermissionDelete Permission = "delete"
)

// ValidPermission reports whether p is one of the known capability flags.
func ValidPermission(p Permission) bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionDelete:
		return true
	}
	return false
}

// PermissionSet is the set of global capability flags held by a user.
// It is stored and serialized as a list but treated as a set.
type PermissionSet []Permission

// Has reports whether the set contains the given permission.
func (s PermissionSet) Has(p Permission) bool {
	for _, held := range s {
		if held == p {
			return true
		}
	}
	return false
}

// DefaultPermissions is what a freshly registered account receives: it may
// author comments, but sees only comments it wrote or was explicitly granted.
func DefaultPermissions() PermissionSet {
	return PermissionSet{PermissionWrite}
}

// User represents a registered account.
// PasswordHash and the reset token fields are credential material and must
// never appear in any external response.
type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Permissions  PermissionSet

	// Set only while a password reset is pending; cleared on consumption.
	ResetTokenHash      string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subject is the authenticated identity attached to a request after token
// verification. It is resolved fresh from the credential store on every
// request so that permission changes take effect immediately; it is never
// persisted or cached.
type Subject struct {
	UserID      string
	Role        Role
	Permissions PermissionSet
}

// SubjectOf builds the request-scoped subject for a user.
func SubjectOf(u *User) Subject {
	return Subject{
		UserID:      u.UserID,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}

// IsAdmin reports whether the subject carries the administrative capability.
func (s Subject) IsAdmin() bool {
	return s.Role == RoleAdmin
}
