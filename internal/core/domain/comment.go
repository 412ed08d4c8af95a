package domain

import "time"

// Action is something a subject attempts against the board. Read, write and
// delete may target a specific comment or (for read and write) act at global
// scope: listing readable comments, creating a new one. Administer covers the
// admin-only user management surface.
type Action string

const (
	ActionRead       Action = "read"
	ActionWrite      Action = "write"
	ActionDelete     Action = "delete"
	ActionAdminister Action = "administer"
)

// Permission returns the global capability flag that corresponds to the
// action, or "" for actions with no global-permission equivalent.
func (a Action) Permission() Permission {
	switch a {
	case ActionRead:
		return PermissionRead
	case ActionWrite:
		return PermissionWrite
	case ActionDelete:
		return PermissionDelete
	}
	return ""
}

// ACLEntry grants a single user per-comment rights. The flags are
// independent: canWrite without canRead permits overwriting content the
// grantee cannot fetch. That coupling is deliberately absent.
type ACLEntry struct {
	UserID    string
	CanRead   bool
	CanWrite  bool
	CanDelete bool
}

// Allows reports whether the entry grants the given action.
func (e ACLEntry) Allows(action Action) bool {
	switch action {
	case ActionRead:
		return e.CanRead
	case ActionWrite:
		return e.CanWrite
	case ActionDelete:
		return e.CanDelete
	}
	return false
}

// Comment is a board entry. The author always holds full rights over it,
// regardless of ACL contents. IsDeleted is a soft-delete flag: once set the
// comment is invisible and immutable for everyone, the author included.
type Comment struct {
	CommentID string
	Content   string
	AuthorID  string
	ACL       []ACLEntry
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Grant returns the effective ACL entry for a user. Duplicate entries for the
// same grantee resolve last-write-wins, so the scan runs back to front.
func (c *Comment) Grant(userID string) (ACLEntry, bool) {
	for i := len(c.ACL) - 1; i >= 0; i-- {
		if c.ACL[i].UserID == userID {
			return c.ACL[i], true
		}
	}
	return ACLEntry{}, false
}
