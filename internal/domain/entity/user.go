package entity

import "time"

// Role names.
const (
	RoleMember    = "MEMBER"
	RoleLibrarian = "LIBRARIAN"
	RoleAdmin     = "ADMIN"
)

// Role is a named role with a description, referenced by User.
type Role struct {
	ID          string
	Name        string // MEMBER, LIBRARIAN, ADMIN
	Description string
}

// User represents a member or librarian. A librarian cannot log in until
// Verified is true; members are never gated on the flag.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after registration
	RoleID       string
	Role         string // role name, resolved on read
	LibrarianID  string // empty for members
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
