package model

import "strings"

// Role represents the role of a user on the event platform.
type Role string

const (
	// RoleVisitor can browse published events and join them.
	RoleVisitor Role = "visitor"
	// RoleOrganizer can additionally create and manage own events.
	RoleOrganizer Role = "organizer"
	// RoleAdmin moderates events and manages user roles.
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a raw role string to the closed Role set.
// The backend has historically returned inconsistent casing ("admin",
// "Admin", "ADMIN"), so comparison is case-insensitive. Unrecognized
// values map to RoleVisitor, the lowest privilege.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "organizer":
		return RoleOrganizer
	case "admin":
		return RoleAdmin
	default:
		return RoleVisitor
	}
}

// User represents an account on the event platform.
// This mirrors the backend's user response shape.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     Role   `json:"role"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanOrganize returns true if the user may create events.
func (u *User) CanOrganize() bool {
	return u.Role == RoleOrganizer || u.Role == RoleAdmin
}

// DisplayName returns the full name when set, the username otherwise.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
