package models

import (
	"strings"
	"time"
)

// User roles as returned by the backend API
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// AllRoles returns all valid role constants
func AllRoles() []string {
	return []string{RoleAdmin, RoleUser}
}

// IsValidRole checks if a role string is one of the known roles (case-insensitive)
func IsValidRole(role string) bool {
	normalized := strings.ToUpper(role)
	for _, valid := range AllRoles() {
		if normalized == valid {
			return true
		}
	}
	return false
}

// IsAdminRole reports whether the role grants admin privileges.
// The backend is inconsistent about casing, so the comparison is case-insensitive.
func IsAdminRole(role string) bool {
	return strings.ToUpper(role) == RoleAdmin
}

// User represents a user account as returned by the backend API.
// Password is write-only: accepted on create and reset, never returned.
type User struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// FullName returns the display name for table rows and greetings
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether this user has the admin role
func (u *User) IsAdmin() bool {
	return IsAdminRole(u.Role)
}
