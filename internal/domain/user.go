package domain

import "time"

// Role distinguishes customers from administrators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the persisted account behind a storefront login.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile returns the read-only identity exposed to clients.
func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}

// UserProfile is the identity and role of the signed-in caller.
type UserProfile struct {
	ID       int64
	FullName string
	Email    string
	Role     Role
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
