package dto

import (
	"time"

	"github.com/sea-catering/storefront/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	FullName string `json:"fullname" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterResponse confirms a new account.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and its anti-forgery value.
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	CSRF      string    `json:"csrf"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserProfile is the wire form of the signed-in identity.
type UserProfile struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// FromProfile converts a domain profile.
func FromProfile(p domain.UserProfile) UserProfile {
	return UserProfile{ID: p.ID, FullName: p.FullName, Email: p.Email, Role: string(p.Role)}
}

// Domain converts back to the domain profile.
func (p UserProfile) Domain() domain.UserProfile {
	return domain.UserProfile{ID: p.ID, FullName: p.FullName, Email: p.Email, Role: domain.Role(p.Role)}
}
