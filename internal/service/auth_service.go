package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sea-catering/storefront/internal/auth"
	"github.com/sea-catering/storefront/internal/config"
	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/repository"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a customer account.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" {
		return nil, apperrors.NewValidationError("full name is required", map[string]any{"field": "fullname"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("invalid email address", map[string]any{"field": "email"})
	}
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"field": "password"})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues an access token with its anti-forgery value.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.AccessToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.AccessToken{}, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, domain.AccessToken{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.AccessToken{}, apperrors.NewUnauthorized("invalid email or password")
	}
	token, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, domain.AccessToken{}, err
	}
	return user, token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
