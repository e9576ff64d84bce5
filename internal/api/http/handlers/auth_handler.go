package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sea-catering/storefront/internal/api/dto"
)

// AuthHandler exposes registration, login and the profile endpoint.
type AuthHandler struct {
	auth AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), req.FullName, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	_, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Message:   "Login successful",
		Token:     token.Token,
		CSRF:      token.CSRF,
		ExpiresAt: token.ExpiresAt,
	})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromProfile(p.User.Profile()))
}
