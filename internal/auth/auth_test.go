package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sea-catering/storefront/internal/domain"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

type fakeUsers map[int64]*domain.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	tok, err := tm.GenerateToken(7, domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.CSRF)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := tm.ParseToken(tok.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, tok.CSRF, claims.CSRF)
}

func TestParseTokenRejectsForeignAndExpired(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	tok, err := NewTokenManager("other", 60).GenerateToken(1, domain.RoleCustomer)
	require.NoError(t, err)
	_, err = tm.ParseToken(tok.Token)
	assert.Error(t, err)

	issued, err := tm.GenerateToken(1, domain.RoleCustomer)
	require.NoError(t, err)
	tm.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = tm.ParseToken(issued.Token)
	assert.Error(t, err)
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Sea-Cat3ring"))
	for _, weak := range []string{"Ab1!", "alllower1!", "ALLUPPER1!", "NoDigits!!", "NoSpecial12"} {
		assert.ErrorIs(t, ValidatePasswordStrength(weak), ErrWeakPassword, weak)
	}
}

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("Sea-Cat3ring", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "Sea-Cat3ring"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func newTestApp(tm *TokenManager, users fakeUsers) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code}})
		},
	})
	mw := NewAuthMiddleware(tm, users)
	ok := func(c *fiber.Ctx) error {
		p, found := PrincipalFromContext(c)
		if !found {
			return errors.New("principal missing")
		}
		return c.JSON(fiber.Map{"id": p.UserID()})
	}
	app.Get("/me", mw.Handle, ok)
	app.Post("/subscribe", mw.Handle, ok)
	app.Get("/admin", mw.Handle, RequireAdmin(), ok)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	users := fakeUsers{
		1: {ID: 1, Email: "c@example.com", Role: domain.RoleCustomer},
		2: {ID: 2, Email: "a@example.com", Role: domain.RoleAdmin},
	}
	app := newTestApp(tm, users)

	customer, err := tm.GenerateToken(1, domain.RoleCustomer)
	require.NoError(t, err)
	admin, err := tm.GenerateToken(2, domain.RoleAdmin)
	require.NoError(t, err)
	ghost, err := tm.GenerateToken(99, domain.RoleCustomer)
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		csrf   string
		want   int
	}{
		{"missing header", http.MethodGet, "/me", "", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/me", "nope", "", http.StatusUnauthorized},
		{"read without csrf", http.MethodGet, "/me", customer.Token, "", http.StatusOK},
		{"write without csrf", http.MethodPost, "/subscribe", customer.Token, "", http.StatusForbidden},
		{"write with foreign csrf", http.MethodPost, "/subscribe", customer.Token, admin.CSRF, http.StatusForbidden},
		{"write with csrf", http.MethodPost, "/subscribe", customer.Token, customer.CSRF, http.StatusOK},
		{"unknown user", http.MethodGet, "/me", ghost.Token, "", http.StatusUnauthorized},
		{"customer on admin route", http.MethodGet, "/admin", customer.Token, "", http.StatusForbidden},
		{"admin on admin route", http.MethodGet, "/admin", admin.Token, "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			if tc.csrf != "" {
				req.Header.Set(CSRFHeader, tc.csrf)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
