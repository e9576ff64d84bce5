package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sea-catering/storefront/internal/config"
	"github.com/sea-catering/storefront/internal/domain"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

func newTestAuthService() *AuthService {
	return NewAuthService(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 60, BcryptCost: 4}, newFakeUserRepo())
}

func statusOf(err error) int {
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Siti Rahma", "siti@example.com", "Sea-Cat3ring")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEqual(t, "Sea-Cat3ring", user.PasswordHash)

	_, err = svc.Register(ctx, "Siti Again", "siti@example.com", "Sea-Cat3ring")
	assert.Equal(t, http.StatusConflict, statusOf(err))

	_, _, err = svc.Login(ctx, "siti@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	_, _, err = svc.Login(ctx, "nobody@example.com", "Sea-Cat3ring")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	logged, token, err := svc.Login(ctx, "siti@example.com", "Sea-Cat3ring")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	claims, err := svc.TokenManager().ParseToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, token.CSRF, claims.CSRF)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()
	cases := map[string][3]string{
		"missing name":  {"", "a@example.com", "Sea-Cat3ring"},
		"bad email":     {"A", "not-an-email", "Sea-Cat3ring"},
		"weak password": {"A", "a@example.com", "password"},
	}
	for name, in := range cases {
		_, err := svc.Register(ctx, in[0], in[1], in[2])
		assert.Equal(t, http.StatusBadRequest, statusOf(err), name)
	}
}
