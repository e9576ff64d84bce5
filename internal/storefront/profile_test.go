package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/client"
	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/session"
)

func openSession(t *testing.T, creds session.Credentials) (*session.Context, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(creds)
	sess, err := session.Open(store)
	require.NoError(t, err)
	return sess, store
}

func TestResolveWithoutCredentialMakesNoRequest(t *testing.T) {
	api := &fakeAPI{}
	sess, _ := openSession(t, session.Credentials{})

	_, err := NewProfileResolver(api, sess).Resolve(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.Zero(t, api.meCalls)
}

func TestResolveCachesProfile(t *testing.T) {
	api := &fakeAPI{me: dto.UserProfile{ID: 4, FullName: "Ayu", Email: "ayu@example.com", Role: "admin"}}
	sess, _ := openSession(t, session.Credentials{Token: "t", CSRF: "c"})
	r := NewProfileResolver(api, sess)

	p, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, p.Role)
	_, err = r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.meCalls)
}

func TestResolveRejectedCredentialClearsSession(t *testing.T) {
	api := &fakeAPI{meErr: &client.APIError{Status: http.StatusUnauthorized, Message: "invalid or expired token"}}
	sess, store := openSession(t, session.Credentials{Token: "stale", CSRF: "c"})

	_, err := NewProfileResolver(api, sess).Resolve(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.False(t, sess.Authenticated())
	stored, _ := store.Load()
	assert.True(t, stored.Empty())
}

func TestResolveServerErrorKeepsSession(t *testing.T) {
	api := &fakeAPI{meErr: &client.APIError{Status: http.StatusInternalServerError, Message: "boom"}}
	sess, _ := openSession(t, session.Credentials{Token: "t"})

	_, err := NewProfileResolver(api, sess).Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, sess.Authenticated())
}
