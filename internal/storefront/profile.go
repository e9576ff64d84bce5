package storefront

import (
	"context"
	"errors"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/client"
	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/session"
)

// ProfileAPI fetches the identity behind the current credential.
type ProfileAPI interface {
	Me(ctx context.Context) (dto.UserProfile, error)
}

// ProfileResolver turns a stored credential into a UserProfile.
type ProfileResolver struct {
	api     ProfileAPI
	session *session.Context
}

func NewProfileResolver(api ProfileAPI, sess *session.Context) *ProfileResolver {
	return &ProfileResolver{api: api, session: sess}
}

// Resolve returns the profile for the stored credential. Without a credential it
// fails with client.ErrUnauthenticated and makes no request; a rejected
// credential clears the session.
func (r *ProfileResolver) Resolve(ctx context.Context) (domain.UserProfile, error) {
	if !r.session.Authenticated() {
		return domain.UserProfile{}, client.ErrUnauthenticated
	}
	if p, ok := r.session.Profile(); ok {
		return p, nil
	}

	resp, err := r.api.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthenticated) {
			if clearErr := r.session.Clear(); clearErr != nil {
				return domain.UserProfile{}, errors.Join(err, clearErr)
			}
		}
		return domain.UserProfile{}, err
	}

	profile := resp.Domain()
	r.session.SetProfile(profile)
	return profile, nil
}
