package session

import (
	"sync"
	"time"

	"github.com/sea-catering/storefront/internal/domain"
)

// Context is the session handed to every client flow. It is read from its
// Store once by Open and torn down by Clear.
type Context struct {
	mu      sync.RWMutex
	store   Store
	creds   Credentials
	profile *domain.UserProfile
	now     func() time.Time
}

// Open loads the stored credential. An expired credential is discarded.
func Open(store Store) (*Context, error) {
	creds, err := store.Load()
	if err != nil {
		return nil, err
	}
	c := &Context{store: store, now: time.Now}
	if creds.Expired(c.now()) {
		if err := store.Clear(); err != nil {
			return nil, err
		}
		creds = Credentials{}
	}
	c.creds = creds
	return c, nil
}

// Credentials returns the current credential, empty when signed out.
func (c *Context) Credentials() Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds
}

// Authenticated reports whether a credential is held.
func (c *Context) Authenticated() bool {
	return !c.Credentials().Empty()
}

// SignIn persists a fresh credential and forgets any previously resolved profile.
func (c *Context) SignIn(creds Credentials) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Save(creds); err != nil {
		return err
	}
	c.creds = creds
	c.profile = nil
	return nil
}

// SetProfile records the identity resolved for the current credential.
func (c *Context) SetProfile(p domain.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = &p
}

// Profile returns the resolved identity, if any.
func (c *Context) Profile() (domain.UserProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return domain.UserProfile{}, false
	}
	return *c.profile, true
}

// Clear drops the credential and profile, in memory and in the store.
func (c *Context) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = Credentials{}
	c.profile = nil
	return c.store.Clear()
}
