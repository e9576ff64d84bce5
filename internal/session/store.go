// Package session holds the signed-in credential of the storefront client.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Credentials are the bearer token and the anti-forgery token bound to it.
type Credentials struct {
	Token     string    `json:"token"`
	CSRF      string    `json:"csrf"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Empty reports whether no credential is held.
func (c Credentials) Empty() bool {
	return c.Token == ""
}

// Expired reports whether the credential carries an expiry that has passed.
func (c Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Store persists credentials across runs.
type Store interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// FileStore keeps credentials in a JSON file readable only by the owner.
type FileStore struct {
	Path string
}

// NewFileStore stores the session under configDir.
func NewFileStore(configDir string) *FileStore {
	return &FileStore{Path: filepath.Join(configDir, "session.json")}
}

// Load returns empty credentials when no session file exists.
func (s *FileStore) Load() (Credentials, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode session file: %w", err)
	}
	return creds, nil
}

func (s *FileStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore keeps credentials for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	creds Credentials
}

func NewMemoryStore(initial Credentials) *MemoryStore {
	return &MemoryStore{creds: initial}
}

func (s *MemoryStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *MemoryStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}
