// Package session holds the bearer credential shared by every API call and
// persists it across process restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrNoToken is returned by a Backend when nothing has been persisted
var ErrNoToken = errors.New("no token stored")

// Backend is durable storage for a single credential under a well-known key
type Backend interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, token string) error
	Delete(ctx context.Context, key string) error
}

// Store owns exactly one credential at a time. Setting a new value or
// clearing it replaces prior state in memory and in the backend.
type Store struct {
	mu      sync.RWMutex
	token   string
	key     string
	backend Backend
	logger  *zap.Logger
}

// NewStore creates a store persisting through backend under key
func NewStore(backend Backend, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{backend: backend, key: key, logger: logger}
}

// DefaultKey is the name the token is stored under unless configured otherwise
const DefaultKey = "token"

// Load restores the durable token into memory. It is a no-op when nothing is stored.
func (s *Store) Load(ctx context.Context) error {
	token, err := s.backend.Read(ctx, s.key)
	if errors.Is(err, ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.logger.Debug("session restored", zap.String("key", s.key))
	return nil
}

// Set replaces the current token. An empty token clears the session.
func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Write(ctx, s.key, token); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.token = token
	s.logger.Debug("session stored", zap.String("key", s.key))
	return nil
}

// Clear removes the token from memory and durable storage
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Debug("session cleared", zap.String("key", s.key))
	return nil
}

// Get returns the in-memory token and whether one is held
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}
