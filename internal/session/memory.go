package session

import (
	"context"
	"sync"
)

// MemoryBackend keeps credentials for the lifetime of the process only
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (b *MemoryBackend) Read(_ context.Context, key string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	token, ok := b.values[key]
	if !ok {
		return "", ErrNoToken
	}
	return token, nil
}

func (b *MemoryBackend) Write(_ context.Context, key, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = token
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
	return nil
}
