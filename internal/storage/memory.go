package storage

import (
	"context"
	"sync"
)

// MemoryGateway is the in-process fallback used when no native store is
// available. Records live for the process lifetime only.
type MemoryGateway struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryGateway creates an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{values: make(map[string]string)}
}

// Get retrieves a value by key.
func (g *MemoryGateway) Get(ctx context.Context, key string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	value, ok := g.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a value under key.
func (g *MemoryGateway) Set(ctx context.Context, key, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.values[key] = value
	return nil
}

// Remove deletes a key. Removing a missing key is not an error.
func (g *MemoryGateway) Remove(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.values, key)
	return nil
}

// Close is a no-op.
func (g *MemoryGateway) Close() error {
	return nil
}

var _ Gateway = (*MemoryGateway)(nil)
