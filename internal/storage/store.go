// Package storage holds the client-side key-value state Momentum persists
// between sessions: the bearer token, remembered user details and the
// selected theme.
package storage

import (
	"context"
	"sort"
	"sync"
)

// Keys persisted by the client. Values are plain strings without expiry.
const (
	KeyAuthToken    = "authToken"
	KeyRememberUser = "rememberUser"
	KeyUserEmail    = "userEmail"
	KeyUserName     = "userName"
	KeyTheme        = "momentum-theme"
)

// Store is a string key-value store scoped to one client (a browser session
// or the CLI profile).
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore, optionally seeded with values.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the value for key, or "" when it is absent or the store
// fails.
func GetString(ctx context.Context, store Store, key string) string {
	if store == nil {
		return ""
	}
	value, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return ""
	}
	return value
}
