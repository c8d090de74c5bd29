// Package kv defines the durable key-value contract used to persist the
// ledger and its history, with bbolt and in-memory implementations.
package kv

import (
	"context"
	"sync"
)

// Storage keys.
const (
	KeyLedger  = "vegBusinessData"
	KeyHistory = "vegBusinessHistory"
)

// Store reads and overwrites whole values by key.
type Store interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}
