// Package storage provides storage implementations behind the
// interfaces.StorageManager boundary.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/foliolabs/folio-portal/internal/interfaces"
)

// MemoryManager is an in-memory StorageManager. Useful for tests or
// ephemeral runs where nothing should touch disk.
type MemoryManager struct {
	kv *MemoryKV
}

// NewMemoryManager creates an in-memory storage manager.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{kv: NewMemoryKV()}
}

// KeyValueStorage returns the KeyValue storage interface.
func (m *MemoryManager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close is a no-op for the in-memory manager.
func (m *MemoryManager) Close() error { return nil }

// MemoryKV implements interfaces.KeyValueStorage with a mutex-guarded map.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryKV creates an empty in-memory key-value store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string]string)}
}

// Get retrieves a value by key. A missing key yields interfaces.ErrNotFound.
func (s *MemoryKV) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.items[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", interfaces.ErrNotFound, key)
	}
	return val, nil
}

// Set stores a key-value pair.
func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

// Delete removes a key-value pair. Deleting a missing key is not an error.
func (s *MemoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// GetAll retrieves all key-value pairs.
func (s *MemoryKV) GetAll(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string, len(s.items))
	for k, v := range s.items {
		result[k] = v
	}
	return result, nil
}
