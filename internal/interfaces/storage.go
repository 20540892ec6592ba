// Package interfaces defines the storage boundaries of folio-portal.
package interfaces

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KeyValueStorage.Get for a missing key. Callers
// treat it as "no persisted state", never as a failure to surface.
var ErrNotFound = errors.New("key not found")

// StorageManager provides access to domain-specific storage interfaces.
// Implementations can be swapped (BadgerDB now, an in-memory store in tests).
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	Close() error
}

// KeyValueStorage provides basic key-value operations. It persists the
// uploaded position rows, the upload file name, the per-symbol brand cache
// entries, and the user-assigned category labels.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]string, error)
}
