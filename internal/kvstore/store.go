package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is the key-value contract the donation service is built on: single-key
// get/set plus a prefix scan. Scan order is unspecified; per-key writes are
// atomic and no multi-key transactions exist.
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// GetByPrefix returns the values of every key starting with prefix.
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
}
