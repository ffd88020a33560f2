// Package kvstore provides a small key-value store abstraction over JSON
// files on disk, plus an in-memory implementation for tests.
package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("kvstore: not found")

	// ErrNoChange can be returned by an UpdateFunc to leave the stored
	// value untouched. Update then returns nil without writing.
	ErrNoChange = errors.New("kvstore: no change")
)

// UpdateFunc transforms the current value of a key. data is nil when the
// key does not exist yet. The returned bytes replace the stored value.
type UpdateFunc func(data []byte) ([]byte, error)

// Store is a key-value store keyed by file-like paths.
type Store interface {
	// Get returns the raw value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores a raw value under key, creating parent containers as needed.
	Put(ctx context.Context, key string, data []byte) error

	// Update applies fn to the current value of key as a single atomic
	// read-modify-write. No concurrent Update on the same key may
	// interleave with it.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
