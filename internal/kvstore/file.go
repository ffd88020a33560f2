package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by plain files. Keys are absolute or relative
// file paths. Writes go through a temp file and rename so readers never
// observe a partial value, and every key is guarded by a flock-based lock
// so concurrent writers on the same key serialize.
type File struct {
	mu    sync.Mutex
	locks map[string]*FileLock
}

// NewFile creates a file-backed store.
func NewFile() *File {
	return &File{locks: make(map[string]*FileLock)}
}

func (s *File) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *File) Put(ctx context.Context, key string, data []byte) error {
	lock := s.getLock(key)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer lock.Unlock()

	return writeAtomic(key, data)
}

func (s *File) Update(ctx context.Context, key string, fn UpdateFunc) error {
	lock := s.getLock(key)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer lock.Unlock()

	var current []byte
	data, err := os.ReadFile(key)
	if err == nil {
		current = data
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	next, err := fn(current)
	if err != nil {
		if err == ErrNoChange {
			return nil
		}
		return err
	}

	return writeAtomic(key, next)
}

// writeAtomic writes data via a temp file and rename.
func writeAtomic(key string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(key), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := key + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, key); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// getLock returns the lock guarding a key.
func (s *File) getLock(key string) *FileLock {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = NewFileLock(key)
		s.locks[key] = lock
	}

	return lock
}
