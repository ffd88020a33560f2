package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-memory Store used as a test substitute for File.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte

	// Reads counts Get and Update invocations per key, letting tests
	// assert which stores a code path consulted.
	Reads map[string]int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string][]byte),
		Reads:  make(map[string]int),
	}
}

func (s *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Reads[key]++
	data, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *Memory) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.values[key] = cp
	return nil
}

func (s *Memory) Update(ctx context.Context, key string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Reads[key]++
	next, err := fn(s.values[key])
	if err != nil {
		if err == ErrNoChange {
			return nil
		}
		return err
	}

	cp := make([]byte, len(next))
	copy(cp, next)
	s.values[key] = cp
	return nil
}
