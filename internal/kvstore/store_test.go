package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFile_PutAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewFile()
	ctx := context.Background()
	key := filepath.Join(tmpDir, "nested", "value.json")

	if err := s.Put(ctx, key, []byte(`{"n":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, err := os.Stat(key); err != nil {
		t.Fatalf("file was not created: %v", err)
	}

	data, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `{"n":1}` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestFile_GetNotFound(t *testing.T) {
	s := NewFile()
	_, err := s.Get(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestFile_UpdateCreatesValue(t *testing.T) {
	s := NewFile()
	ctx := context.Background()
	key := filepath.Join(t.TempDir(), "counter.json")

	err := s.Update(ctx, key, func(data []byte) ([]byte, error) {
		if data != nil {
			t.Errorf("expected nil data for missing key, got %s", data)
		}
		return []byte(`{"count":1}`), nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	data, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `{"count":1}` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestFile_UpdateNoChange(t *testing.T) {
	s := NewFile()
	ctx := context.Background()
	key := filepath.Join(t.TempDir(), "value.json")

	if err := s.Put(ctx, key, []byte(`original`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	err := s.Update(ctx, key, func(data []byte) ([]byte, error) {
		return nil, ErrNoChange
	})
	if err != nil {
		t.Fatalf("Update with ErrNoChange should not error: %v", err)
	}

	data, _ := s.Get(ctx, key)
	if string(data) != "original" {
		t.Errorf("value changed despite ErrNoChange: %s", data)
	}
}

func TestFile_ConcurrentUpdates(t *testing.T) {
	s := NewFile()
	ctx := context.Background()
	key := filepath.Join(t.TempDir(), "counter.json")

	type counter struct {
		Count int `json:"count"`
	}

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, key, func(data []byte) ([]byte, error) {
				var c counter
				if data != nil {
					if err := json.Unmarshal(data, &c); err != nil {
						return nil, err
					}
				}
				c.Count++
				return json.Marshal(c)
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	data, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var c counter
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.Count != workers {
		t.Errorf("lost updates: got %d, want %d", c.Count, workers)
	}
}

func TestMemory_Basics(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, err := s.Get(ctx, "k"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := s.Get(ctx, "k")
	if err != nil || string(data) != "v" {
		t.Fatalf("Get = %s, %v", data, err)
	}

	err = s.Update(ctx, "k", func(data []byte) ([]byte, error) {
		return []byte(fmt.Sprintf("%s2", data)), nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	data, _ = s.Get(ctx, "k")
	if string(data) != "v2" {
		t.Errorf("unexpected value: %s", data)
	}

	if s.Reads["k"] != 4 {
		t.Errorf("expected 4 recorded reads, got %d", s.Reads["k"])
	}
}
