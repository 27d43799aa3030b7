package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File keeps every item in memory and rewrites a JSON snapshot after each
// mutation so the stored carts survive restarts.
type File struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("localstore: file path is required")
	}
	items, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, items: items}, nil
}

func (f *File) GetItem(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.items[key]
	return value, ok, nil
}

// SetItem and RemoveItem roll the in-memory item back when the snapshot
// cannot be written, so memory never runs ahead of disk.
func (f *File) SetItem(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.items[key]
	f.items[key] = value
	if err := f.writeSnapshotLocked(); err != nil {
		if had {
			f.items[key] = prev
		} else {
			delete(f.items, key)
		}
		return err
	}
	return nil
}

func (f *File) RemoveItem(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, ok := f.items[key]
	if !ok {
		return nil
	}
	delete(f.items, key)
	if err := f.writeSnapshotLocked(); err != nil {
		f.items[key] = prev
		return err
	}
	return nil
}

func readSnapshot(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	items := make(map[string]string)
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return items, nil
}

func (f *File) writeSnapshotLocked() error {
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	raw, err := json.MarshalIndent(f.items, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp, f.path)
}
