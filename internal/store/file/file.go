// Package file persists the snapshot as a single JSON document on
// disk, replaced wholesale on every save. This is the default backend:
// the dataset is one family's properties, far below any size where a
// real database earns its keep.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"frota/internal/auth"
	"frota/internal/core"
	"frota/internal/store"
)

type Store struct {
	mu       sync.Mutex
	propPath string
	userPath string
}

// New creates the data directory if needed and returns a store writing
// properties and users as sibling documents under it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{
		propPath: filepath.Join(dir, "properties.json"),
		userPath: filepath.Join(dir, "users.json"),
	}, nil
}

func (s *Store) LoadAll(_ context.Context) ([]core.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var props []core.Property
	if err := readDoc(s.propPath, &props); err != nil {
		return nil, err
	}
	if props == nil {
		props = []core.Property{}
	}
	return props, nil
}

func (s *Store) SaveAll(_ context.Context, props []core.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeDoc(s.propPath, props)
}

func (s *Store) LoadUsers(_ context.Context) ([]auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []auth.User
	if err := readDoc(s.userPath, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) SaveUsers(_ context.Context, users []auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeDoc(s.userPath, users)
}

func readDoc(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w: %v", path, store.ErrSnapshotCorrupt, err)
	}
	return nil
}

// writeDoc replaces the document atomically: write a sibling temp file,
// then rename over the old one.
func writeDoc(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
