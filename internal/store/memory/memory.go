// Package memory holds the snapshot in process. It backs tests and
// quick demos; nothing survives a restart.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"frota/internal/auth"
	"frota/internal/core"
)

type Store struct {
	mu    sync.Mutex
	props []core.Property
	users []auth.User
}

func New() *Store {
	return &Store{}
}

// NewSeeded starts from an existing collection, deep-copied so the
// caller's slice stays independent.
func NewSeeded(props []core.Property) *Store {
	s := &Store{}
	s.props = deepCopy(props)
	return s
}

func (s *Store) LoadAll(_ context.Context) ([]core.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deepCopy(s.props), nil
}

func (s *Store) SaveAll(_ context.Context, props []core.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props = deepCopy(props)
	return nil
}

func (s *Store) LoadUsers(_ context.Context) ([]auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]auth.User(nil), s.users...), nil
}

func (s *Store) SaveUsers(_ context.Context, users []auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]auth.User(nil), users...)
	return nil
}

// deepCopy round-trips through the snapshot encoding, the same deep
// copy every other backend performs implicitly.
func deepCopy(props []core.Property) []core.Property {
	if props == nil {
		return []core.Property{}
	}
	data, err := json.Marshal(props)
	if err != nil {
		panic(fmt.Sprintf("memory store: marshal snapshot: %v", err))
	}
	var out []core.Property
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("memory store: unmarshal snapshot: %v", err))
	}
	return out
}
