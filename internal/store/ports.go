package store

import (
	"context"
	"errors"

	"frota/internal/auth"
	"frota/internal/core"
)

// ErrSnapshotCorrupt wraps decode failures so callers can tell a bad
// document from an unavailable store.
var ErrSnapshotCorrupt = errors.New("snapshot corrupt")

// Ports for outbound persistence adapters. The core never touches
// storage directly: every logical edit loads the whole property
// collection, mutates a copy, and writes the whole collection back.
// There is exactly one logical writer (single user, single tab);
// concurrent sessions degrade to last write wins.
type (
	PropertyRepository interface {
		// LoadAll returns the full snapshot. A missing document is an
		// empty collection, not an error.
		LoadAll(ctx context.Context) ([]core.Property, error)
		// SaveAll replaces the snapshot wholesale.
		SaveAll(ctx context.Context, props []core.Property) error
	}

	// Repository is the combined surface a backend provides: the
	// property snapshot plus the access-gate user list.
	Repository interface {
		PropertyRepository
		auth.Repository
	}
)
