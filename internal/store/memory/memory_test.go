package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota/internal/core"
)

func TestStore_Isolation(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded([]core.Property{
		{ID: "prop-1", Name: "Vila Nova", Apartments: []core.Apartment{
			{ID: "apt-1", Identifier: "101", RentAmount: core.Money{Cents: 100_000}},
		}},
	})

	first, err := s.LoadAll(ctx)
	require.NoError(t, err)

	// Mutating a loaded copy must not leak into the store.
	first[0].Name = "changed"
	first[0].Apartments[0].Identifier = "999"

	second, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Vila Nova", second[0].Name)
	assert.Equal(t, "101", second[0].Apartments[0].Identifier)
}

func TestStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	s := New()

	props, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, props)

	saved := []core.Property{{ID: "prop-1", Name: "Vila Nova"}}
	require.NoError(t, s.SaveAll(ctx, saved))

	// Mutating the saved slice afterwards must not leak either.
	saved[0].Name = "changed"

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Vila Nova", got[0].Name)
}
