package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota/internal/auth"
	"frota/internal/core"
	"frota/internal/store"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	props, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, props, "missing file reads as empty collection")

	want := []core.Property{
		{
			ID:                "prop-1",
			Name:              "Vila Nova",
			Address:           "Rua das Flores, 100",
			WaterSewerMonthly: core.Money{Cents: 15_000},
			Apartments: []core.Apartment{
				{
					ID:         "apt-1",
					Identifier: "101",
					RentAmount: core.Money{Cents: 100_000},
					Tenant: &core.Tenant{
						ID:     "t-1",
						Name:   "Ana",
						DueDay: 5,
						Payments: core.Ledger{
							{ID: "pay-1", Month: 3, Year: 2026, Amount: core.Money{Cents: 100_000}, Date: core.NewDate(2026, 3, 4), Method: core.MethodPix},
						},
					},
				},
				{ID: "apt-2", Identifier: "102", RentAmount: core.Money{Cents: 80_000}},
			},
		},
	}

	require.NoError(t, s.SaveAll(ctx, want))

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	users, err := s.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	want := []auth.User{{Phone: "11999990000", Password: "pw"}}
	require.NoError(t, s.SaveUsers(ctx, want))

	got, err := s.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "properties.json"), []byte("{not json"), 0o644))

	_, err = s.LoadAll(context.Background())
	assert.ErrorIs(t, err, store.ErrSnapshotCorrupt)
}

func TestStore_SaveReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.SaveAll(ctx, []core.Property{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}))
	require.NoError(t, s.SaveAll(ctx, []core.Property{{ID: "b", Name: "B"}}))

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}
