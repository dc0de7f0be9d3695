package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	users []User
}

func (m *memRepo) LoadUsers(context.Context) ([]User, error) {
	return append([]User(nil), m.users...), nil
}

func (m *memRepo) SaveUsers(_ context.Context, users []User) error {
	m.users = append([]User(nil), users...)
	return nil
}

func TestGate_Register(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	gate := NewGate(repo, "secret", 2)

	user, err := gate.Register(ctx, "11999990000", "pw", "secret")
	require.NoError(t, err)
	assert.Equal(t, "11999990000", user.Phone)
	assert.Len(t, repo.users, 1)

	t.Run("wrong master code", func(t *testing.T) {
		_, err := gate.Register(ctx, "11999990001", "pw", "nope")
		assert.ErrorIs(t, err, ErrBadMasterCode)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		_, err := gate.Register(ctx, "11999990000", "other", "secret")
		assert.ErrorIs(t, err, ErrPhoneTaken)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := gate.Register(ctx, "  ", "pw", "secret")
		assert.ErrorIs(t, err, ErrEmptyField)
		_, err = gate.Register(ctx, "11999990002", "", "secret")
		assert.ErrorIs(t, err, ErrEmptyField)
	})

	t.Run("user limit", func(t *testing.T) {
		_, err := gate.Register(ctx, "11999990003", "pw", "secret")
		require.NoError(t, err)
		_, err = gate.Register(ctx, "11999990004", "pw", "secret")
		assert.ErrorIs(t, err, ErrUserLimit)
	})
}

func TestGate_Login(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{users: []User{{Phone: "11999990000", Password: "pw"}}}
	gate := NewGate(repo, "secret", 0)

	user, err := gate.Login(ctx, "11999990000", "pw")
	require.NoError(t, err)
	assert.Equal(t, "11999990000", user.Phone)

	_, err = gate.Login(ctx, "11999990000", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = gate.Login(ctx, "11888880000", "pw")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestNewGate_DefaultMaxUsers(t *testing.T) {
	gate := NewGate(&memRepo{}, "secret", 0)
	assert.Equal(t, DefaultMaxUsers, gate.maxUsers)
}
