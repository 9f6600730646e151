package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valentincuzin/usergate/internal/users/domain"
	"github.com/valentincuzin/usergate/internal/users/store"
	"github.com/valentincuzin/usergate/internal/users/store/drivers/sqlite"
	"github.com/valentincuzin/usergate/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestUsersCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Login:        "alice",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("get returns the record", func(t *testing.T) {
		got, err := s.Users().GetUserByLogin(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "alice", got.Login)
		require.False(t, got.Connected)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("duplicate login rejected", func(t *testing.T) {
		dup := domain.User{ID: idx.New().String(), Login: "alice", PasswordHash: "x"}
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown login is ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByLogin(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		other := domain.User{ID: idx.New().String(), Login: "bob", PasswordHash: "x"}
		require.NoError(t, s.Users().CreateUser(ctx, other))
		require.NoError(t, s.Users().DeleteUser(ctx, "bob"))

		_, err := s.Users().GetUserByLogin(ctx, "bob")
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Users().DeleteUser(ctx, "bob"), store.ErrNotFound)
	})
}

func TestSetConnected(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{ID: idx.New().String(), Login: "alice", PasswordHash: "x"}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().SetConnected(ctx, "alice", true))
	got, err := s.Users().GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	require.True(t, got.Connected)

	require.NoError(t, s.Users().SetConnected(ctx, "alice", false))
	got, err = s.Users().GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	require.False(t, got.Connected)

	require.ErrorIs(t, s.Users().SetConnected(ctx, "nobody", true), store.ErrNotFound)
}
