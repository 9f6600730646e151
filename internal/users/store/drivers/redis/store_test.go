package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/valentincuzin/usergate/internal/users/domain"
	"github.com/valentincuzin/usergate/internal/users/store"
	redisdriver "github.com/valentincuzin/usergate/internal/users/store/drivers/redis"
	"github.com/valentincuzin/usergate/pkg/idx"
)

func newTestStore(t *testing.T) *redisdriver.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	s, err := redisdriver.NewStore("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestUsersLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Login:        "alice",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, u.PasswordHash, got.PasswordHash)
	require.False(t, got.Connected)
	require.False(t, got.CreatedAt.IsZero())

	err = s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Login: "alice"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.NoError(t, s.Users().DeleteUser(ctx, "alice"))
	_, err = s.Users().GetUserByLogin(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Users().DeleteUser(ctx, "alice"), store.ErrNotFound)
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

func TestPing(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
