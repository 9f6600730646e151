package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valentincuzin/usergate/internal/users/service"
	"github.com/valentincuzin/usergate/pkg/cryptox"
)

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()
	_, users := newFixture(t)

	t.Run("hashes the password and starts disconnected", func(t *testing.T) {
		u, err := users.Create(ctx, "alice", "pw")
		require.NoError(t, err)
		require.NotEmpty(t, u.ID)
		require.False(t, u.Connected)
		require.NotEqual(t, "pw", u.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("pw", u.PasswordHash))
	})

	t.Run("duplicate login", func(t *testing.T) {
		_, err := users.Create(ctx, "alice", "other")
		require.ErrorIs(t, err, service.ErrLoginTaken)
	})

	t.Run("empty inputs rejected", func(t *testing.T) {
		_, err := users.Create(ctx, "", "pw")
		require.Error(t, err)
		_, err = users.Create(ctx, "carol", "")
		require.Error(t, err)
	})
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()
	_, users := newFixture(t)

	_, err := users.Create(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, "alice"))
	require.ErrorIs(t, users.Delete(ctx, "alice"), service.ErrUserNotFound)
}
