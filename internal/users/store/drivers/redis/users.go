package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/valentincuzin/usergate/internal/users/domain"
	"github.com/valentincuzin/usergate/internal/users/store"
)

// Each user is a hash at user:<login>. Creation and flag updates go
// through Lua so the existence check and the write are one atomic step
// on the server, matching the per-user serialization the sqlite driver
// gets from its row updates.
const keyPrefix = "user:"

var createUserScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("HSET", KEYS[1],
  "id", ARGV[1],
  "login", ARGV[2],
  "password_hash", ARGV[3],
  "connected", ARGV[4],
  "created_at", ARGV[5],
  "updated_at", ARGV[5])
return 1
`)

var setConnectedScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "connected", ARGV[1], "updated_at", ARGV[2])
return 1
`)

type usersRepo struct {
	client *redis.Client
}

func (r *usersRepo) GetUserByLogin(ctx context.Context, login string) (domain.User, error) {
	fields, err := r.client.HGetAll(ctx, keyPrefix+login).Result()
	if err != nil {
		return domain.User{}, err
	}
	if len(fields) == 0 {
		return domain.User{}, store.ErrNotFound
	}

	u := domain.User{
		ID:           fields["id"],
		Login:        fields["login"],
		PasswordHash: fields["password_hash"],
		Connected:    fields["connected"] == "1",
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339Nano, fields["created_at"])
	u.UpdatedAt, _ = time.Parse(time.RFC3339Nano, fields["updated_at"])

	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	created, err := createUserScript.Run(ctx, r.client,
		[]string{keyPrefix + u.Login},
		u.ID, u.Login, u.PasswordHash, boolToFlag(u.Connected), now,
	).Int64()
	if err != nil {
		return err
	}
	if created == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, login string) error {
	removed, err := r.client.Del(ctx, keyPrefix+login).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) SetConnected(ctx context.Context, login string, connected bool) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	updated, err := setConnectedScript.Run(ctx, r.client,
		[]string{keyPrefix + login},
		boolToFlag(connected), now,
	).Int64()
	if err != nil {
		return err
	}
	if updated == 0 {
		return store.ErrNotFound
	}
	return nil
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
