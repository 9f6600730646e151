// Package redis is the distributed identity store driver. It exists so
// the per-user connection state can be shared by multiple instances of
// the service; the session state machine is oblivious to which driver
// backs it.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/valentincuzin/usergate/internal/users/store"
)

type Store struct {
	client *redis.Client
}

// NewStore connects to the redis instance described by url, e.g.
// "redis://localhost:6379/0".
func NewStore(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Store{client: redis.NewClient(opts)}, nil
}

func (s *Store) Users() store.Users { return &usersRepo{client: s.client} }

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx).Err() }

func (s *Store) Close() error { return s.client.Close() }
