package store

import (
	"context"
	"errors"

	"github.com/valentincuzin/usergate/internal/users/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the identity store boundary. Concrete drivers (sqlite, redis)
// implement it; the session state machine only ever talks to this
// interface, so the per-user connection state can live in a local file
// or a shared distributed store without touching the token logic.
type Store interface {
	Users() Users

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Users interface {
	// GetUserByLogin returns the user record for login.
	GetUserByLogin(ctx context.Context, login string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the login is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes the user record for login.
	DeleteUser(ctx context.Context, login string) error

	// SetConnected flips the connection flag, the only mutation the
	// session state machine performs. Returns ErrNotFound when the
	// login does not exist.
	SetConnected(ctx context.Context, login string, connected bool) error
}
