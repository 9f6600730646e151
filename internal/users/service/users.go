package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/valentincuzin/usergate/internal/users/domain"
	"github.com/valentincuzin/usergate/internal/users/store"
	"github.com/valentincuzin/usergate/pkg/cryptox"
	"github.com/valentincuzin/usergate/pkg/idx"
	"github.com/valentincuzin/usergate/pkg/slogx"
)

// UserService covers provisioning: creating and deleting user records.
// It is deliberately separate from SessionService, which only ever
// flips the connection flag.
type UserService struct {
	Store store.Store
}

// Create hashes the password and inserts a new user record, starting
// disconnected. Logins are immutable once created.
func (s *UserService) Create(ctx context.Context, login, password string) (domain.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return domain.User{}, ErrBadCredential
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Login:        login,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrLoginTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", slog.String("login", login))
	return u, nil
}

// Delete removes the user record for login.
func (s *UserService) Delete(ctx context.Context, login string) error {
	if err := s.Store.Users().DeleteUser(ctx, login); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", slog.String("login", login))
	return nil
}
