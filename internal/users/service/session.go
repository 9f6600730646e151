package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/valentincuzin/usergate/internal/users/store"
	"github.com/valentincuzin/usergate/pkg/cryptox"
	"github.com/valentincuzin/usergate/pkg/slogx"
	"github.com/valentincuzin/usergate/pkg/tokenx"
)

// SessionService drives the per-user connection state machine. Tokens
// are bearer capabilities minted by the codec; the only server-side
// session state is the boolean flag on the user record, and this
// service owns every transition of it.
type SessionService struct {
	Store store.Store
	Codec *tokenx.Codec

	locks loginLocks
}

// Login verifies the credential pair against the identity store, flips
// the user to connected and returns a fresh session token bound to
// origin. Repeating a successful login is not an error: the flag is
// re-set and a new token issued each time.
func (s *SessionService) Login(ctx context.Context, login, password, origin string) (string, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login rejected", slog.String("login", login))
		return "", ErrBadCredential
	}

	unlock := s.locks.lock(login)
	defer unlock()

	if err := s.Store.Users().SetConnected(ctx, login, true); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between lookup and flip.
			return "", ErrUserNotFound
		}
		return "", err
	}

	token, err := s.Codec.Generate(login, origin)
	if err != nil {
		return "", err
	}

	l.Info("user connected", slog.String("login", login), slog.String("origin", origin))
	return token, nil
}

// Logout verifies the presented token against origin, requires the user
// to be currently connected, flips the flag off and returns a
// no-lifetime logout token. Logging out a user who is not connected
// fails with ErrNotConnected and leaves state unchanged.
func (s *SessionService) Logout(ctx context.Context, token, origin string) (string, error) {
	l := slogx.FromContext(ctx)

	login, err := s.Codec.Verify(token, origin)
	if err != nil {
		return "", tokenx.ErrInvalidToken
	}

	unlock := s.locks.lock(login)
	defer unlock()

	u, err := s.Store.Users().GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A valid signature over a vanished user still reads as
			// unauthorized to the caller.
			return "", tokenx.ErrInvalidToken
		}
		return "", err
	}

	if !u.Connected {
		return "", ErrNotConnected
	}

	if err := s.Store.Users().SetConnected(ctx, login, false); err != nil {
		return "", err
	}

	logoutToken, err := s.Codec.NoLifetimeToken(login, origin)
	if err != nil {
		return "", err
	}

	l.Info("user disconnected", slog.String("login", login), slog.String("origin", origin))
	return logoutToken, nil
}

// Authenticate is the read-only capability check consumed by the
// downstream collaborator. It succeeds only when the token verifies
// against origin AND the subject is a known, currently connected user.
// It never mutates state and reports a single unauthorized outcome.
func (s *SessionService) Authenticate(ctx context.Context, token, origin string) (string, error) {
	login, err := s.Codec.Verify(token, origin)
	if err != nil {
		return "", ErrNotAuthenticated
	}

	u, err := s.Store.Users().GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotAuthenticated
		}
		return "", err
	}

	if !u.Connected {
		return "", ErrNotAuthenticated
	}

	return login, nil
}
