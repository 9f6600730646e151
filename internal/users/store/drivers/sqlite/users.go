package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/valentincuzin/usergate/internal/users/domain"
	"github.com/valentincuzin/usergate/internal/users/store"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) GetUserByLogin(ctx context.Context, login string) (domain.User, error) {
	const q = `
		SELECT id, login, password_hash, connected, created_at, updated_at
		FROM users WHERE login = ?`

	var u domain.User
	var connected int
	err := r.db.QueryRowContext(ctx, q, login).Scan(
		&u.ID, &u.Login, &u.PasswordHash, &connected, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Connected = connected != 0

	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	const q = `
		INSERT INTO users (id, login, password_hash, connected)
		VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q, u.ID, u.Login, u.PasswordHash, boolToInt(u.Connected))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) DeleteUser(ctx context.Context, login string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE login = ?`, login)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetConnected(ctx context.Context, login string, connected bool) error {
	const q = `
		UPDATE users SET connected = ?, updated_at = CURRENT_TIMESTAMP
		WHERE login = ?`

	res, err := r.db.ExecContext(ctx, q, boolToInt(connected), login)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
