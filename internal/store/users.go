package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"sealdm/internal/domain"
)

// UpsertUser inserts or refreshes an enrolled identity. Re-enrollment
// replaces the public key record; that is the only key rotation in scope.
func (s *Store) UpsertUser(ctx context.Context, u domain.User) error {
	if u.ID == "" {
		return errors.New("user id is required")
	}
	if u.Handle == "" {
		return errors.New("user handle is required")
	}
	at := u.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, handle, name, key_curve, key_data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   handle = excluded.handle,
		   name = excluded.name,
		   key_curve = excluded.key_curve,
		   key_data = excluded.key_data`,
		u.ID, u.Handle, u.Name, u.PublicKey.Curve, u.PublicKey.Key, at.UnixMilli(),
	)
	return errors.Wrapf(err, "upsert user %q", u.ID)
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id domain.IdentityID) (domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, handle, name, key_curve, key_data, created_at FROM users WHERE id = ?`, id))
}

// FindUserByHandle returns the user enrolled under handle.
func (s *Store) FindUserByHandle(ctx context.Context, handle string) (domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, handle, name, key_curve, key_data, created_at FROM users WHERE handle = ?`, handle))
}

func (s *Store) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var at int64
	err := row.Scan(&u.ID, &u.Handle, &u.Name, &u.PublicKey.Curve, &u.PublicKey.Key, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, errors.Wrap(err, "scan user")
	}
	u.CreatedAt = time.UnixMilli(at)
	return u, nil
}

var _ domain.UserStore = (*Store)(nil)
