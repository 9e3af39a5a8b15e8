package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"sealdm/internal/domain"
)

// CreateIfAbsent returns the conversation for the canonical pair (lo, hi),
// creating it on first contact. The UNIQUE(user_lo, user_hi) constraint,
// not application locking, guarantees at most one row per pair even when
// both sides resolve concurrently: the losing INSERT is ignored and the
// follow-up SELECT sees the winner.
func (s *Store) CreateIfAbsent(ctx context.Context, lo, hi domain.IdentityID) (domain.Conversation, error) {
	if lo == "" || hi == "" {
		return domain.Conversation{}, errors.New("both identities are required")
	}
	if lo >= hi {
		return domain.Conversation{}, errors.Errorf("pair not canonical: %q >= %q", lo, hi)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, user_lo, user_hi, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_lo, user_hi) DO NOTHING`,
		uuid.NewString(), lo, hi, time.Now().UnixMilli(),
	)
	if err != nil {
		return domain.Conversation{}, errors.Wrap(err, "create conversation")
	}

	return s.scanConversation(s.db.QueryRowContext(ctx,
		`SELECT id, user_lo, user_hi, created_at FROM conversations
		 WHERE user_lo = ? AND user_hi = ?`, lo, hi))
}

// GetConversation returns the conversation with the given id.
func (s *Store) GetConversation(ctx context.Context, id domain.ConversationID) (domain.Conversation, error) {
	return s.scanConversation(s.db.QueryRowContext(ctx,
		`SELECT id, user_lo, user_hi, created_at FROM conversations WHERE id = ?`, id))
}

// ListConversationsFor returns every conversation containing id, newest first.
func (s *Store) ListConversationsFor(ctx context.Context, id domain.IdentityID) ([]domain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_lo, user_hi, created_at FROM conversations
		 WHERE user_lo = ? OR user_hi = ?
		 ORDER BY created_at DESC`, id, id)
	if err != nil {
		return nil, errors.Wrap(err, "list conversations")
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		var at int64
		if err := rows.Scan(&c.ID, &c.UserLo, &c.UserHi, &at); err != nil {
			return nil, errors.Wrap(err, "scan conversation")
		}
		c.CreatedAt = time.UnixMilli(at)
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteConversation removes the conversation; its messages go with it
// through the ON DELETE CASCADE constraint.
func (s *Store) DeleteConversation(ctx context.Context, id domain.ConversationID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete conversation %q", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) scanConversation(row *sql.Row) (domain.Conversation, error) {
	var c domain.Conversation
	var at int64
	err := row.Scan(&c.ID, &c.UserLo, &c.UserHi, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Conversation{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Conversation{}, errors.Wrap(err, "scan conversation")
	}
	c.CreatedAt = time.UnixMilli(at)
	return c, nil
}

var _ domain.ConversationStore = (*Store)(nil)
