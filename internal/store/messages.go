package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"sealdm/internal/domain"
)

// InsertMessage stores one ciphertext record. The blob and nonce are kept
// verbatim; nothing here inspects them.
func (s *Store) InsertMessage(ctx context.Context, m domain.Message) error {
	if m.ID == "" {
		return errors.New("message id is required")
	}
	if m.ConversationID == "" {
		return errors.New("conversation id is required")
	}
	if m.SenderID == "" {
		return errors.New("sender id is required")
	}
	if len(m.Ciphertext) == 0 {
		return errors.New("ciphertext is required")
	}
	if len(m.Nonce) == 0 {
		return errors.New("nonce is required")
	}
	at := m.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, ciphertext, nonce, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ConversationID, m.SenderID, m.Ciphertext, m.Nonce, at.UnixMilli(),
	)
	return errors.Wrapf(err, "insert message %q", m.ID)
}

// ListMessages returns a conversation's messages in persistence order,
// which is the authoritative order of the conversation.
func (s *Store) ListMessages(ctx context.Context, id domain.ConversationID) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, sender_id, ciphertext, nonce, created_at
		 FROM messages WHERE conversation_id = ?
		 ORDER BY created_at ASC, rowid ASC`, id)
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// LastMessage returns the newest message, or ok=false for an empty
// conversation.
func (s *Store) LastMessage(ctx context.Context, id domain.ConversationID) (domain.Message, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, sender_id, ciphertext, nonce, created_at
		 FROM messages WHERE conversation_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`, id)
	if err != nil {
		return domain.Message{}, false, errors.Wrap(err, "last message")
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.Message{}, false, rows.Err()
	}
	m, err := scanMessage(rows)
	if err != nil {
		return domain.Message{}, false, err
	}
	return m, true, nil
}

func scanMessage(rows *sql.Rows) (domain.Message, error) {
	var m domain.Message
	var at int64
	if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Ciphertext, &m.Nonce, &at); err != nil {
		return domain.Message{}, errors.Wrap(err, "scan message")
	}
	m.CreatedAt = time.UnixMilli(at)
	return m, nil
}

var _ domain.MessageStore = (*Store)(nil)
