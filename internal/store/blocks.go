package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"sealdm/internal/domain"
)

// AddBlock records a directed blocker -> blocked edge. Re-blocking is a
// no-op.
func (s *Store) AddBlock(ctx context.Context, blocker, blocked domain.IdentityID) error {
	if blocker == "" || blocked == "" {
		return errors.New("both identities are required")
	}
	if blocker == blocked {
		return errors.New("cannot block self")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blocks (blocker_id, blocked_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(blocker_id, blocked_id) DO NOTHING`,
		blocker, blocked, time.Now().UnixMilli(),
	)
	return errors.Wrap(err, "add block")
}

// RemoveBlock deletes the edge created by blocker, if present. It never
// touches the reverse edge.
func (s *Store) RemoveBlock(ctx context.Context, blocker, blocked domain.IdentityID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM blocks WHERE blocker_id = ? AND blocked_id = ?`, blocker, blocked)
	return errors.Wrap(err, "remove block")
}

// IsBlocked reports whether an edge exists in either direction. One edge
// suppresses delivery both ways.
func (s *Store) IsBlocked(ctx context.Context, a, b domain.IdentityID) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blocks
		 WHERE (blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)`,
		a, b, b, a).Scan(&n)
	if err != nil {
		return false, errors.Wrap(err, "query blocks")
	}
	return n > 0, nil
}

// BlockStatus reports the block state between me and other, and whether I
// created it.
func (s *Store) BlockStatus(ctx context.Context, me, other domain.IdentityID) (domain.BlockStatus, error) {
	var mine, theirs int
	err := s.db.QueryRowContext(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE blocker_id = ?1 AND blocked_id = ?2),
		   COUNT(*) FILTER (WHERE blocker_id = ?2 AND blocked_id = ?1)
		 FROM blocks`, me, other).Scan(&mine, &theirs)
	if err != nil {
		return domain.BlockStatus{}, errors.Wrap(err, "query block status")
	}
	return domain.BlockStatus{
		Blocked:     mine > 0 || theirs > 0,
		BlockedByMe: mine > 0,
	}, nil
}

var _ domain.BlockStore = (*Store)(nil)
