package chatlist_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealdm/internal/domain"
	"sealdm/internal/services/chatlist"
	"sealdm/internal/store"
)

func setup(t *testing.T) (*store.Store, *chatlist.Service) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	for _, id := range []string{"alice", "bob", "carol"} {
		require.NoError(t, s.UpsertUser(ctx, domain.User{
			ID:        domain.IdentityID(id),
			Handle:    id,
			Name:      id,
			PublicKey: domain.PublicKeyRecord{Curve: "X25519", Key: "a2V5"},
		}))
	}
	return s, chatlist.New(s, s, s)
}

func insertAt(t *testing.T, s *store.Store, conv domain.ConversationID, sender domain.IdentityID, at time.Time) {
	t.Helper()
	require.NoError(t, s.InsertMessage(context.Background(), domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: conv,
		SenderID:       sender,
		Ciphertext:     []byte("opaque"),
		Nonce:          []byte("nonce-000000"),
		CreatedAt:      at,
	}))
}

func TestListConversationsOrderedByActivity(t *testing.T) {
	s, svc := setup(t)
	ctx := context.Background()

	withBob, err := s.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	withCarol, err := s.CreateIfAbsent(ctx, "alice", "carol")
	require.NoError(t, err)

	now := time.Now()
	insertAt(t, s, withBob.ID, "bob", now.Add(-time.Hour))
	insertAt(t, s, withCarol.ID, "alice", now.Add(-time.Minute))

	list, err := svc.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, withCarol.ID, list[0].ConversationID)
	assert.Equal(t, domain.IdentityID("carol"), list[0].Peer.ID)
	assert.True(t, list[0].HasMessages)
	assert.Equal(t, domain.IdentityID("alice"), list[0].LastSenderID)

	assert.Equal(t, withBob.ID, list[1].ConversationID)
	assert.Equal(t, domain.IdentityID("bob"), list[1].Peer.ID)
}

func TestEmptyConversationFallsBackToCreationTime(t *testing.T) {
	s, svc := setup(t)
	ctx := context.Background()

	conv, err := s.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)

	list, err := svc.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.False(t, list[0].HasMessages)
	assert.Empty(t, list[0].LastSenderID)
	assert.WithinDuration(t, conv.CreatedAt, list[0].LastActivity, time.Second)
}

func TestSummariesCarryNoCiphertext(t *testing.T) {
	s, svc := setup(t)
	ctx := context.Background()

	conv, err := s.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	insertAt(t, s, conv.ID, "bob", time.Now())

	list, err := svc.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Presence only: renderers show a fixed placeholder for HasMessages.
	assert.True(t, list[0].HasMessages)
}
