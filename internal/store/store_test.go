package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealdm/internal/domain"
	"sealdm/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func enroll(t *testing.T, s *store.Store, id, handle string) {
	t.Helper()
	err := s.UpsertUser(context.Background(), domain.User{
		ID:     domain.IdentityID(id),
		Handle: handle,
		Name:   handle,
		PublicKey: domain.PublicKeyRecord{
			Curve: "X25519",
			Key:   "dGVzdC1rZXktbWF0ZXJpYWwtMzItYnl0ZXMhISEhISE=",
		},
	})
	require.NoError(t, err)
}

func TestUserUpsertAndLookup(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	enroll(t, s, "alice", "alice01")

	u, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice01", u.Handle)

	byHandle, err := s.FindUserByHandle(ctx, "alice01")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byHandle.ID)

	_, err = s.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Re-enrollment replaces the key record.
	err = s.UpsertUser(ctx, domain.User{
		ID:        "alice",
		Handle:    "alice01",
		Name:      "Alice",
		PublicKey: domain.PublicKeyRecord{Curve: "X25519", Key: "bmV3LWtleQ=="},
	})
	require.NoError(t, err)
	u, err = s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "bmV3LWtleQ==", u.PublicKey.Key)
}

func TestCreateIfAbsentIsIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	enroll(t, s, "alice", "alice01")
	enroll(t, s, "bob", "bob01")

	first, err := s.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)
	second, err := s.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.IdentityID("alice"), first.UserLo)
	assert.Equal(t, domain.IdentityID("bob"), first.UserHi)
}

func TestCreateIfAbsentRejectsNonCanonicalPair(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	enroll(t, s, "alice", "alice01")
	enroll(t, s, "bob", "bob01")

	_, err := s.CreateIfAbsent(ctx, "bob", "alice")
	assert.Error(t, err)
	_, err = s.CreateIfAbsent(ctx, "alice", "alice")
	assert.Error(t, err)
}

func TestCreateIfAbsentConcurrentFirstContact(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	enroll(t, s, "alice", "alice01")
	enroll(t, s, "bob", "bob01")

	const attempts = 16
	ids := make([]domain.ConversationID, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := s.CreateIfAbsent(ctx, "alice", "bob")
			require.NoError(t, err)
			ids[i] = c.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}
}

func TestMessageOrderIsPersistenceOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	enroll(t, s, "alice", "alice01")
	enroll(t, s, "bob", "bob01")
	conv, err := s.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)

	at := time.Now()
	var want []domain.MessageID
	for i := 0; i < 5; i++ {
		m := domain.Message{
			ID:             domain.MessageID(uuid.NewString()),
			ConversationID: conv.ID,
			SenderID:       "alice",
			Ciphertext:     []byte{byte(i)},
			Nonce:          []byte("nonce-000000"),
			CreatedAt:      at, // identical timestamps; insertion order must win
		}
		require.NoError(t, s.InsertMessage(ctx, m))
		want = append(want, m.ID)
	}

	got, err := s.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i, m := range got {
		assert.Equal(t, want[i], m.ID)
	}

	last, ok, err := s.LastMessage(ctx, conv.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want[len(want)-1], last.ID)
}

func TestLastMessageEmptyConversation(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	enroll(t, s, "alice", "alice01")
	enroll(t, s, "bob", "bob01")
	conv, err := s.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)

	_, ok, err := s.LastMessage(ctx, conv.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteConversationCascadesMessages(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	enroll(t, s, "alice", "alice01")
	enroll(t, s, "bob", "bob01")
	conv, err := s.CreateIfAbsent(ctx, "alice", "bob")
	require.NoError(t, err)

	require.NoError(t, s.InsertMessage(ctx, domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: conv.ID,
		SenderID:       "alice",
		Ciphertext:     []byte("ct"),
		Nonce:          []byte("nonce-000000"),
	}))

	require.NoError(t, s.DeleteConversation(ctx, conv.ID))

	_, err = s.GetConversation(ctx, conv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	msgs, err := s.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	assert.ErrorIs(t, s.DeleteConversation(ctx, conv.ID), domain.ErrNotFound)
}

func TestBlocksEitherDirection(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	blocked, err := s.IsBlocked(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, s.AddBlock(ctx, "alice", "bob"))
	// Idempotent re-block.
	require.NoError(t, s.AddBlock(ctx, "alice", "bob"))

	for _, pair := range [][2]domain.IdentityID{{"alice", "bob"}, {"bob", "alice"}} {
		blocked, err := s.IsBlocked(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, blocked)
	}

	st, err := s.BlockStatus(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, st.Blocked)
	assert.True(t, st.BlockedByMe)

	st, err = s.BlockStatus(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, st.Blocked)
	assert.False(t, st.BlockedByMe)

	// Bob removing an edge he never created changes nothing.
	require.NoError(t, s.RemoveBlock(ctx, "bob", "alice"))
	blocked, err = s.IsBlocked(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, s.RemoveBlock(ctx, "alice", "bob"))
	blocked, err = s.IsBlocked(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, blocked)
}
