package resolve_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealdm/internal/domain"
	"sealdm/internal/services/resolve"
	"sealdm/internal/store"
)

func TestResolveOrderIndependent(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	for _, id := range []string{"alice", "bob"} {
		require.NoError(t, s.UpsertUser(ctx, domain.User{
			ID:        domain.IdentityID(id),
			Handle:    id,
			PublicKey: domain.PublicKeyRecord{Curve: "X25519", Key: "a2V5"},
		}))
	}

	svc := resolve.New(s)
	ab, err := svc.Resolve(ctx, "alice", "bob")
	require.NoError(t, err)
	ba, err := svc.Resolve(ctx, "bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, ab.ID, ba.ID)
	assert.True(t, ab.Has("alice"))
	assert.True(t, ab.Has("bob"))
	assert.Equal(t, domain.IdentityID("bob"), ab.Other("alice"))
}

func TestResolveRejectsDegeneratePairs(t *testing.T) {
	svc := resolve.New(nil)
	_, err := svc.Resolve(context.Background(), "alice", "alice")
	assert.Error(t, err)
	_, err = svc.Resolve(context.Background(), "", "bob")
	assert.Error(t, err)
}

func TestCanonical(t *testing.T) {
	lo, hi := resolve.Canonical("b", "a")
	assert.Equal(t, domain.IdentityID("a"), lo)
	assert.Equal(t, domain.IdentityID("b"), hi)

	lo, hi = resolve.Canonical("a", "b")
	assert.Equal(t, domain.IdentityID("a"), lo)
	assert.Equal(t, domain.IdentityID("b"), hi)
}
