package hub_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealdm/internal/domain"
	"sealdm/internal/hub"
)

func TestTokenRoundTrip(t *testing.T) {
	a := hub.NewTokenAuthenticator([]byte("hub-secret"))

	token := a.Issue("alice")
	id, err := a.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityID("alice"), id)
}

func TestTokenRejection(t *testing.T) {
	a := hub.NewTokenAuthenticator([]byte("hub-secret"))
	other := hub.NewTokenAuthenticator([]byte("different-secret"))
	ctx := context.Background()

	cases := map[string]string{
		"empty":        "",
		"no separator": "alice",
		"bad base64":   "alice.!!!",
		"wrong secret": other.Issue("alice"),
		"wrong id":     "bob." + a.Issue("alice")[len("alice."):],
	}
	for name, token := range cases {
		_, err := a.Verify(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, name)
	}
}
