package keyring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealdm/internal/keyring"
)

func TestEnsureIdentityIdempotent(t *testing.T) {
	vault := keyring.NewMemory()

	first, err := keyring.EnsureIdentity(vault)
	require.NoError(t, err)
	second, err := keyring.EnsureIdentity(vault)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFileVaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	vault := keyring.NewFile(dir)

	_, ok, err := vault.LoadKeyPair()
	require.NoError(t, err)
	assert.False(t, ok)

	kp, err := keyring.EnsureIdentity(vault)
	require.NoError(t, err)

	// A fresh vault over the same dir sees the same pair.
	again := keyring.NewFile(dir)
	loaded, ok, err := again.LoadKeyPair()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, kp, loaded)
}
