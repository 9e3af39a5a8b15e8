// Package keyring holds the client-owned identity key pair. The private
// key lives only here; nothing in this package talks to the hub.
package keyring

import (
	"sealdm/internal/crypto"
	"sealdm/internal/domain"
)

// EnsureIdentity returns the cached key pair from the vault, generating
// and persisting a fresh one only when none exists. Repeated calls return
// the same pair unchanged.
func EnsureIdentity(vault domain.KeyVault) (domain.KeyPair, error) {
	kp, ok, err := vault.LoadKeyPair()
	if err != nil {
		return domain.KeyPair{}, err
	}
	if ok {
		return kp, nil
	}
	kp, err = crypto.GenerateKeyPair()
	if err != nil {
		return domain.KeyPair{}, err
	}
	if err := vault.SaveKeyPair(kp); err != nil {
		return domain.KeyPair{}, err
	}
	return kp, nil
}
