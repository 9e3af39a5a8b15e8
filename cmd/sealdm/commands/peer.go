package commands

import (
	"context"
	"strings"

	"sealdm/internal/crypto"
	"sealdm/internal/domain"
	"sealdm/internal/keyring"
)

// resolvePeer accepts either an identity id or an @handle and returns the
// enrolled user.
func resolvePeer(ctx context.Context, ref string) (domain.User, error) {
	if handle, ok := strings.CutPrefix(ref, "@"); ok {
		return client.SearchUser(ctx, handle)
	}
	return client.LookupUser(ctx, domain.IdentityID(ref))
}

// pairwiseKey derives the symmetric key shared with peer from the local
// private key and the peer's published public key.
func pairwiseKey(peer domain.User) (domain.SymmetricKey, error) {
	kp, err := keyring.EnsureIdentity(vault)
	if err != nil {
		return domain.SymmetricKey{}, err
	}
	pub, err := crypto.ImportPublic(peer.PublicKey)
	if err != nil {
		return domain.SymmetricKey{}, err
	}
	return crypto.DeriveSharedKey(kp.Private, pub)
}
