package crypto

import (
	"crypto/sha256"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"sealdm/internal/domain"
	"sealdm/internal/util/memzero"
)

// hkdfInfo binds derived keys to this protocol.
var hkdfInfo = []byte("sealdm-pairwise-v1")

// DeriveSharedKey computes the pairwise symmetric key from our private key
// and the peer's public key: X25519 Diffie-Hellman fed through HKDF-SHA256.
// The result is identical regardless of which party computes it:
//
//	DeriveSharedKey(aPriv, bPub) == DeriveSharedKey(bPriv, aPub)
//
// Both keys must be present; a zero value fails with
// domain.ErrMissingKeyMaterial.
func DeriveSharedKey(myPriv domain.X25519Private, peerPub domain.X25519Public) (domain.SymmetricKey, error) {
	var key domain.SymmetricKey
	if myPriv.IsZero() {
		return key, errors.Wrap(domain.ErrMissingKeyMaterial, "private key")
	}
	if peerPub.IsZero() {
		return key, errors.Wrap(domain.ErrMissingKeyMaterial, "peer public key")
	}

	// curve25519.X25519 rejects the all-zero shared secret produced by
	// low-order peer points.
	secret, err := curve25519.X25519(myPriv.Slice(), peerPub.Slice())
	if err != nil {
		return key, errors.Wrap(domain.ErrCryptoUnavailable, err.Error())
	}
	defer memzero.Zero(secret)

	r := hkdf.New(sha256.New, secret, nil, hkdfInfo)
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return domain.SymmetricKey{}, errors.Wrap(domain.ErrCryptoUnavailable, err.Error())
	}
	return key, nil
}
