package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/curve25519"

	"sealdm/internal/domain"
)

// CurveName identifies the key type in exported records.
const CurveName = "X25519"

// GenerateKeyPair returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateKeyPair() (domain.KeyPair, error) {
	var priv domain.X25519Private
	if _, err := rand.Read(priv[:]); err != nil {
		return domain.KeyPair{}, errors.Wrap(domain.ErrCryptoUnavailable, err.Error())
	}
	clamp(&priv)

	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return domain.KeyPair{}, errors.Wrap(domain.ErrCryptoUnavailable, err.Error())
	}
	var pub domain.X25519Public
	copy(pub[:], pb)
	return domain.KeyPair{Public: pub, Private: priv}, nil
}

// ExportPublic serialises a public key to its portable record form.
func ExportPublic(pub domain.X25519Public) domain.PublicKeyRecord {
	return domain.PublicKeyRecord{
		Curve: CurveName,
		Key:   base64.StdEncoding.EncodeToString(pub.Slice()),
	}
}

// ExportPrivate serialises a private key for client-side caching only.
func ExportPrivate(priv domain.X25519Private) domain.PrivateKeyRecord {
	return domain.PrivateKeyRecord{
		Curve: CurveName,
		Key:   base64.StdEncoding.EncodeToString(priv.Slice()),
	}
}

// ImportPublic parses a public key record. Import of an exported key is
// usable wherever the original was.
func ImportPublic(rec domain.PublicKeyRecord) (domain.X25519Public, error) {
	var pub domain.X25519Public
	if err := decodeKey(rec.Curve, rec.Key, pub[:]); err != nil {
		return domain.X25519Public{}, err
	}
	return pub, nil
}

// ImportPrivate parses a private key record.
func ImportPrivate(rec domain.PrivateKeyRecord) (domain.X25519Private, error) {
	var priv domain.X25519Private
	if err := decodeKey(rec.Curve, rec.Key, priv[:]); err != nil {
		return domain.X25519Private{}, err
	}
	return priv, nil
}

// FingerprintPublic returns a short fingerprint of the public key.
func FingerprintPublic(pub domain.X25519Public) domain.Fingerprint {
	sum := sha256.Sum256(pub.Slice())
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}

func decodeKey(curve, b64 string, dst []byte) error {
	if curve != CurveName {
		return errors.Errorf("unsupported curve %q", curve)
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return errors.Wrap(err, "decode key record")
	}
	if len(raw) != len(dst) {
		return errors.Errorf("invalid key size %d, want %d", len(raw), len(dst))
	}
	copy(dst, raw)
	return nil
}

func clamp(k *domain.X25519Private) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
