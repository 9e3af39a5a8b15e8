package crypto

import (
	"crypto/rand"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"

	"sealdm/internal/domain"
)

// NonceSize is the length of the per-message nonce.
const NonceSize = chacha20poly1305.NonceSize

// Seal encrypts a UTF-8 plaintext under key with ChaCha20-Poly1305,
// generating a fresh random nonce inside. Callers never supply nonces;
// that is what keeps reuse under one key structurally impossible.
func Seal(key domain.SymmetricKey, plaintext []byte) (ciphertext, nonce []byte, err error) {
	aead, err := chacha20poly1305.New(key.Slice())
	if err != nil {
		return nil, nil, errors.Wrap(domain.ErrCryptoUnavailable, err.Error())
	}
	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, errors.Wrap(domain.ErrCryptoUnavailable, err.Error())
	}
	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open decrypts a ciphertext/nonce pair. Tampering, forgery, or a key
// mismatch fails with domain.ErrAuthenticationFailed; structurally
// malformed input (wrong nonce length, empty ciphertext) is reported as a
// distinct error so callers can tell the cases apart.
func Open(key domain.SymmetricKey, ciphertext, nonce []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, errors.Errorf("invalid nonce length %d, want %d", len(nonce), NonceSize)
	}
	if len(ciphertext) == 0 {
		return nil, errors.New("empty ciphertext")
	}
	aead, err := chacha20poly1305.New(key.Slice())
	if err != nil {
		return nil, errors.Wrap(domain.ErrCryptoUnavailable, err.Error())
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, domain.ErrAuthenticationFailed
	}
	return plaintext, nil
}
