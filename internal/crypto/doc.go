// Package crypto implements the primitives of the message core: X25519
// identity key pairs with a portable export format, pairwise shared-key
// derivation (X25519 + HKDF-SHA256), and the ChaCha20-Poly1305 message
// cipher. Every operation that touches randomness reports failure as
// domain.ErrCryptoUnavailable rather than degrading.
package crypto
