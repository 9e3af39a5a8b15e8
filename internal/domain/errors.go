package domain

import "errors"

// Error taxonomy shared across the core. Callers classify with errors.Is;
// wrapping at call sites preserves these sentinels.
var (
	// ErrCryptoUnavailable means randomness or curve operations failed.
	// Fatal to the client session; never fall back to a weaker primitive.
	ErrCryptoUnavailable = errors.New("crypto primitives unavailable")

	// ErrMissingKeyMaterial means a derivation was attempted without both
	// a private and a public key.
	ErrMissingKeyMaterial = errors.New("missing key material")

	// ErrAuthenticationFailed means a ciphertext/nonce pair failed AEAD
	// verification: tampered, forged, or sealed under a different key.
	ErrAuthenticationFailed = errors.New("message authentication failed")

	// ErrBlocked is the expected outcome when a block relation exists in
	// either direction between sender and peer.
	ErrBlocked = errors.New("delivery blocked")

	// ErrDeliveryFailed means persistence failed or timed out; nothing was
	// stored and the whole send is safe to retry.
	ErrDeliveryFailed = errors.New("delivery failed")

	// ErrUnauthorized terminates a live channel that did not present a
	// valid credential within the auth window.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound reports a missing user, conversation, or message.
	ErrNotFound = errors.New("not found")
)
