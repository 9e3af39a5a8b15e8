package types

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a byte slice.
func (k X25519Public) Slice() []byte { return k[:] }

// IsZero reports whether the key is unset.
func (k X25519Public) IsZero() bool { return k == X25519Public{} }

// X25519Private is a Curve25519 private key. It never leaves the owning
// client; the server persists public key records only.
type X25519Private [32]byte

// Slice returns the key as a byte slice.
func (k X25519Private) Slice() []byte { return k[:] }

// IsZero reports whether the key is unset.
func (k X25519Private) IsZero() bool { return k == X25519Private{} }

// SymmetricKey is a derived 256-bit key for the message cipher.
type SymmetricKey [32]byte

// Slice returns the key as a byte slice.
func (k SymmetricKey) Slice() []byte { return k[:] }

// PublicKeyRecord is the exported, interoperable form of a public key as
// stored by the directory and handed between clients.
type PublicKeyRecord struct {
	Curve string `json:"curve"`
	Key   string `json:"key"` // base64 raw key bytes
}

// PrivateKeyRecord is the exported form of a private key. It exists for
// client-side caching only and must never be sent to the hub.
type PrivateKeyRecord struct {
	Curve string `json:"curve"`
	Key   string `json:"key"`
}

// KeyPair couples a freshly generated pair for the enrolling client.
type KeyPair struct {
	Public  X25519Public
	Private X25519Private
}
