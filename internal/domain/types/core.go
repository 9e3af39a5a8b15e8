package types

// IdentityID is a stable, already-authenticated user identifier.
type IdentityID string

// String returns the string form of the identity id.
func (id IdentityID) String() string { return string(id) }

// ConversationID identifies one canonical conversation between two identities.
type ConversationID string

// String returns the string form of the conversation identifier.
func (id ConversationID) String() string { return string(id) }

// MessageID identifies a persisted message.
type MessageID string

// String returns the string form of the message identifier.
func (id MessageID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
