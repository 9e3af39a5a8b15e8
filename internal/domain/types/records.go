package types

import "time"

// User is an enrolled identity with its public profile and key record.
type User struct {
	ID        IdentityID      `json:"id"`
	Handle    string          `json:"handle"`
	Name      string          `json:"name"`
	PublicKey PublicKeyRecord `json:"public_key"`
	CreatedAt time.Time       `json:"created_at"`
}

// Conversation is the canonical record for an unordered identity pair.
// UserLo/UserHi are the pair in canonical order.
type Conversation struct {
	ID        ConversationID `json:"id"`
	UserLo    IdentityID     `json:"user_lo"`
	UserHi    IdentityID     `json:"user_hi"`
	CreatedAt time.Time      `json:"created_at"`
}

// Other returns the member that is not id.
func (c Conversation) Other(id IdentityID) IdentityID {
	if c.UserLo == id {
		return c.UserHi
	}
	return c.UserLo
}

// Has reports whether id is a member of the conversation.
func (c Conversation) Has(id IdentityID) bool {
	return c.UserLo == id || c.UserHi == id
}

// Message is one stored ciphertext. Ciphertext and Nonce are opaque to the
// hub: stored and returned verbatim, never parsed.
type Message struct {
	ID             MessageID      `json:"id"`
	ConversationID ConversationID `json:"conversation_id"`
	SenderID       IdentityID     `json:"sender_id"`
	Ciphertext     []byte         `json:"ciphertext"`
	Nonce          []byte         `json:"nonce"`
	CreatedAt      time.Time      `json:"created_at"`
}

// BlockRelation is a directed blocker -> blocked edge. Either direction
// suppresses delivery both ways.
type BlockRelation struct {
	BlockerID IdentityID `json:"blocker_id"`
	BlockedID IdentityID `json:"blocked_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// BlockStatus is the answer to a block lookup between two identities.
type BlockStatus struct {
	Blocked     bool `json:"blocked"`
	BlockedByMe bool `json:"blocked_by_me"`
}

// ConversationSummary is one row of the chat list. LastMessage reports
// presence only; previews stay a fixed placeholder because the hub cannot
// decrypt.
type ConversationSummary struct {
	ConversationID ConversationID `json:"conversation_id"`
	Peer           User           `json:"peer"`
	HasMessages    bool           `json:"has_messages"`
	LastSenderID   IdentityID     `json:"last_sender_id,omitempty"`
	LastActivity   time.Time      `json:"last_activity"`
}
