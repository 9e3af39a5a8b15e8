package interfaces

import (
	"context"

	domaintypes "sealdm/internal/domain/types"
)

// UserStore persists enrolled identities and their public key records.
type UserStore interface {
	UpsertUser(ctx context.Context, u domaintypes.User) error
	GetUser(ctx context.Context, id domaintypes.IdentityID) (domaintypes.User, error)
	FindUserByHandle(ctx context.Context, handle string) (domaintypes.User, error)
}

// ConversationStore resolves and persists canonical conversations.
type ConversationStore interface {
	// CreateIfAbsent returns the conversation for the canonical pair,
	// creating it atomically on first contact. Safe under concurrent
	// resolution from both sides.
	CreateIfAbsent(ctx context.Context, lo, hi domaintypes.IdentityID) (domaintypes.Conversation, error)
	GetConversation(ctx context.Context, id domaintypes.ConversationID) (domaintypes.Conversation, error)
	ListConversationsFor(ctx context.Context, id domaintypes.IdentityID) ([]domaintypes.Conversation, error)
	// DeleteConversation removes the conversation and its messages as a unit.
	DeleteConversation(ctx context.Context, id domaintypes.ConversationID) error
}

// MessageStore persists opaque ciphertext records.
type MessageStore interface {
	InsertMessage(ctx context.Context, m domaintypes.Message) error
	ListMessages(ctx context.Context, id domaintypes.ConversationID) ([]domaintypes.Message, error)
	// LastMessage returns the newest message of a conversation, or ok=false
	// when the conversation is empty.
	LastMessage(ctx context.Context, id domaintypes.ConversationID) (domaintypes.Message, bool, error)
}

// BlockStore persists directed block edges.
type BlockStore interface {
	AddBlock(ctx context.Context, blocker, blocked domaintypes.IdentityID) error
	RemoveBlock(ctx context.Context, blocker, blocked domaintypes.IdentityID) error
	// IsBlocked reports whether an edge exists in either direction.
	IsBlocked(ctx context.Context, a, b domaintypes.IdentityID) (bool, error)
	BlockStatus(ctx context.Context, me, other domaintypes.IdentityID) (domaintypes.BlockStatus, error)
}

// KeyVault is the client-owned cache for the local key pair. Private key
// material never crosses this boundary toward the hub.
type KeyVault interface {
	LoadKeyPair() (domaintypes.KeyPair, bool, error)
	SaveKeyPair(kp domaintypes.KeyPair) error
}
