package interfaces

import (
	"context"

	domaintypes "sealdm/internal/domain/types"
)

// Resolver maps an unordered identity pair to its one conversation.
type Resolver interface {
	Resolve(ctx context.Context, a, b domaintypes.IdentityID) (domaintypes.Conversation, error)
}

// Aggregator derives the chat list view from persisted metadata without
// ever touching ciphertext content.
type Aggregator interface {
	ListConversations(ctx context.Context, id domaintypes.IdentityID) ([]domaintypes.ConversationSummary, error)
}

// Directory is the enrollment surface: identity to public key record plus
// the public profile fields shown in chat lists.
type Directory interface {
	Enroll(ctx context.Context, u domaintypes.User) error
	Lookup(ctx context.Context, id domaintypes.IdentityID) (domaintypes.User, error)
	Search(ctx context.Context, handle string) (domaintypes.User, error)
}

// Authenticator verifies a live-channel credential and yields the identity
// it was issued to. The core never authenticates users itself.
type Authenticator interface {
	Verify(ctx context.Context, credential string) (domaintypes.IdentityID, error)
}
