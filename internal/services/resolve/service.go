package resolve

import (
	"context"

	"github.com/pkg/errors"

	"sealdm/internal/domain"
)

// Service maps an unordered identity pair to its one conversation,
// creating it lazily on first contact.
type Service struct {
	conversations domain.ConversationStore
}

// New returns a resolver backed by the given conversation store.
func New(conversations domain.ConversationStore) *Service {
	return &Service{conversations: conversations}
}

// Resolve canonicalizes the pair and returns its conversation.
// Resolve(a, b) and Resolve(b, a) yield the same conversation.
func (s *Service) Resolve(ctx context.Context, a, b domain.IdentityID) (domain.Conversation, error) {
	if a == "" || b == "" {
		return domain.Conversation{}, errors.New("both identities are required")
	}
	if a == b {
		return domain.Conversation{}, errors.New("conversation members must be distinct")
	}
	lo, hi := Canonical(a, b)
	return s.conversations.CreateIfAbsent(ctx, lo, hi)
}

// Canonical orders the pair by the total order over identity ids.
func Canonical(a, b domain.IdentityID) (lo, hi domain.IdentityID) {
	if a < b {
		return a, b
	}
	return b, a
}

var _ domain.Resolver = (*Service)(nil)
