package chatlist

import (
	"context"
	"sort"

	"sealdm/internal/domain"
)

// Service derives the chat list from persisted metadata. It reads message
// rows for timestamps and sender ids only; ciphertext content is never
// interpreted here, so previews are presence indicators, not text.
type Service struct {
	conversations domain.ConversationStore
	messages      domain.MessageStore
	users         domain.UserStore
}

// New returns an aggregator over the given stores.
func New(conversations domain.ConversationStore, messages domain.MessageStore, users domain.UserStore) *Service {
	return &Service{conversations: conversations, messages: messages, users: users}
}

// ListConversations returns one summary per conversation containing id,
// ordered by most recent activity. LastActivity falls back to the
// conversation's creation time when it has no messages.
func (s *Service) ListConversations(ctx context.Context, id domain.IdentityID) ([]domain.ConversationSummary, error) {
	convs, err := s.conversations.ListConversationsFor(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		peer, err := s.users.GetUser(ctx, c.Other(id))
		if err != nil {
			return nil, err
		}
		summary := domain.ConversationSummary{
			ConversationID: c.ID,
			Peer:           peer,
			LastActivity:   c.CreatedAt,
		}
		last, ok, err := s.messages.LastMessage(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			summary.HasMessages = true
			summary.LastSenderID = last.SenderID
			summary.LastActivity = last.CreatedAt
		}
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	return out, nil
}

var _ domain.Aggregator = (*Service)(nil)
