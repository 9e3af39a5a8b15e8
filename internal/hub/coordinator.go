package hub

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"sealdm/internal/domain"
)

// DefaultWriteTimeout bounds a single persistence operation.
const DefaultWriteTimeout = 5 * time.Second

// Coordinator runs the send path. Channels for independent conversations
// proceed fully in parallel; the registry is the only shared mutable
// state.
type Coordinator struct {
	resolver     domain.Resolver
	messages     domain.MessageStore
	blocks       domain.BlockStore
	registry     domain.LiveRegistry
	writeTimeout time.Duration
}

// NewCoordinator wires the send path.
func NewCoordinator(
	resolver domain.Resolver,
	messages domain.MessageStore,
	blocks domain.BlockStore,
	registry domain.LiveRegistry,
	writeTimeout time.Duration,
) *Coordinator {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &Coordinator{
		resolver:     resolver,
		messages:     messages,
		blocks:       blocks,
		registry:     registry,
		writeTimeout: writeTimeout,
	}
}

// Send accepts one ciphertext from sender for peer. In order: block check,
// conversation resolution, persistence, best-effort live push. The
// returned message is acknowledged to the sender whether or not the push
// landed. Either the message is fully persisted or nothing is stored;
// persistence faults surface as domain.ErrDeliveryFailed and the whole
// send is safe to retry.
func (c *Coordinator) Send(ctx context.Context, sender, peer domain.IdentityID, ciphertext, nonce []byte) (domain.Message, error) {
	if sender == "" || peer == "" {
		return domain.Message{}, errors.New("sender and peer are required")
	}
	if len(ciphertext) == 0 || len(nonce) == 0 {
		return domain.Message{}, errors.New("ciphertext and nonce are required")
	}

	// The channel closing under us must not cancel a send we already
	// accepted, so the whole path runs on a detached, bounded context.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)
	defer cancel()

	blocked, err := c.blocks.IsBlocked(pctx, sender, peer)
	if err != nil {
		return domain.Message{}, errors.Wrap(domain.ErrDeliveryFailed, err.Error())
	}
	if blocked {
		return domain.Message{}, domain.ErrBlocked
	}

	conv, err := c.resolver.Resolve(pctx, sender, peer)
	if err != nil {
		return domain.Message{}, errors.Wrap(domain.ErrDeliveryFailed, err.Error())
	}

	m := domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: conv.ID,
		SenderID:       sender,
		Ciphertext:     ciphertext,
		Nonce:          nonce,
		CreatedAt:      time.Now(),
	}
	if err := c.messages.InsertMessage(pctx, m); err != nil {
		return domain.Message{}, errors.Wrap(domain.ErrDeliveryFailed, err.Error())
	}

	// Best-effort, at-most-once push. Storage order stays authoritative;
	// a failed push just means the peer finds the message on next poll.
	if ch, ok := c.registry.Lookup(peer); ok {
		if err := ch.Push(m); err != nil {
			jww.DEBUG.Printf("push to %s failed, falling back to poll: %v", peer, err)
		}
	}
	return m, nil
}
