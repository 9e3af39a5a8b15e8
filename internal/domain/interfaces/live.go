package interfaces

import domaintypes "sealdm/internal/domain/types"

// PushChannel is one connected recipient endpoint. Push is best-effort,
// at-most-once per channel; a failed push is not an error the sender sees.
type PushChannel interface {
	Push(m domaintypes.Message) error
	Close(reason string) error
}

// LiveRegistry is the process-local map from identity to its open push
// channel. Implementations are safe for concurrent use and hold at most
// one entry per identity: Register returns the channel it displaced, if
// any, so the caller can close it.
type LiveRegistry interface {
	Register(id domaintypes.IdentityID, ch PushChannel) (displaced PushChannel)
	Lookup(id domaintypes.IdentityID) (PushChannel, bool)
	// Remove drops the entry only if it still maps to ch, so a channel
	// replaced earlier cannot unregister its successor.
	Remove(id domaintypes.IdentityID, ch PushChannel)
}
