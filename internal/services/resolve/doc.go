// Package resolve implements the conversation resolver: a deterministic,
// order-independent mapping from an identity pair to one conversation.
package resolve
