package hub

import (
	"sync"

	"sealdm/internal/domain"
)

// Registry is the in-process live-connection map. It is injected into the
// coordinator rather than held as a package singleton so tests can drive
// connect/disconnect sequences deterministically.
type Registry struct {
	mu    sync.RWMutex
	chans map[domain.IdentityID]domain.PushChannel
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{chans: make(map[domain.IdentityID]domain.PushChannel)}
}

// Register installs ch as the one channel for id and returns the channel
// it displaced, if any. A second connection replaces the first; the
// caller closes the displaced channel so the same identity is never
// delivered to twice.
func (r *Registry) Register(id domain.IdentityID, ch domain.PushChannel) domain.PushChannel {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.chans[id]
	r.chans[id] = ch
	return old
}

// Lookup returns the live channel for id, if connected.
func (r *Registry) Lookup(id domain.IdentityID) (domain.PushChannel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.chans[id]
	return ch, ok
}

// Remove drops the entry for id only while it still maps to ch. A channel
// that was displaced earlier must not unregister its replacement.
func (r *Registry) Remove(id domain.IdentityID, ch domain.PushChannel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.chans[id] == ch {
		delete(r.chans, id)
	}
}

// Len reports the number of connected identities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chans)
}

var _ domain.LiveRegistry = (*Registry)(nil)
