package keyring

import (
	"sync"

	"sealdm/internal/domain"
)

// Memory is an ephemeral vault for tests and throwaway sessions. It keeps
// the no-server-custody invariant checkable without touching disk.
type Memory struct {
	mu  sync.Mutex
	kp  domain.KeyPair
	set bool
}

// NewMemory returns an empty in-memory vault.
func NewMemory() *Memory { return &Memory{} }

// LoadKeyPair returns the stored pair, if any.
func (m *Memory) LoadKeyPair() (domain.KeyPair, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.kp, m.set, nil
}

// SaveKeyPair stores the pair.
func (m *Memory) SaveKeyPair(kp domain.KeyPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kp = kp
	m.set = true
	return nil
}

var _ domain.KeyVault = (*Memory)(nil)
