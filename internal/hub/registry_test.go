package hub_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealdm/internal/domain"
	"sealdm/internal/hub"
)

// fakeChannel records pushes and closes for assertions.
type fakeChannel struct {
	mu       sync.Mutex
	pushed   []domain.Message
	closed   bool
	reason   string
	failPush bool
}

func (f *fakeChannel) Push(m domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPush {
		return assert.AnError
	}
	f.pushed = append(f.pushed, m)
	return nil
}

func (f *fakeChannel) Close(reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.reason = reason
	return nil
}

func (f *fakeChannel) pushes() []domain.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Message(nil), f.pushed...)
}

func (f *fakeChannel) isClosed() (bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed, f.reason
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := hub.NewRegistry()

	_, ok := r.Lookup("alice")
	assert.False(t, ok)

	ch := &fakeChannel{}
	displaced := r.Register("alice", ch)
	assert.Nil(t, displaced)

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, domain.PushChannel(ch), got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistrySecondConnectionDisplacesFirst(t *testing.T) {
	r := hub.NewRegistry()
	first := &fakeChannel{}
	second := &fakeChannel{}

	require.Nil(t, r.Register("alice", first))
	displaced := r.Register("alice", second)
	assert.Same(t, domain.PushChannel(first), displaced)

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, domain.PushChannel(second), got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRemoveOnlyMatchingChannel(t *testing.T) {
	r := hub.NewRegistry()
	first := &fakeChannel{}
	second := &fakeChannel{}

	r.Register("alice", first)
	r.Register("alice", second)

	// A displaced channel tearing down must not unregister its successor.
	r.Remove("alice", first)
	_, ok := r.Lookup("alice")
	assert.True(t, ok)

	r.Remove("alice", second)
	_, ok = r.Lookup("alice")
	assert.False(t, ok)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := hub.NewRegistry()
	var wg sync.WaitGroup
	ids := []domain.IdentityID{"a", "b", "c", "d"}
	for i := 0; i < 8; i++ {
		for _, id := range ids {
			wg.Add(1)
			go func(id domain.IdentityID) {
				defer wg.Done()
				ch := &fakeChannel{}
				r.Register(id, ch)
				r.Lookup(id)
				r.Remove(id, ch)
			}(id)
		}
	}
	wg.Wait()
}
