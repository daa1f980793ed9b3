package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePeer struct {
	mu      sync.Mutex
	sent    []any
	closed  bool
	sendErr error
}

func (p *fakePeer) Send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sendErr != nil {
		return p.sendErr
	}
	p.sent = append(p.sent, v)
	return nil
}

func (p *fakePeer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePeer) sentEvents() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.sent...)
}

func (p *fakePeer) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	peer := &fakePeer{}

	prev := reg.Register("a1", peer)
	assert.Nil(t, prev)

	got, ok := reg.Lookup("a1")
	assert.True(t, ok)
	assert.Same(t, peer, got.(*fakePeer))

	_, ok = reg.Lookup("b2")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Online())
}

func TestRegistryLastWriterWins(t *testing.T) {
	reg := NewRegistry()
	older := &fakePeer{}
	newer := &fakePeer{}

	reg.Register("a1", older)
	prev := reg.Register("a1", newer)

	// the displaced peer is handed back to the caller, not closed here
	assert.Same(t, older, prev.(*fakePeer))
	assert.False(t, older.isClosed())

	got, _ := reg.Lookup("a1")
	assert.Same(t, newer, got.(*fakePeer))
}

func TestRegistryUnregisterChecksIdentity(t *testing.T) {
	reg := NewRegistry()
	older := &fakePeer{}
	newer := &fakePeer{}

	reg.Register("a1", older)
	reg.Register("a1", newer)

	// stale teardown from the superseded connection must not evict
	reg.Unregister("a1", older)
	got, ok := reg.Lookup("a1")
	assert.True(t, ok)
	assert.Same(t, newer, got.(*fakePeer))

	reg.Unregister("a1", newer)
	_, ok = reg.Lookup("a1")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Online())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := &fakePeer{}
			reg.Register("a1", p)
			reg.Lookup("a1")
			reg.Unregister("a1", p)
		}()
	}
	wg.Wait()

	// no torn state: either empty or holding exactly one live peer
	assert.LessOrEqual(t, reg.Online(), 1)
}
