package realtime

import (
	"sync"
)

// Peer is a live realtime connection as seen by the registry and the
// dispatcher. The interface is deliberately narrow so the registry could
// be backed by an external broker for cross-process presence without
// changing callers.
type Peer interface {
	// Send pushes one JSON-encodable event to the peer.
	Send(v any) error
	// Close tears down the underlying transport.
	Close() error
}

// Registry tracks which users are currently reachable for realtime
// delivery, at most one connection per user. It is the only shared
// mutable state in the realtime core; every operation is guarded by the
// mutex so register/unregister/lookup interleave safely from all
// sessions at once.
//
// The registry never closes connections itself; closing the superseded
// peer returned by Register is the caller's responsibility.
type Registry struct {
	mu    sync.RWMutex
	peers map[string]Peer
}

// NewRegistry creates an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{peers: make(map[string]Peer)}
}

// Register binds userID to peer, last-writer-wins. Returns the peer that
// was displaced, or nil if the user had no live connection.
func (r *Registry) Register(userID string, peer Peer) Peer {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.peers[userID]
	r.peers[userID] = peer
	return prev
}

// Unregister removes the binding only if the currently registered peer
// is exactly the given one. A stale teardown from a superseded
// connection can therefore never evict a newer, valid binding.
func (r *Registry) Unregister(userID string, peer Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.peers[userID]; ok && cur == peer {
		delete(r.peers, userID)
	}
}

// Lookup returns the user's live connection, if any. Non-blocking.
func (r *Registry) Lookup(userID string) (Peer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	peer, ok := r.peers[userID]
	return peer, ok
}

// Online reports how many users currently hold a live connection.
func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}
