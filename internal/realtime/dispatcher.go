package realtime

import (
	"log/slog"
)

// Dispatcher is the best-effort realtime half of message delivery. The
// durable half is the repository append, which always runs first; by the
// time Deliver is called the message already exists and will reach the
// recipient on their next pull regardless of what happens here.
//
// Failures on this path (recipient offline, dead socket) are swallowed:
// never surfaced to the sender, at most logged.
type Dispatcher struct {
	registry *Registry
	log      *slog.Logger
}

// NewDispatcher creates a dispatcher over the given presence registry.
func NewDispatcher(registry *Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// Deliver forwards the event to the recipient's live connection, if any.
// No retry, no queuing, no acknowledgement.
func (d *Dispatcher) Deliver(recipientID string, event any) {
	peer, ok := d.registry.Lookup(recipientID)
	if !ok {
		d.log.Debug("recipient not connected, skipping realtime push", "recipient", recipientID)
		return
	}
	if err := peer.Send(event); err != nil {
		// treated identically to "recipient absent"
		d.log.Debug("realtime push failed", "recipient", recipientID, "err", err)
	}
}
