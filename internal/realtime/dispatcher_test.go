package realtime

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherDeliversToConnectedPeer(t *testing.T) {
	reg := NewRegistry()
	peer := &fakePeer{}
	reg.Register("b2", peer)

	d := NewDispatcher(reg, discardLogger())
	d.Deliver("b2", NewMessage("a1", []byte(`{"content":"hi"}`)))

	sent := peer.sentEvents()
	require.Len(t, sent, 1)
	ev, ok := sent[0].(NewMessageEvent)
	require.True(t, ok)
	assert.Equal(t, "a1", ev.SenderID)
}

func TestDispatcherSkipsAbsentRecipient(t *testing.T) {
	d := NewDispatcher(NewRegistry(), discardLogger())

	// must not panic or error; durable path already has the message
	d.Deliver("nobody", NewMessage("a1", []byte(`{}`)))
}

func TestDispatcherSwallowsSendFailure(t *testing.T) {
	reg := NewRegistry()
	peer := &fakePeer{sendErr: errors.New("broken pipe")}
	reg.Register("b2", peer)

	d := NewDispatcher(reg, discardLogger())
	d.Deliver("b2", NewMessage("a1", []byte(`{}`)))

	assert.Empty(t, peer.sentEvents())
}
