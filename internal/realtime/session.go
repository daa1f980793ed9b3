package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type sessionState int

const (
	stateUnauthenticated sessionState = iota
	stateAuthenticated
	stateClosed
)

// transport abstracts the websocket connection so the state machine is
// testable without a network. *websocket.Conn satisfies it as-is.
type transport interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
	Close() error
}

// Session is the per-connection state machine:
//
//	Unauthenticated → Authenticated → Closed (terminal)
//
// A connection authenticates by sending an auth event with its userId,
// which binds it in the presence registry. Authenticated sessions can
// relay chat messages to other connected users. Teardown unregisters
// (identity-checked, so a slow teardown cannot evict a successor) and
// closes the socket. Closed is terminal.
type Session struct {
	id         string
	conn       transport
	registry   *Registry
	dispatcher *Dispatcher
	log        *slog.Logger

	writeMu sync.Mutex // gorilla allows one concurrent writer

	mu     sync.Mutex
	state  sessionState
	userID string
}

// NewSession wraps an upgraded websocket connection.
func NewSession(conn *websocket.Conn, registry *Registry, dispatcher *Dispatcher, log *slog.Logger) *Session {
	return newSession(conn, registry, dispatcher, log)
}

func newSession(conn transport, registry *Registry, dispatcher *Dispatcher, log *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:         id,
		conn:       conn,
		registry:   registry,
		dispatcher: dispatcher,
		log:        log.With("session_id", id),
	}
}

// Send pushes one event to this session's client. Safe for concurrent use.
func (s *Session) Send(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

// Close tears down the underlying transport, which also unblocks Run.
func (s *Session) Close() error {
	return s.conn.Close()
}

// Run reads inbound frames until the transport closes from either side.
// Malformed payloads are logged and ignored; they never close the
// connection. Blocks; callers run it on its own goroutine.
func (s *Session) Run() {
	defer s.teardown()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		ev, err := ParseEvent(raw)
		if err != nil {
			s.log.Warn("dropping malformed event", "err", err)
			continue
		}
		s.handle(ev)
	}
}

func (s *Session) handle(ev InboundEvent) {
	switch ev.Type {
	case EventAuth:
		s.handleAuth(ev.UserID)
	case EventMessage:
		s.handleRelay(ev)
	}
}

// handleAuth binds this session in the presence registry. Re-auth under
// a different user releases the old binding first.
func (s *Session) handleAuth(userID string) {
	s.mu.Lock()
	if s.state == stateClosed {
		s.mu.Unlock()
		return
	}
	prevUserID := s.userID
	s.state = stateAuthenticated
	s.userID = userID
	s.mu.Unlock()

	if prevUserID != "" && prevUserID != userID {
		s.registry.Unregister(prevUserID, s)
	}

	if prev := s.registry.Register(userID, s); prev != nil && prev != Peer(s) {
		// the displaced connection would otherwise sit idle until its
		// client notices; reference behavior leaves it open
		_ = prev.Close()
	}

	s.log.Info("user connected", "user_id", userID)
}

// handleRelay forwards a client-sent message event to its recipient.
// The message was already durably persisted over HTTP before the client
// emitted this event, so a failed or skipped push loses nothing.
func (s *Session) handleRelay(ev InboundEvent) {
	s.mu.Lock()
	authed := s.state == stateAuthenticated
	senderID := s.userID
	s.mu.Unlock()

	if !authed {
		s.log.Warn("relay from unauthenticated session dropped")
		return
	}

	s.dispatcher.Deliver(ev.RecipientID, NewMessage(senderID, ev.Message))
}

func (s *Session) teardown() {
	s.mu.Lock()
	if s.state == stateClosed {
		s.mu.Unlock()
		return
	}
	userID := s.userID
	s.state = stateClosed
	s.mu.Unlock()

	if userID != "" {
		s.registry.Unregister(userID, s)
	}
	_ = s.conn.Close()

	s.log.Info("session closed", "user_id", userID)
}
