package realtime

import (
	"encoding/json"
	"fmt"
)

// Wire event types, client→server (auth, message) and server→client
// (new_message).
const (
	EventAuth       = "auth"
	EventMessage    = "message"
	EventNewMessage = "new_message"
)

// InboundEvent is a parsed client→server envelope.
type InboundEvent struct {
	Type        string          `json:"type"`
	UserID      string          `json:"userId,omitempty"`
	RecipientID string          `json:"recipientId,omitempty"`
	Message     json.RawMessage `json:"message,omitempty"`
}

// NewMessageEvent is the server→client push for a chat message.
type NewMessageEvent struct {
	Type     string          `json:"type"`
	Message  json.RawMessage `json:"message"`
	SenderID string          `json:"senderId"`
}

// NewMessage builds the push event for a persisted message payload.
func NewMessage(senderID string, message json.RawMessage) NewMessageEvent {
	return NewMessageEvent{
		Type:     EventNewMessage,
		Message:  message,
		SenderID: senderID,
	}
}

// ParseEvent decodes and validates a raw inbound frame. It is a pure
// function feeding the session state machine; transport framing stays
// out of event semantics.
func ParseEvent(raw []byte) (InboundEvent, error) {
	var ev InboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return InboundEvent{}, fmt.Errorf("unparsable event: %w", err)
	}

	switch ev.Type {
	case EventAuth:
		if ev.UserID == "" {
			return InboundEvent{}, fmt.Errorf("auth event without userId")
		}
	case EventMessage:
		if ev.RecipientID == "" {
			return InboundEvent{}, fmt.Errorf("message event without recipientId")
		}
		if len(ev.Message) == 0 {
			return InboundEvent{}, fmt.Errorf("message event without payload")
		}
	default:
		return InboundEvent{}, fmt.Errorf("unknown event type %q", ev.Type)
	}

	return ev, nil
}
