package chat

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sparkdate/spark/internal/app"
	"github.com/sparkdate/spark/internal/db"
	svcErr "github.com/sparkdate/spark/internal/errors"
	"github.com/sparkdate/spark/internal/realtime"
	"github.com/sparkdate/spark/internal/repository"

	"gorm.io/gorm"
)

// Service handles match listing and per-match chat. Sending a message
// follows the two-path delivery contract: the repository append is the
// system of record, the realtime push afterwards is best-effort.
type Service struct {
	appCtx      *app.AppContext
	matchRepo   *repository.MatchRepository
	messageRepo *repository.MessageRepository
	dispatcher  *realtime.Dispatcher
}

// NewService creates the chat service. The dispatcher is the shared
// realtime dispatch point constructed in main.
func NewService(appCtx *app.AppContext, dispatcher *realtime.Dispatcher) *Service {
	return &Service{
		appCtx:      appCtx,
		matchRepo:   repository.NewMatchRepository(appCtx.DB),
		messageRepo: repository.NewMessageRepository(appCtx.DB),
		dispatcher:  dispatcher,
	}
}

// MatchesForUser returns the user's matches, newest first.
func (s *Service) MatchesForUser(ctx context.Context, userID string) ([]db.Match, error) {
	if userID == "" {
		return nil, svcErr.Validation("userId is required")
	}
	matches, err := s.matchRepo.ForUser(ctx, userID)
	if err != nil {
		return nil, svcErr.Storage(err)
	}
	return matches, nil
}

// Messages returns the match's conversation in creation order.
func (s *Service) Messages(ctx context.Context, matchID uint64) ([]db.Message, error) {
	messages, err := s.messageRepo.ForMatch(ctx, matchID)
	if err != nil {
		return nil, svcErr.Storage(err)
	}
	return messages, nil
}

// SendMessage persists a message and then attempts a realtime push to
// the other participant.
//
// Behavior:
//   - The sender must be one of the match's two participants.
//   - The message exists the moment the append returns, regardless of
//     recipient connectivity.
//   - The push is attempted only after the append succeeds, and its
//     failure is never surfaced: an offline recipient sees the message
//     on their next fetch of the conversation.
func (s *Service) SendMessage(ctx context.Context, matchID uint64, senderID, content, messageType string) (db.Message, error) {
	if senderID == "" {
		return db.Message{}, svcErr.Validation("senderId is required")
	}
	if content == "" {
		return db.Message{}, svcErr.Validation("content is required")
	}

	match, err := s.matchRepo.ByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Message{}, svcErr.NotFound("match %d not found", matchID)
		}
		return db.Message{}, svcErr.Storage(err)
	}

	if senderID != match.User1ID && senderID != match.User2ID {
		return db.Message{}, svcErr.Validation("sender is not a participant of this match")
	}

	message, err := s.messageRepo.Append(ctx, matchID, senderID, content, messageType)
	if err != nil {
		return db.Message{}, svcErr.Storage(err)
	}

	recipientID := match.User1ID
	if senderID == match.User1ID {
		recipientID = match.User2ID
	}

	if payload, err := json.Marshal(message); err == nil {
		s.dispatcher.Deliver(recipientID, realtime.NewMessage(senderID, payload))
	} else {
		s.appCtx.Logger.Warn("message payload marshal failed, push skipped", "err", err)
	}

	return message, nil
}
