package repository

import (
	"context"

	"github.com/sparkdate/spark/internal/db"

	"gorm.io/gorm"
)

// MessageRepository provides append/list access to chat messages.
// Messages are strictly append-only; nothing here updates or deletes.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Append persists a message in the match's conversation. The returned
// row carries the DB-assigned ID and creation time, which establish the
// total order within the match.
func (r *MessageRepository) Append(ctx context.Context, matchID uint64, senderID, content, messageType string) (db.Message, error) {
	if messageType == "" {
		messageType = "text"
	}
	msg := db.Message{
		MatchID:     matchID,
		SenderID:    senderID,
		Content:     content,
		MessageType: messageType,
	}
	err := r.db.WithContext(ctx).Create(&msg).Error
	return msg, err
}

// ForMatch returns the match's messages in creation order.
func (r *MessageRepository) ForMatch(ctx context.Context, matchID uint64) ([]db.Message, error) {
	var messages []db.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}
