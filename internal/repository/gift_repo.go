package repository

import (
	"context"

	"github.com/sparkdate/spark/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GiftRepository provides append access to gifts and the atomic balance
// credit that goes with them.
type GiftRepository struct {
	db *gorm.DB
}

// NewGiftRepository creates a new repository bound to the given DB connection.
func NewGiftRepository(database *gorm.DB) *GiftRepository {
	return &GiftRepository{db: database}
}

// AppendGift persists a gift row. Crediting the recipient is a separate
// step (IncrementBalance) so each primitive stays single-row atomic.
func (r *GiftRepository) AppendGift(ctx context.Context, fromUserID, toUserID, giftType string, value float64, messageID *uint64) (db.Gift, error) {
	gift := db.Gift{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		GiftType:   giftType,
		Value:      value,
		MessageID:  messageID,
	}
	err := r.db.WithContext(ctx).Create(&gift).Error
	return gift, err
}

// IncrementBalance credits the user's balance by delta as a single
// upsert-with-increment.
//
// Behavior:
//   - No row yet → a row is created seeded with delta for both fields.
//   - Row exists → amount and total_earned are incremented relative to
//     the stored value in SQL, never read-then-written, so concurrent
//     credits to the same recipient cannot lose updates.
//
// Example:
//
//	repo.IncrementBalance(ctx, "b2", 5.00)
func (r *GiftRepository) IncrementBalance(ctx context.Context, userID string, delta float64) (db.Balance, error) {
	balance := db.Balance{
		UserID:      userID,
		Amount:      delta,
		TotalEarned: delta,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":       gorm.Expr("amount + ?", delta),
				"total_earned": gorm.Expr("total_earned + ?", delta),
			}),
		}).
		Create(&balance).Error
	if err != nil {
		return db.Balance{}, err
	}

	return r.GetBalance(ctx, userID)
}

// GetBalance returns the user's balance row, or gorm.ErrRecordNotFound
// if the user was never credited.
func (r *GiftRepository) GetBalance(ctx context.Context, userID string) (db.Balance, error) {
	var balance db.Balance
	err := r.db.WithContext(ctx).First(&balance, "user_id = ?", userID).Error
	return balance, err
}
