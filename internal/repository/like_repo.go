package repository

import (
	"context"

	"github.com/sparkdate/spark/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository provides data access methods for the Like model.
// It encapsulates all queries related to swipes between users.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// UpsertLike inserts or updates the directed swipe from -> to.
//
// Behavior:
//   - If the (from_user_id, to_user_id) pair exists → the row is updated
//     with the new is_like value (a later swipe overwrites the prior one).
//   - If it doesn't exist → a new row is inserted.
//   - Composite PK ensures the overwrite guarantee; no duplicate rows
//     can exist for an ordered pair.
//
// Example:
//
//	repo.UpsertLike(ctx, "a1", "b2", true) // a1 liked b2
func (r *LikeRepository) UpsertLike(ctx context.Context, fromUserID, toUserID string, isLike bool) (db.Like, error) {
	like := db.Like{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		IsLike:     isLike,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "from_user_id"}, {Name: "to_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_like", "updated_at"}),
		}).
		Create(&like).Error
	if err != nil {
		return db.Like{}, err
	}

	// re-read so callers see DB-assigned timestamps after a conflict
	err = r.db.WithContext(ctx).
		First(&like, "from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).Error
	return like, err
}

// HasLiked checks whether from has a positive swipe on to.
//
// Used for mutual-like detection: the reverse edge with is_like = true
// is what turns a new like into a match.
func (r *LikeRepository) HasLiked(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("from_user_id = ? AND to_user_id = ? AND is_like = ?", fromUserID, toUserID, true).
		Count(&count).Error
	return count > 0, err
}
