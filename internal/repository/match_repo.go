package repository

import (
	"context"

	"github.com/sparkdate/spark/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository provides data access methods for the Match model.
// All methods take the canonical pair (user1 < user2); callers are
// responsible for ordering, see swipe.CanonicalPair.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// CreateIfAbsent performs the idempotent match insert for a canonical pair.
//
// Behavior:
//   - Inserts the row, relying on the unique (user1_id, user2_id) index.
//   - On conflict the insert is a no-op, and the follow-up read returns
//     the row that won, so N concurrent callers racing on the same
//     mutual like all observe the one surviving match.
//
// Example:
//
//	repo.CreateIfAbsent(ctx, "a1", "b2")
func (r *MatchRepository) CreateIfAbsent(ctx context.Context, user1ID, user2ID string) (db.Match, error) {
	match := db.Match{User1ID: user1ID, User2ID: user2ID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).
		Create(&match).Error
	if err != nil {
		return db.Match{}, err
	}

	return r.ForPair(ctx, user1ID, user2ID)
}

// ForPair returns the match for a canonical pair, or gorm.ErrRecordNotFound.
func (r *MatchRepository) ForPair(ctx context.Context, user1ID, user2ID string) (db.Match, error) {
	var match db.Match
	err := r.db.WithContext(ctx).
		First(&match, "user1_id = ? AND user2_id = ?", user1ID, user2ID).Error
	return match, err
}

// ByID returns a single match by primary key.
func (r *MatchRepository) ByID(ctx context.Context, matchID uint64) (db.Match, error) {
	var match db.Match
	err := r.db.WithContext(ctx).First(&match, matchID).Error
	return match, err
}

// ForUser returns all matches the user participates in, newest first.
func (r *MatchRepository) ForUser(ctx context.Context, userID string) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error
	return matches, err
}
