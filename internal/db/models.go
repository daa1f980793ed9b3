package db

import (
	"time"
)

// User table. Identity comes from the external auth layer, so IDs are
// opaque strings rather than auto-increment integers.
type User struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	Email           string    `gorm:"uniqueIndex;size:128" json:"email"`
	FirstName       string    `gorm:"size:64" json:"firstName"`
	LastName        string    `gorm:"size:64" json:"lastName"`
	PasswordHash    string    `gorm:"size:255" json:"-"`
	ProfileImageURL string    `gorm:"size:255" json:"profileImageUrl"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Like represents a directed swipe decision from one user toward another.
//
// Composite PK: (FromUserID, ToUserID)
//   - Ensures a single row per ordered pair (overwrite guarantee):
//     a later swipe updates is_like in place, never appends.
//
// Fields:
//   - FromUserID: the user swiping.
//   - ToUserID: the user being liked/passed.
//   - IsLike: true for like, false for pass.
type Like struct {
	FromUserID string    `gorm:"primaryKey;size:64;index:idx_like_to_from,priority:2" json:"fromUserId"`
	ToUserID   string    `gorm:"primaryKey;size:64;index:idx_like_to_from,priority:1" json:"toUserId"`
	IsLike     bool      `gorm:"not null" json:"isLike"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Match is the mutual relationship materialized once both directions of
// Like are positive. The pair is canonical: User1ID is always the
// lexicographically smaller identifier, and the unique composite index
// guarantees at most one row per unordered pair regardless of which
// side's mutual-like detection wins the insert race.
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	User1ID   string    `gorm:"size:64;not null;uniqueIndex:idx_match_pair,priority:1;index:idx_match_user1" json:"user1Id"`
	User2ID   string    `gorm:"size:64;not null;uniqueIndex:idx_match_pair,priority:2;index:idx_match_user2" json:"user2Id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Message is append-only chat content within a match, ordered by ID
// (assigned at insert) within the match.
type Message struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID     uint64    `gorm:"not null;index:idx_message_match" json:"matchId"`
	SenderID    string    `gorm:"size:64;not null" json:"senderId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	MessageType string    `gorm:"size:16;default:text" json:"messageType"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Gift is an append-only value transfer. Exactly one balance credit to
// ToUserID is applied per row, immediately after insertion.
type Gift struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FromUserID string    `gorm:"size:64;not null;index:idx_gift_from" json:"fromUserId"`
	ToUserID   string    `gorm:"size:64;not null;index:idx_gift_to" json:"toUserId"`
	GiftType   string    `gorm:"size:32;not null" json:"giftType"`
	Value      float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	MessageID  *uint64   `json:"messageId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Balance holds per-user running totals. TotalEarned only grows and
// equals the sum of all gift values ever received; Amount is reduced
// only by withdrawal, which lives outside this service. Both fields are
// mutated exclusively through the atomic upsert-increment in the
// repository, never read-then-written.
type Balance struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex:idx_balance_user" json:"userId"`
	Amount      float64   `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	TotalEarned float64   `gorm:"type:decimal(10,2);not null;default:0" json:"totalEarned"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
