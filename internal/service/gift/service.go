package gift

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/sparkdate/spark/internal/app"
	"github.com/sparkdate/spark/internal/db"
	svcErr "github.com/sparkdate/spark/internal/errors"
	"github.com/sparkdate/spark/internal/repository"

	"gorm.io/gorm"
)

// prices is the fixed gift price table. An unknown type is rejected
// before anything is written.
var prices = map[string]float64{
	"coffee":    2.50,
	"rose":      5.00,
	"chocolate": 7.50,
	"superlike": 7.50,
	"surprise":  10.00,
	"diamond":   15.00,
	"champagne": 25.00,
}

// Service handles gift sending and balance accounting.
type Service struct {
	appCtx   *app.AppContext
	giftRepo *repository.GiftRepository
}

// NewService creates the gift service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		giftRepo: repository.NewGiftRepository(appCtx.DB),
	}
}

// BalanceView is the API shape for balances: 2-dp decimal strings.
type BalanceView struct {
	Amount      string `json:"amount"`
	TotalEarned string `json:"totalEarned"`
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// SendGift validates the gift type, persists the gift and credits the
// recipient's balance.
//
// Behavior:
//   - Unknown gift types fail before any state mutation.
//   - The credit is a single atomic upsert-increment, so concurrent
//     gifts to the same recipient cannot lose updates; the first credit
//     for a user creates the balance row seeded with the gift's value.
//   - Exactly one credit is applied per gift.
//
// Example:
//
//	svc.SendGift(ctx, "a1", "b2", "rose", nil)
func (s *Service) SendGift(ctx context.Context, fromUserID, toUserID, giftType string, messageID *uint64) (db.Gift, error) {
	s.appCtx.Logger.Debug("SendGift called", "from", fromUserID, "to", toUserID, "type", giftType)

	if fromUserID == "" || toUserID == "" {
		return db.Gift{}, svcErr.Validation("fromUserId and toUserId are required")
	}
	if fromUserID == toUserID {
		return db.Gift{}, svcErr.Validation("cannot send a gift to yourself")
	}

	value, ok := prices[giftType]
	if !ok {
		return db.Gift{}, svcErr.Validation("invalid gift type %q", giftType)
	}

	gift, err := s.giftRepo.AppendGift(ctx, fromUserID, toUserID, giftType, value, messageID)
	if err != nil {
		return db.Gift{}, svcErr.Storage(err)
	}

	if _, err := s.giftRepo.IncrementBalance(ctx, toUserID, value); err != nil {
		s.appCtx.Logger.Error("balance credit failed", "gift_id", gift.ID, "err", err)
		return db.Gift{}, svcErr.Storage(err)
	}

	// cached balance is stale now
	_ = s.appCtx.RedisCache.Del(ctx, s.appCtx.RedisCache.KeyForBalance(toUserID))

	s.appCtx.Logger.Info("gift sent", "gift_id", gift.ID, "type", giftType, "value", value)
	return gift, nil
}

// Balance returns the user's balance, zero-valued when the user was
// never credited. Cache-first strategy:
//  1. Attempts to read from Redis (balance:userID).
//  2. On cache miss, falls back to the DB.
//  3. On DB fetch, updates Redis with a 1h TTL.
func (s *Service) Balance(ctx context.Context, userID string) (BalanceView, error) {
	if userID == "" {
		return BalanceView{}, svcErr.Validation("userId is required")
	}

	key := s.appCtx.RedisCache.KeyForBalance(userID)

	if cached, _ := s.appCtx.RedisCache.Get(ctx, key); cached != "" {
		var view BalanceView
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			return view, nil
		}
	}

	balance, err := s.giftRepo.GetBalance(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return BalanceView{}, svcErr.Storage(err)
	}

	view := BalanceView{
		Amount:      formatAmount(balance.Amount),
		TotalEarned: formatAmount(balance.TotalEarned),
	}

	if encoded, err := json.Marshal(view); err == nil {
		_ = s.appCtx.RedisCache.Set(ctx, key, string(encoded), time.Hour)
	}

	return view, nil
}
