package gift_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sparkdate/spark/internal/app"
	"github.com/sparkdate/spark/internal/cache"
	"github.com/sparkdate/spark/internal/config"
	"github.com/sparkdate/spark/internal/db"
	svcErr "github.com/sparkdate/spark/internal/errors"
	"github.com/sparkdate/spark/internal/service/gift"
)

func setupService(t *testing.T) *gift.Service {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(&db.Gift{}, &db.Balance{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(dbase, redisCache, logger)
	return gift.NewService(appCtx)
}

func TestSendGiftCreditsRecipient(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	// a rose from a1 to b2, no prior balance row
	g, err := svc.SendGift(ctx, "a1", "b2", "rose", nil)
	require.NoError(t, err)
	assert.Equal(t, "rose", g.GiftType)
	assert.InDelta(t, 5.00, g.Value, 0.001)

	view, err := svc.Balance(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, gift.BalanceView{Amount: "5.00", TotalEarned: "5.00"}, view)
}

func TestInvalidGiftTypeRejectedBeforeMutation(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, err := svc.SendGift(ctx, "a1", "b2", "yacht", nil)
	assert.True(t, errors.Is(err, svcErr.ErrValidation))

	// nothing was written
	view, err := svc.Balance(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, gift.BalanceView{Amount: "0.00", TotalEarned: "0.00"}, view)
}

func TestGiftsAccumulate(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	// coffee 2.50 + chocolate 7.50 + diamond 15.00 + champagne 25.00
	for _, giftType := range []string{"coffee", "chocolate", "diamond", "champagne"} {
		_, err := svc.SendGift(ctx, "a1", "b2", giftType, nil)
		require.NoError(t, err)
	}

	view, err := svc.Balance(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, gift.BalanceView{Amount: "50.00", TotalEarned: "50.00"}, view)
}

func TestConcurrentGiftsLoseNoCredits(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	// 10 simultaneous roses to a recipient with no prior balance row:
	// every credit must land, including the row-seeding first one
	const senders = 10

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.SendGift(ctx, fmt.Sprintf("sender%d", n), "b2", "rose", nil)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	view, err := svc.Balance(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, gift.BalanceView{Amount: "50.00", TotalEarned: "50.00"}, view)
}

func TestBalanceDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	view, err := svc.Balance(ctx, "never-credited")
	require.NoError(t, err)
	assert.Equal(t, gift.BalanceView{Amount: "0.00", TotalEarned: "0.00"}, view)
}

func TestSelfGiftRejected(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, err := svc.SendGift(ctx, "a1", "a1", "rose", nil)
	assert.True(t, errors.Is(err, svcErr.ErrValidation))
}

func TestBalanceCacheInvalidatedOnGift(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	// warm the cache with the zero balance
	view, err := svc.Balance(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, "0.00", view.Amount)

	// sending a gift must evict the stale entry
	_, err = svc.SendGift(ctx, "a1", "b2", "surprise", nil)
	require.NoError(t, err)

	view, err = svc.Balance(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, gift.BalanceView{Amount: "10.00", TotalEarned: "10.00"}, view)
}

func TestGiftLinksMessage(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	msgID := uint64(7)
	g, err := svc.SendGift(ctx, "a1", "b2", "superlike", &msgID)
	require.NoError(t, err)
	require.NotNil(t, g.MessageID)
	assert.Equal(t, msgID, *g.MessageID)
}
