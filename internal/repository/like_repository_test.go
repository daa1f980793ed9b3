package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/sparkdate/spark/internal/db"
	"github.com/sparkdate/spark/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(&db.Like{}, &db.Match{}, &db.Message{}, &db.Gift{}, &db.Balance{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestUpsertLikeOverwrites(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewLikeRepository(dbase)

	// like
	like, err := repo.UpsertLike(ctx, "a1", "b2", true)
	assert.NoError(t, err)
	assert.True(t, like.IsLike)

	// overwrite with pass
	like, err = repo.UpsertLike(ctx, "a1", "b2", false)
	assert.NoError(t, err)
	assert.False(t, like.IsLike)

	// and back to like; still a single row
	like, err = repo.UpsertLike(ctx, "a1", "b2", true)
	assert.NoError(t, err)
	assert.True(t, like.IsLike)

	var count int64
	dbase.Model(&db.Like{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestHasLiked(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewLikeRepository(dbase)

	_, _ = repo.UpsertLike(ctx, "a1", "b2", true)
	_, _ = repo.UpsertLike(ctx, "b2", "c3", false)

	liked, err := repo.HasLiked(ctx, "a1", "b2")
	assert.NoError(t, err)
	assert.True(t, liked)

	// pass is not a like
	liked, err = repo.HasLiked(ctx, "b2", "c3")
	assert.NoError(t, err)
	assert.False(t, liked)

	// direction matters
	liked, err = repo.HasLiked(ctx, "b2", "a1")
	assert.NoError(t, err)
	assert.False(t, liked)
}
