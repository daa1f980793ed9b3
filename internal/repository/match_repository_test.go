package repository_test

import (
	"context"
	"testing"

	"github.com/sparkdate/spark/internal/db"
	"github.com/sparkdate/spark/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateIfAbsentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	first, err := repo.CreateIfAbsent(ctx, "a1", "b2")
	require.NoError(t, err)

	// racing duplicate attempts all resolve to the surviving row
	for i := 0; i < 5; i++ {
		again, err := repo.CreateIfAbsent(ctx, "a1", "b2")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}

	var count int64
	dbase.Model(&db.Match{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestForPairAndByID(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	created, err := repo.CreateIfAbsent(ctx, "a1", "b2")
	require.NoError(t, err)

	byPair, err := repo.ForPair(ctx, "a1", "b2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byPair.ID)

	byID, err := repo.ByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a1", byID.User1ID)
	assert.Equal(t, "b2", byID.User2ID)

	_, err = repo.ForPair(ctx, "a1", "zz")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestForUser(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	_, err := repo.CreateIfAbsent(ctx, "a1", "b2")
	require.NoError(t, err)
	_, err = repo.CreateIfAbsent(ctx, "b2", "c3")
	require.NoError(t, err)

	matches, err := repo.ForUser(ctx, "b2")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.ForUser(ctx, "c3")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
