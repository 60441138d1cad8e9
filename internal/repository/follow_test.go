package repository

import (
	"context"
	"testing"

	"snapgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	users := createTestUsers(t, db, "dana", "eli", "finn")
	dana, eli, finn := users[0], users[1], users[2]

	t.Run("InsertIsIdempotentPerEdge", func(t *testing.T) {
		inserted, err := repo.Insert(ctx, dana.ID, eli.ID)
		require.NoError(t, err)
		assert.True(t, inserted)

		// A second insert of the same edge finds the row already there.
		inserted, err = repo.Insert(ctx, dana.ID, eli.ID)
		require.NoError(t, err)
		assert.False(t, inserted)

		var count int64
		db.Model(&models.Follow{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("EdgeIsDirected", func(t *testing.T) {
		following, err := repo.IsFollowing(ctx, dana.ID, eli.ID)
		require.NoError(t, err)
		assert.True(t, following)

		reverse, err := repo.IsFollowing(ctx, eli.ID, dana.ID)
		require.NoError(t, err)
		assert.False(t, reverse)
	})

	t.Run("FollowerAndFollowingViewsAgree", func(t *testing.T) {
		_, err := repo.Insert(ctx, finn.ID, eli.ID)
		require.NoError(t, err)

		followers, err := repo.GetFollowers(ctx, eli.ID)
		require.NoError(t, err)
		followerIDs := make([]uint, 0, len(followers))
		for _, u := range followers {
			followerIDs = append(followerIDs, u.ID)
		}
		assert.ElementsMatch(t, []uint{dana.ID, finn.ID}, followerIDs)

		following, err := repo.GetFollowing(ctx, dana.ID)
		require.NoError(t, err)
		require.Len(t, following, 1)
		assert.Equal(t, eli.ID, following[0].ID)
	})

	t.Run("RemoveReportsWhetherEdgeExisted", func(t *testing.T) {
		removed, err := repo.Remove(ctx, dana.ID, eli.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Remove(ctx, dana.ID, eli.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		following, err := repo.IsFollowing(ctx, dana.ID, eli.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})
}
