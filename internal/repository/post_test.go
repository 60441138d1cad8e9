package repository

import (
	"context"
	"errors"
	"testing"

	"snapgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	users := createTestUsers(t, db, "gwen", "hugo")
	gwen, hugo := users[0], users[1]

	t.Run("CreateAndGetWithCounts", func(t *testing.T) {
		post := &models.Post{Caption: "sunset", ImageURL: "/img/sunset.jpg", Rating: 4, UserID: gwen.ID}
		require.NoError(t, repo.Create(ctx, post))

		_, err := repo.Like(ctx, hugo.ID, post.ID)
		require.NoError(t, err)
		require.NoError(t, comments.Create(ctx, &models.Comment{Content: "wow", UserID: hugo.ID, PostID: post.ID}))

		fetched, err := repo.GetByID(ctx, post.ID, hugo.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, fetched.LikesCount)
		assert.Equal(t, 1, fetched.CommentsCount)
		assert.True(t, fetched.Liked)

		asGwen, err := repo.GetByID(ctx, post.ID, gwen.ID)
		require.NoError(t, err)
		assert.False(t, asGwen.Liked)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999, gwen.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("LikeToggleBooleans", func(t *testing.T) {
		post := &models.Post{Caption: "coffee", ImageURL: "/img/coffee.jpg", Rating: 5, UserID: gwen.ID}
		require.NoError(t, repo.Create(ctx, post))

		inserted, err := repo.Like(ctx, hugo.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = repo.Like(ctx, hugo.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, inserted)

		removed, err := repo.Unlike(ctx, hugo.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Unlike(ctx, hugo.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("CommentsKeepInsertionOrder", func(t *testing.T) {
		post := &models.Post{Caption: "trail", ImageURL: "/img/trail.jpg", Rating: 3, UserID: gwen.ID}
		require.NoError(t, repo.Create(ctx, post))

		for _, content := range []string{"first", "second", "third"} {
			require.NoError(t, comments.Create(ctx, &models.Comment{Content: content, UserID: hugo.ID, PostID: post.ID}))
		}

		list, err := comments.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "first", list[0].Content)
		assert.Equal(t, "third", list[2].Content)
	})

	t.Run("DeleteCascadeRemovesDependents", func(t *testing.T) {
		post := &models.Post{Caption: "temp", ImageURL: "/img/temp.jpg", Rating: 2, UserID: gwen.ID}
		require.NoError(t, repo.Create(ctx, post))
		_, err := repo.Like(ctx, hugo.ID, post.ID)
		require.NoError(t, err)
		require.NoError(t, comments.Create(ctx, &models.Comment{Content: "bye", UserID: hugo.ID, PostID: post.ID}))

		require.NoError(t, repo.DeleteCascade(ctx, post.ID))

		_, err = repo.GetByID(ctx, post.ID, gwen.ID)
		require.Error(t, err)

		var likeCount int64
		db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)
		assert.Zero(t, likeCount)

		remaining, err := comments.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}
