package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"snapgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUsers(t *testing.T, db *gorm.DB, usernames ...string) []*models.User {
	users := make([]*models.User, 0, len(usernames))
	for _, name := range usernames {
		u := &models.User{Username: name, Email: name + "@example.com", Password: "x"}
		require.NoError(t, db.Create(u).Error)
		users = append(users, u)
	}
	return users
}

func TestChatRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	users := createTestUsers(t, db, "alice", "bob", "carol")
	alice, bob, carol := users[0], users[1], users[2]

	t.Run("FindOrCreateIsOrderIndependent", func(t *testing.T) {
		first, err := repo.FindOrCreateConversation(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.NotZero(t, first.ID)

		second, err := repo.FindOrCreateConversation(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		db.Model(&models.Conversation{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("SelfConversationRejected", func(t *testing.T) {
		_, err := repo.FindOrCreateConversation(ctx, alice.ID, alice.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("AppendMessagePreservesSendOrder", func(t *testing.T) {
		conv, err := repo.FindOrCreateConversation(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		first, err := repo.AppendMessage(ctx, conv.ID, alice.ID, "hi")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, first.ReceiverID)

		second, err := repo.AppendMessage(ctx, conv.ID, bob.ID, "hello")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, second.ReceiverID)

		msgs, err := repo.GetMessages(ctx, conv.ID, nil)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "hi", msgs[0].Content)
		assert.Equal(t, "hello", msgs[1].Content)
		assert.False(t, msgs[1].CreatedAt.Before(msgs[0].CreatedAt))
	})

	t.Run("AppendMessageNonParticipant", func(t *testing.T) {
		conv, err := repo.FindOrCreateConversation(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		_, err = repo.AppendMessage(ctx, conv.ID, carol.ID, "let me in")
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("AppendMessageUnknownConversation", func(t *testing.T) {
		_, err := repo.AppendMessage(ctx, 9999, alice.ID, "anyone there")
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("GetMessagesSinceIsExclusive", func(t *testing.T) {
		conv, err := repo.FindOrCreateConversation(ctx, alice.ID, carol.ID)
		require.NoError(t, err)

		older, err := repo.AppendMessage(ctx, conv.ID, alice.ID, "old news")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		_, err = repo.AppendMessage(ctx, conv.ID, carol.ID, "fresh")
		require.NoError(t, err)

		msgs, err := repo.GetMessages(ctx, conv.ID, &older.CreatedAt)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "fresh", msgs[0].Content)
	})

	t.Run("GetUserConversations", func(t *testing.T) {
		convs, err := repo.GetUserConversations(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, convs, 2)
	})
}
