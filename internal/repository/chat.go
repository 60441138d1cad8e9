package repository

import (
	"context"
	"errors"
	"time"

	"snapgram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository defines the interface for conversation and message data
// operations. A conversation is keyed by its normalized participant pair;
// message appends run inside a per-conversation critical section (row lock
// on the conversation), so disjoint conversations never serialize against
// each other.
type ChatRepository interface {
	FindOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	GetConversationByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error)
	AppendMessage(ctx context.Context, convID, senderID uint, content string) (*models.Message, error)
	GetMessages(ctx context.Context, convID uint, since *time.Time) ([]*models.Message, error)
}

// chatRepository implements ChatRepository
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// normalizePair orders the two participant ids low-first, matching the
// normalization applied by Conversation.BeforeCreate.
func normalizePair(userA, userB uint) (uint, uint) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

// FindOrCreateConversation resolves the single conversation for the
// unordered pair, creating it on first contact. The conditional insert
// against the unique pair index makes concurrent first calls safe: exactly
// one row is created and the losing writer falls back to a lookup.
func (r *chatRepository) FindOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	a, b := normalizePair(userA, userB)

	conv := models.Conversation{ParticipantAID: a, ParticipantBID: b}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "participant_a_id"}, {Name: "participant_b_id"}},
			DoNothing: true,
		}).
		Create(&conv)
	if res.Error != nil {
		var appErr *models.AppError
		if errors.As(res.Error, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		return &conv, nil
	}

	// Lost the race (or the pair already existed): resolve by lookup.
	return r.GetConversationByPair(ctx, a, b)
}

func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Preload("ParticipantA").
		Preload("ParticipantB").
		First(&conv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *chatRepository) GetConversationByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	a, b := normalizePair(userA, userB)

	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a_id = ? AND participant_b_id = ?", a, b).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", 0)
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *chatRepository) GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a_id = ? OR participant_b_id = ?", userID, userID).
		Preload("ParticipantA").
		Preload("ParticipantB").
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return conversations, nil
}

// AppendMessage commits a message to the conversation's log. The
// conversation row is locked for the duration of the transaction, which
// serializes appends per conversation and lets the timestamp be clamped
// against the previous message: CreatedAt never decreases within a
// conversation, with ties broken by id.
func (r *chatRepository) AppendMessage(ctx context.Context, convID, senderID uint, content string) (*models.Message, error) {
	var msg *models.Message

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked := tx
		if tx.Dialector.Name() == "postgres" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var conv models.Conversation
		if err := locked.First(&conv, convID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Conversation", convID)
			}
			return err
		}

		receiverID, ok := conv.OtherParticipant(senderID)
		if !ok {
			return models.NewForbiddenError("You are not a participant in this conversation")
		}

		at := time.Now().UTC()
		var last models.Message
		err := tx.Where("conversation_id = ?", convID).
			Order("created_at DESC, id DESC").
			First(&last).Error
		switch {
		case err == nil:
			if at.Before(last.CreatedAt) {
				at = last.CreatedAt
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		m := &models.Message{
			ConversationID: convID,
			SenderID:       senderID,
			ReceiverID:     receiverID,
			Content:        content,
			CreatedAt:      at,
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Conversation{}).
			Where("id = ?", convID).
			Update("updated_at", at).Error; err != nil {
			return err
		}

		msg = m
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return msg, nil
}

// GetMessages returns the conversation's messages in ascending creation
// order. When since is set, only messages strictly after it are returned,
// so callers can resume with the last timestamp they saw as a cursor.
func (r *chatRepository) GetMessages(ctx context.Context, convID uint, since *time.Time) ([]*models.Message, error) {
	q := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Preload("Sender").
		Order("created_at ASC, id ASC")
	if since != nil {
		q = q.Where("created_at > ?", *since)
	}

	var messages []*models.Message
	if err := q.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
