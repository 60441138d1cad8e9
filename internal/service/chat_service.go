package service

import (
	"context"
	"strings"
	"time"

	"snapgram/internal/models"
	"snapgram/internal/observability"
	"snapgram/internal/repository"
)

const maxMessageLength = 4000

// ChatService handles direct-message business logic. Each unordered pair
// of users shares exactly one conversation, created lazily on first
// contact from either side.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// NewChatService creates a new chat service
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo}
}

// FindOrCreateConversation returns the conversation between the two
// users, creating it if this is their first contact. The argument order
// does not matter; both orders resolve to the same conversation.
func (s *ChatService) FindOrCreateConversation(ctx context.Context, userID, peerID uint) (*models.Conversation, error) {
	if userID == peerID {
		return nil, models.NewValidationError("You cannot start a conversation with yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, peerID); err != nil {
		return nil, err
	}
	return s.chatRepo.FindOrCreateConversation(ctx, userID, peerID)
}

// SendMessage appends a message from senderID to its conversation with
// peerID, creating the conversation on first contact.
func (s *ChatService) SendMessage(ctx context.Context, senderID, peerID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, models.NewValidationError("Message is too long")
	}

	conv, err := s.FindOrCreateConversation(ctx, senderID, peerID)
	if err != nil {
		return nil, err
	}

	msg, err := s.chatRepo.AppendMessage(ctx, conv.ID, senderID, content)
	if err != nil {
		return nil, err
	}
	observability.MessagesAppended.Inc()
	return msg, nil
}

// SendToConversation appends a message to an existing conversation by id.
// The sender must be a participant.
func (s *ChatService) SendToConversation(ctx context.Context, senderID, convID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, models.NewValidationError("Message is too long")
	}

	msg, err := s.chatRepo.AppendMessage(ctx, convID, senderID, content)
	if err != nil {
		return nil, err
	}
	observability.MessagesAppended.Inc()
	return msg, nil
}

// GetMessages returns a conversation's messages in send order. Only
// participants may read. A non-nil since returns messages strictly after
// that instant.
func (s *ChatService) GetMessages(ctx context.Context, userID, convID uint, since *time.Time) ([]*models.Message, error) {
	conv, err := s.chatRepo.GetConversation(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}
	return s.chatRepo.GetMessages(ctx, convID, since)
}

// GetMessagesWithUser returns the message history between userID and
// peerID, resolving (or creating) their conversation first.
func (s *ChatService) GetMessagesWithUser(ctx context.Context, userID, peerID uint, since *time.Time) ([]*models.Message, error) {
	conv, err := s.FindOrCreateConversation(ctx, userID, peerID)
	if err != nil {
		return nil, err
	}
	return s.chatRepo.GetMessages(ctx, conv.ID, since)
}

// ListConversations returns the user's conversations, most recently
// active first.
func (s *ChatService) ListConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	return s.chatRepo.GetUserConversations(ctx, userID)
}
