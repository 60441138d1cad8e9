package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation represents the single direct-message thread between an
// unordered pair of users. The pair is normalized before insert so that
// (A,B) and (B,A) map to the same row, and the unique index on the
// normalized pair guarantees at most one conversation per pair.
type Conversation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ParticipantAID uint      `gorm:"not null;index;uniqueIndex:idx_conversation_pair" json:"participant_a_id"`
	ParticipantBID uint      `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"participant_b_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	ParticipantA User      `gorm:"foreignKey:ParticipantAID" json:"participant_a,omitempty"`
	ParticipantB User      `gorm:"foreignKey:ParticipantBID" json:"participant_b,omitempty"`
	Messages     []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// TableName specifies the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate ensures ParticipantAID < ParticipantBID for consistent ordering
func (c *Conversation) BeforeCreate(_ *gorm.DB) error {
	if c.ParticipantAID == c.ParticipantBID {
		return NewValidationError("A conversation requires two distinct participants")
	}
	if c.ParticipantAID > c.ParticipantBID {
		c.ParticipantAID, c.ParticipantBID = c.ParticipantBID, c.ParticipantAID
	}
	return nil
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID uint) bool {
	return userID == c.ParticipantAID || userID == c.ParticipantBID
}

// OtherParticipant returns the participant opposite userID.
// ok is false when userID is not a participant.
func (c *Conversation) OtherParticipant(userID uint) (uint, bool) {
	switch userID {
	case c.ParticipantAID:
		return c.ParticipantBID, true
	case c.ParticipantBID:
		return c.ParticipantAID, true
	default:
		return 0, false
	}
}

// Message represents a direct message inside a conversation. Messages are
// immutable; CreatedAt is non-decreasing within a conversation, with ties
// broken by insertion order (id).
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index:idx_messages_conversation_created,priority:1" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID     uint      `gorm:"not null" json:"receiver_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `gorm:"index:idx_messages_conversation_created,priority:2" json:"created_at"`

	// Relationships
	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
