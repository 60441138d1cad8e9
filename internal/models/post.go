package models

import (
	"time"

	"gorm.io/gorm"
)

// LikeState is the resulting state of a like toggle.
type LikeState string

const (
	// LikeStateLiked indicates the toggle added the user to the liker set.
	LikeStateLiked LikeState = "liked"
	// LikeStateDisliked indicates the toggle removed the user from the liker set.
	LikeStateDisliked LikeState = "disliked"
)

// Post represents an image post in the Snapgram application.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Caption  string `json:"caption"`
	ImageURL string `gorm:"not null" json:"image_url"`
	// UserID is the author; immutable after creation.
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`
	Rating int  `gorm:"default:1" json:"rating"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like represents a user's membership in a post's liker set.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
