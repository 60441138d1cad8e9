package models

import "time"

// FollowState is the resulting state of a follow toggle.
type FollowState string

const (
	// FollowStateFollowed indicates the toggle established the relationship.
	FollowStateFollowed FollowState = "followed"
	// FollowStateUnfollowed indicates the toggle removed the relationship.
	FollowStateUnfollowed FollowState = "unfollowed"
)

// Follow represents a directed follow edge between two users.
// The combination of FollowerID and FolloweeID must be unique; both sides
// of the relationship (A.following and B.followers) are derived from this
// single row, so membership can never desynchronize.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
