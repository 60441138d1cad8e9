package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes how much data to generate.
type Profile struct {
	Users                   int     `yaml:"users"`
	Posts                   int     `yaml:"posts"`
	FollowRatio             float64 `yaml:"follow_ratio"`
	LikeRatio               float64 `yaml:"like_ratio"`
	CommentsPerPost         int     `yaml:"comments_per_post"`
	Conversations           int     `yaml:"conversations"`
	MessagesPerConversation int     `yaml:"messages_per_conversation"`
}

// DefaultProfile is a small data set suitable for local development.
func DefaultProfile() Profile {
	return Profile{
		Users:                   50,
		Posts:                   200,
		FollowRatio:             0.1,
		LikeRatio:               0.2,
		CommentsPerPost:         4,
		Conversations:           30,
		MessagesPerConversation: 12,
	}
}

// LoadProfile reads a YAML seed profile, filling unset fields from the
// defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read seed profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse seed profile: %w", err)
	}

	if p.Users < 2 {
		return p, fmt.Errorf("seed profile needs at least 2 users, got %d", p.Users)
	}
	return p, nil
}
