package service

import (
	"context"

	"snapgram/internal/models"
	"snapgram/internal/observability"
	"snapgram/internal/repository"
)

// FollowService handles the follow graph. Toggle semantics: each call
// flips the edge, so an even number of toggles leaves the relationship
// where it started.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new follow service
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// ToggleFollow flips the follow edge from followerID to followeeID and
// reports the resulting state. When a concurrent toggle wins both races
// (the insert finds an existing row and the remove finds none), the call
// fails with a conflict and the client may retry.
func (s *FollowService) ToggleFollow(ctx context.Context, followerID, followeeID uint) (models.FollowState, error) {
	if followerID == followeeID {
		return "", models.NewValidationError("You cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return "", err
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return "", err
	}

	inserted, err := s.followRepo.Insert(ctx, followerID, followeeID)
	if err != nil {
		return "", err
	}
	if inserted {
		return models.FollowStateFollowed, nil
	}

	removed, err := s.followRepo.Remove(ctx, followerID, followeeID)
	if err != nil {
		return "", err
	}
	if removed {
		return models.FollowStateUnfollowed, nil
	}

	observability.ToggleConflicts.WithLabelValues("follow").Inc()
	return "", models.NewConflictError("Follow state changed concurrently, please retry")
}

// IsFollowing reports whether followerID currently follows followeeID.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, nil
	}
	return s.followRepo.IsFollowing(ctx, followerID, followeeID)
}

// GetFollowers returns the users following userID, most recent first.
func (s *FollowService) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, userID)
}

// GetFollowing returns the users userID follows, most recent first.
func (s *FollowService) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, userID)
}
