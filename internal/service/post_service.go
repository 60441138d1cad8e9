package service

import (
	"context"
	"strings"

	"snapgram/internal/models"
	"snapgram/internal/observability"
	"snapgram/internal/repository"
)

const maxCaptionLength = 2200

// PostService handles post business logic
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePost validates and persists a new post for userID.
func (s *PostService) CreatePost(ctx context.Context, userID uint, caption, imageURL string, rating int) (*models.Post, error) {
	caption = strings.TrimSpace(caption)
	if len(caption) > maxCaptionLength {
		return nil, models.NewValidationError("Caption is too long")
	}
	if strings.TrimSpace(imageURL) == "" {
		return nil, models.NewValidationError("Image is required")
	}
	if rating < 1 || rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	post := &models.Post{
		Caption:  caption,
		ImageURL: imageURL,
		Rating:   rating,
		UserID:   userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// GetPost returns a single post with counters computed for currentUserID.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// ListPosts returns the global feed, newest first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

// GetUserPosts returns a user's posts, newest first.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// ToggleLike flips userID's like on postID and reports the resulting
// state. Liking your own post is allowed. A toggle that loses both races
// to a concurrent toggle fails with a conflict.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (models.LikeState, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return "", err
	}

	inserted, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return "", err
	}
	if inserted {
		return models.LikeStateLiked, nil
	}

	removed, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return "", err
	}
	if removed {
		return models.LikeStateDisliked, nil
	}

	observability.ToggleConflicts.WithLabelValues("like").Inc()
	return "", models.NewConflictError("Like state changed concurrently, please retry")
}

// DeletePost removes a post and everything hanging off it. Only the
// author may delete; the comments and likes go with the post so no
// orphaned rows survive.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.DeleteCascade(ctx, postID)
}
