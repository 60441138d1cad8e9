package service

import (
	"context"
	"errors"
	"testing"

	"snapgram/internal/models"
)

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(ctx context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
	}
}

func TestCreateCommentEmpty(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreateComment(context.Background(), 1, 2, content)
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("content %q: expected validation app error, got %#v", content, err)
		}
	}
}

func TestCreateCommentUnknownPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(ctx context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewCommentService(noopCommentRepo(), posts)
	_, err := svc.CreateComment(context.Background(), 1, 99, "nice shot")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestCreateCommentTrimsContent(t *testing.T) {
	var saved *models.Comment
	comments := noopCommentRepo()
	comments.createFn = func(ctx context.Context, c *models.Comment) error {
		c.ID = 10
		saved = c
		return nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	_, err := svc.CreateComment(context.Background(), 1, 2, "  great view  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || saved.Content != "great view" {
		t.Fatalf("expected trimmed content, got %#v", saved)
	}
}
