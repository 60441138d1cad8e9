package service

import (
	"context"
	"errors"
	"testing"

	"snapgram/internal/models"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getProfileFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	searchFn        func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.getProfileFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(ctx context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getProfileFn:    func(ctx context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		searchFn:        func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
	}
}

type followRepoStub struct {
	insertFn       func(context.Context, uint, uint) (bool, error)
	removeFn       func(context.Context, uint, uint) (bool, error)
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	getFollowersFn func(context.Context, uint) ([]models.User, error)
	getFollowingFn func(context.Context, uint) ([]models.User, error)
}

func (s *followRepoStub) Insert(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.insertFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Remove(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.removeFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFollowersFn(ctx, userID)
}
func (s *followRepoStub) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFollowingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		insertFn:       func(context.Context, uint, uint) (bool, error) { return true, nil },
		removeFn:       func(context.Context, uint, uint) (bool, error) { return false, nil },
		isFollowingFn:  func(context.Context, uint, uint) (bool, error) { return false, nil },
		getFollowersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getFollowingFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

func TestToggleFollowSelf(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())
	_, err := svc.ToggleFollow(context.Background(), 7, 7)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestToggleFollowUnknownFollowee(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(ctx context.Context, id uint) (*models.User, error) {
		if id == 2 {
			return nil, models.NewNotFoundError("User", id)
		}
		return &models.User{ID: id}, nil
	}

	svc := NewFollowService(noopFollowRepo(), users)
	_, err := svc.ToggleFollow(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestToggleFollowInsertWins(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())
	state, err := svc.ToggleFollow(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != models.FollowStateFollowed {
		t.Fatalf("expected followed, got %q", state)
	}
}

func TestToggleFollowRemoveWins(t *testing.T) {
	repo := noopFollowRepo()
	repo.insertFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	repo.removeFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := NewFollowService(repo, noopUserRepo())
	state, err := svc.ToggleFollow(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != models.FollowStateUnfollowed {
		t.Fatalf("expected unfollowed, got %q", state)
	}
}

func TestToggleFollowConflict(t *testing.T) {
	repo := noopFollowRepo()
	repo.insertFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	repo.removeFn = func(context.Context, uint, uint) (bool, error) { return false, nil }

	svc := NewFollowService(repo, noopUserRepo())
	_, err := svc.ToggleFollow(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

// Toggling an even number of times lands back where it started, odd
// flips it. The stateful stub mirrors how the unique index behaves.
func TestToggleFollowAlternates(t *testing.T) {
	following := false
	repo := noopFollowRepo()
	repo.insertFn = func(context.Context, uint, uint) (bool, error) {
		if following {
			return false, nil
		}
		following = true
		return true, nil
	}
	repo.removeFn = func(context.Context, uint, uint) (bool, error) {
		if !following {
			return false, nil
		}
		following = false
		return true, nil
	}

	svc := NewFollowService(repo, noopUserRepo())
	want := []models.FollowState{
		models.FollowStateFollowed,
		models.FollowStateUnfollowed,
		models.FollowStateFollowed,
		models.FollowStateUnfollowed,
	}
	for i, expected := range want {
		state, err := svc.ToggleFollow(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("toggle %d: unexpected error: %v", i, err)
		}
		if state != expected {
			t.Fatalf("toggle %d: expected %q, got %q", i, expected, state)
		}
	}
	if following {
		t.Fatal("expected to end unfollowed after an even number of toggles")
	}
}

func TestIsFollowingSelf(t *testing.T) {
	repo := noopFollowRepo()
	repo.isFollowingFn = func(context.Context, uint, uint) (bool, error) {
		t.Fatal("repository should not be consulted for self")
		return false, nil
	}

	svc := NewFollowService(repo, noopUserRepo())
	ok, err := svc.IsFollowing(context.Background(), 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("a user never follows themselves")
	}
}
