package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	PostListKey       = "posts:recent"
	FollowerCountsKey = "user:%d:follow_counts"
)

const (
	UserTTL     = 5 * time.Minute
	PostTTL     = 30 * time.Minute
	PostListTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FollowCountsKey(userID uint) string {
	return fmt.Sprintf(FollowerCountsKey, userID)
}

// Aside implements the cache-aside pattern: read through the cache, fall
// back to fill on a miss and store the result. A disabled cache degrades to
// a plain fill; cache write failures are ignored (the store remains the
// source of truth).
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fill func() error) error {
	if client == nil {
		return fill()
	}

	if raw, err := client.Get(ctx, key).Bytes(); err == nil {
		if err := json.Unmarshal(raw, dest); err == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to fill.
		client.Del(ctx, key)
	}

	if err := fill(); err != nil {
		return err
	}

	if raw, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, raw, ttl)
	}
	return nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, FollowCountsKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostListKey)
}
