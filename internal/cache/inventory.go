package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%s"
	UserStatsKeyPrefix = "user:%s:stats"
	FeedPageKeyPrefix  = "feed:%s:%d:%d"
)

const (
	UserTTL      = 5 * time.Minute
	UserStatsTTL = 1 * time.Minute
	FeedPageTTL  = 30 * time.Second
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserStatsKey(userID string) string {
	return fmt.Sprintf(UserStatsKeyPrefix, userID)
}

// FeedPageKey identifies one page of the feed as seen by a viewer. The viewer
// is part of the key because liked flags are viewer-specific.
func FeedPageKey(viewerID string, limit, offset int) string {
	return fmt.Sprintf(FeedPageKeyPrefix, viewerID, limit, offset)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UserStatsKey(userID))
}

// InvalidateFeed drops every cached feed page. Uses SCAN so a large keyspace
// does not block Redis.
func InvalidateFeed(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "feed:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
