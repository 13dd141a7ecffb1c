package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-portfolio/services/studio/internal/entity"

	"github.com/redis/go-redis/v9"
)

const viewWindow = 24 * time.Hour

// ViewTracker decides whether a read should bump the view counter.
type ViewTracker interface {
	ShouldCount(ctx context.Context, kind entity.MediaKind, mediaID, viewerKey string) bool
}

type redisViewTracker struct {
	client *redis.Client
	window time.Duration
}

// NewViewTracker counts one view per viewer per record per day. Without a
// Redis client every read counts.
func NewViewTracker(client *redis.Client) ViewTracker {
	return &redisViewTracker{client: client, window: viewWindow}
}

func (t *redisViewTracker) ShouldCount(ctx context.Context, kind entity.MediaKind, mediaID, viewerKey string) bool {
	if t.client == nil || viewerKey == "" {
		return true
	}
	key := fmt.Sprintf("views:%s:%s:%s", kind, mediaID, viewerKey)
	first, err := t.client.SetNX(ctx, key, 1, t.window).Result()
	if err != nil {
		return true
	}
	return first
}
