package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const FeedKey = "posts:feed"

// FeedTTL bounds how stale the public feed can get if an invalidation is lost.
var FeedTTL = 30 * time.Second

func versionKey(key string) string {
	return key + ":version"
}

// Invalidate drops key and bumps its version so in-flight Aside fetches do not repopulate it.
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	_, _ = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.Incr(ctx, versionKey(key))
		return nil
	})
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedKey)
}
