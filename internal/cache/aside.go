package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside reads key into dest. On a miss it calls fetch, which must fill dest, and stores the
// result for ttl. Cache failures fall through to fetch; only fetch errors are returned.
// The result is not stored if key was invalidated while fetch ran.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	ctx, span := observability.GetTraceLayer().TraceRedisOperation(ctx, "aside")
	defer span.End()

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			observability.FeedCacheLookups.WithLabelValues("hit").Inc()
			return nil
		}
	case !errors.Is(err, redis.Nil):
		observability.GlobalLogger.WarnContext(ctx, "cache read failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
	observability.FeedCacheLookups.WithLabelValues("miss").Inc()

	version, versionErr := readVersion(ctx, client, key)

	if err := fetch(); err != nil {
		return err
	}
	if versionErr != nil {
		return nil
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := storeIfUnchanged(ctx, key, version, payload, ttl); err != nil {
		observability.GlobalLogger.WarnContext(ctx, "cache write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

// storeIfUnchanged writes payload under key only while key's version still equals version.
func storeIfUnchanged(ctx context.Context, key, version string, payload []byte, ttl time.Duration) error {
	err := client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != version {
			observability.FeedCacheLookups.WithLabelValues("stale").Inc()
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		return err
	}, versionKey(key))
	if errors.Is(err, redis.TxFailedErr) {
		observability.FeedCacheLookups.WithLabelValues("stale").Inc()
		return nil
	}
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, c getter, key string) (string, error) {
	v, err := c.Get(ctx, versionKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}
