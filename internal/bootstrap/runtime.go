// Package bootstrap opens the runtime dependencies (document store, Redis) shared by the
// server and the seeder commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/cache"
	"github.com/jamiebhpark/MentalHealthApp/internal/config"
	"github.com/jamiebhpark/MentalHealthApp/internal/database"
	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/featureflags"
	"github.com/jamiebhpark/MentalHealthApp/internal/middleware"
	"github.com/jamiebhpark/MentalHealthApp/internal/seed"
	"github.com/jamiebhpark/MentalHealthApp/internal/service"

	"github.com/redis/go-redis/v9"
)

// Collections that get a (parent, timestamp desc) index on Mongo.
var timestampIndexed = []string{"emotions", "posts"}

// Runtime holds initialized dependencies.
type Runtime struct {
	Store docstore.Store
	Redis *redis.Client
}

// InitRuntime opens the configured store and Redis and seeds demo data when
// SEED_DEMO is set.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store initialization failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	if cfg.FeedCacheTTLSeconds > 0 {
		cache.FeedTTL = time.Duration(cfg.FeedCacheTTLSeconds) * time.Second
	}

	rt := &Runtime{Store: store, Redis: cache.GetClient()}

	if cfg.SeedDemo {
		if err := SeedDemo(ctx, cfg, store); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return rt, nil
}

// OpenStore opens the document store selected by STORE_DRIVER, instrumented with
// metrics and tracing.
func OpenStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	var store docstore.Store

	switch cfg.StoreDriver {
	case config.StoreMemory:
		store = docstore.NewMemoryStore()

	case config.StoreMongo:
		ms, err := docstore.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		for _, coll := range timestampIndexed {
			if err := ms.EnsureIndexes(ctx, coll, "timestamp"); err != nil {
				middleware.Logger.Warn("failed to ensure mongo index",
					slog.String("collection", coll), slog.String("error", err.Error()))
			}
		}
		store = ms

	case config.StorePostgres, config.StoreSQLite:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		ss, err := docstore.NewSQLStore(db)
		if err != nil {
			return nil, err
		}
		store = ss

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	middleware.Logger.Info("document store ready", slog.String("driver", cfg.StoreDriver))
	return docstore.Instrument(store, cfg.StoreDriver), nil
}

// ServiceOptions maps configuration onto the data service options.
func ServiceOptions(cfg *config.Config) service.Options {
	return service.Options{
		Retry: service.RetryPolicy{
			MaxAttempts: cfg.StoreRetryMaxAttempts,
			Initial:     time.Duration(cfg.StoreRetryInitialMS) * time.Millisecond,
		},
		Flags:       featureflags.NewManager(cfg.FeatureFlags),
		XPPerRecord: cfg.XPPerRecord,
		XPPerPost:   cfg.XPPerPost,
	}
}

// SeedDemo writes the SEED_FIXTURE data set, or generated data when no fixture is set.
func SeedDemo(ctx context.Context, cfg *config.Config, store docstore.Store) error {
	s := seed.NewSeeder(store, service.NewDataService(store, ServiceOptions(cfg)))

	var (
		report seed.Report
		err    error
	)
	if cfg.SeedFixture != "" {
		fx, loadErr := seed.LoadFixture(cfg.SeedFixture)
		if loadErr != nil {
			return loadErr
		}
		report, err = s.ApplyFixture(ctx, fx)
	} else {
		opts := seed.DefaultOptions
		opts.XPPerRecord = cfg.XPPerRecord
		report, err = s.Seed(ctx, opts)
	}
	if err != nil {
		return err
	}

	middleware.Logger.Info("demo data ready",
		slog.Int("users", len(report.Users)),
		slog.Int("records", report.Records),
		slog.Int("posts", report.Posts),
	)
	return nil
}

// Close releases the store and the Redis client.
func (rt *Runtime) Close(ctx context.Context) error {
	var firstErr error
	if rt.Store != nil {
		if err := rt.Store.Close(ctx); err != nil {
			firstErr = err
		}
	}
	if err := cache.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
