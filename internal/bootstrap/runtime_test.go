package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/cache"
	"github.com/jamiebhpark/MentalHealthApp/internal/config"
	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/seed"
	"github.com/jamiebhpark/MentalHealthApp/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"memory", &config.Config{StoreDriver: config.StoreMemory}},
		{"sqlite", &config.Config{StoreDriver: config.StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "docs.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := OpenStore(ctx, tt.cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close(ctx) })

			id, err := store.CreateDocument(ctx, "posts", docstore.Fields{"message": "hi"})
			require.NoError(t, err)
			fields, err := store.GetDocument(ctx, "posts", id)
			require.NoError(t, err)
			assert.Equal(t, "hi", fields["message"])
			assert.NoError(t, store.Ping(ctx))
		})
	}

	_, err := OpenStore(ctx, &config.Config{StoreDriver: "cassandra"})
	assert.Error(t, err)
}

func TestServiceOptions(t *testing.T) {
	opts := ServiceOptions(&config.Config{
		StoreRetryMaxAttempts: 4,
		StoreRetryInitialMS:   25,
		FeatureFlags:          "gamification=on",
		XPPerRecord:           10,
		XPPerPost:             20,
	})

	assert.Equal(t, service.RetryPolicy{MaxAttempts: 4, Initial: 25 * time.Millisecond}, opts.Retry)
	assert.True(t, opts.Flags.Enabled("gamification", "anyone"))
	assert.Equal(t, 10, opts.XPPerRecord)
	assert.Equal(t, 20, opts.XPPerPost)
}

func TestInitRuntime_SeedsMemoryStore(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StoreDriver:           config.StoreMemory,
		StoreRetryMaxAttempts: 1,
		FeedCacheTTLSeconds:   12,
		SeedDemo:              true,
	}

	rt, err := InitRuntime(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	assert.Nil(t, rt.Redis)
	assert.Equal(t, 12*time.Second, cache.FeedTTL)

	data := service.NewDataService(rt.Store, ServiceOptions(cfg))
	assert.Len(t, data.FetchPosts(ctx), seed.DefaultOptions.NumPosts)
}
