package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedEntry struct {
	ID    string `json:"id"`
	Likes int    `json:"likes"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = Close()
		mr.Close()
	})
	return mr
}

func TestAside_CachesFetchResult(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]feedEntry) func() error {
		return func() error {
			calls++
			*dest = []feedEntry{{ID: "p1", Likes: 2}}
			return nil
		}
	}

	var first []feedEntry
	require.NoError(t, Aside(ctx, FeedKey, &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(FeedKey))

	var second []feedEntry
	require.NoError(t, Aside(ctx, FeedKey, &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls, "second read served from cache")
	assert.Equal(t, first, second)

	mr.FastForward(2 * time.Minute)
	var third []feedEntry
	require.NoError(t, Aside(ctx, FeedKey, &third, time.Minute, fetch(&third)))
	assert.Equal(t, 2, calls, "expired entry refetched")
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)

	var dest []feedEntry
	err := Aside(context.Background(), FeedKey, &dest, time.Minute, func() error {
		return errors.New("store down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists(FeedKey))
}

func TestAside_CorruptEntryRefetches(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(FeedKey, "not json"))

	var dest []feedEntry
	err := Aside(context.Background(), FeedKey, &dest, time.Minute, func() error {
		dest = []feedEntry{{ID: "p9"}}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", dest[0].ID)
}

func TestAside_WithoutClient(t *testing.T) {
	SetClient(nil)

	called := false
	var dest []feedEntry
	err := Aside(context.Background(), FeedKey, &dest, time.Minute, func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestInvalidateFeed(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(FeedKey, "[]"))

	InvalidateFeed(context.Background())
	assert.False(t, mr.Exists(FeedKey))
}

func TestAside_InvalidationDuringFetchSkipsWrite(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest []feedEntry
	err := Aside(ctx, FeedKey, &dest, time.Minute, func() error {
		dest = []feedEntry{{ID: "p1", Likes: 0}}
		InvalidateFeed(ctx)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, dest[0].Likes, "caller still gets its own read")
	assert.False(t, mr.Exists(FeedKey), "snapshot taken before the invalidation is not cached")

	var next []feedEntry
	err = Aside(ctx, FeedKey, &next, time.Minute, func() error {
		next = []feedEntry{{ID: "p1", Likes: 1}}
		return nil
	})
	require.NoError(t, err)
	assert.True(t, mr.Exists(FeedKey))
}

func TestInvalidate_BumpsVersion(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	InvalidateFeed(ctx)
	InvalidateFeed(ctx)

	v, err := mr.Get(FeedKey + ":version")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestInitRedis_UnreachableDisablesCache(t *testing.T) {
	InitRedis("127.0.0.1:1")
	assert.Nil(t, GetClient())

	InitRedis("")
	assert.Nil(t, GetClient())
}
