package docstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("CreateAndGet", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateDocument(ctx, "posts", Fields{
			"message":   "hello",
			"likes":     0,
			"comments":  []string{},
			"timestamp": ServerTimestamp,
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		fields, err := s.GetDocument(ctx, "posts", id)
		require.NoError(t, err)
		assert.Equal(t, "hello", fields["message"])
		assert.Equal(t, int64(0), fields["likes"])
		_, isTime := fields["timestamp"].(time.Time)
		assert.True(t, isTime, "server timestamp resolved to a time")
	})

	t.Run("GetMissingDocument", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetDocument(ctx, "posts", "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("OrderAndLimit", func(t *testing.T) {
		s := newStore(t)
		for i := 0; i < 10; i++ {
			_, err := s.CreateDocument(ctx, "users/u1/emotions", Fields{
				"emotion":   "happy",
				"timestamp": base.Add(time.Duration(i) * time.Hour),
			})
			require.NoError(t, err)
		}
		_, err := s.CreateDocument(ctx, "users/u1/emotions", Fields{"emotion": "no time"})
		require.NoError(t, err)

		docs, err := s.GetDocuments(ctx, "users/u1/emotions",
			NewQuery().OrderByField("timestamp", Descending).WithLimit(7))
		require.NoError(t, err)
		require.Len(t, docs, 7)
		for i := 1; i < len(docs); i++ {
			prev := docs[i-1].Fields["timestamp"].(time.Time)
			cur := docs[i].Fields["timestamp"].(time.Time)
			assert.True(t, !cur.After(prev), "descending order")
		}
		assert.True(t, docs[0].Fields["timestamp"].(time.Time).Equal(base.Add(9*time.Hour)))
	})

	t.Run("FilterInclusiveBound", func(t *testing.T) {
		s := newStore(t)
		for _, offset := range []time.Duration{-time.Hour, 0, time.Hour} {
			_, err := s.CreateDocument(ctx, "users/u1/emotions", Fields{"timestamp": base.Add(offset)})
			require.NoError(t, err)
		}
		docs, err := s.GetDocuments(ctx, "users/u1/emotions",
			NewQuery().Where("timestamp", GreaterOrEqual, base).OrderByField("timestamp", Descending))
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("SubcollectionsAreIsolated", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateDocument(ctx, "users/a/emotions", Fields{"emotion": "happy"})
		require.NoError(t, err)

		docs, err := s.GetDocuments(ctx, "users/b/emotions", NewQuery())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("UpdateMissingWithoutUpsert", func(t *testing.T) {
		s := newStore(t)
		err := s.UpdateField(ctx, "posts", "nope", "likes", Increment(1))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpsertCreatesDocument", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.UpdateField(ctx, "users", "u1", "xp", Increment(50), Upsert()))
		require.NoError(t, s.UpdateField(ctx, "users", "u1", "xp", Increment(60), Upsert()))

		fields, err := s.GetDocument(ctx, "users", "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(110), fields["xp"])
	})

	t.Run("AppendUniqueDeduplicates", func(t *testing.T) {
		s := newStore(t)
		for _, b := range []string{"first-record", "first-record", "level-1"} {
			require.NoError(t, s.UpdateField(ctx, "users", "u1", "badges", AppendUnique(b), Upsert()))
		}
		fields, err := s.GetDocument(ctx, "users", "u1")
		require.NoError(t, err)
		assert.Equal(t, []any{"first-record", "level-1"}, fields["badges"])
	})

	t.Run("ConcurrentIncrements", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateDocument(ctx, "posts", Fields{"likes": 0})
		require.NoError(t, err)

		const n = 20
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.UpdateField(ctx, "posts", id, "likes", Increment(1))
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		fields, err := s.GetDocument(ctx, "posts", id)
		require.NoError(t, err)
		assert.Equal(t, int64(n), fields["likes"])
	})

	t.Run("RejectsDocumentPath", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateDocument(ctx, "users/u1", Fields{})
		assert.Error(t, err)
	})
}
