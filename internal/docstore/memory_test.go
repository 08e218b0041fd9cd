package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestMemoryStore_ServerTimestampUsesStoreClock(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 9, 0, 0, 0, time.FixedZone("KST", 9*3600))
	s := NewMemoryStore(WithClock(func() time.Time { return fixed }), WithIDGenerator(func() string { return "doc-1" }))

	id, err := s.CreateDocument(context.Background(), "posts", Fields{"timestamp": ServerTimestamp})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)

	fields, err := s.GetDocument(context.Background(), "posts", id)
	require.NoError(t, err)
	assert.Equal(t, fixed.UTC(), fields["timestamp"])
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	s.Put("posts", "p1", Fields{"comments": []string{"a"}})

	fields, err := s.GetDocument(context.Background(), "posts", "p1")
	require.NoError(t, err)
	fields["comments"].([]any)[0] = "mutated"

	again, err := s.GetDocument(context.Background(), "posts", "p1")
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, again["comments"])
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CreateDocument(ctx, "posts", Fields{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestInstrument_PassesThrough(t *testing.T) {
	s := Instrument(NewMemoryStore(), "memory")
	ctx := context.Background()

	id, err := s.CreateDocument(ctx, "posts", Fields{"likes": 0})
	require.NoError(t, err)
	require.NoError(t, s.UpdateField(ctx, "posts", id, "likes", Increment(1)))

	_, err = s.GetDocument(ctx, "posts", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	fields, err := s.GetDocument(ctx, "posts", id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fields["likes"])
	assert.NoError(t, s.Ping(ctx))
}
