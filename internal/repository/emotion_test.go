package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

func setupStore(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	return docstore.NewMemoryStore(docstore.WithClock(func() time.Time { return testNow }))
}

func TestEmotionRepository_CreateUsesServerTimestamp(t *testing.T) {
	store := setupStore(t)
	repo := NewEmotionRepository(store)
	ctx := context.Background()

	id, err := repo.Create(ctx, "u1", "happy", models.Yellow)
	require.NoError(t, err)

	fields, err := store.GetDocument(ctx, "users/u1/emotions", id)
	require.NoError(t, err)
	assert.Equal(t, "happy", fields["emotion"])
	assert.Equal(t, "yellow", fields["color"])
	assert.Equal(t, testNow, fields["timestamp"])
}

func TestEmotionRepository_ListRecent(t *testing.T) {
	store := setupStore(t)
	repo := NewEmotionRepository(store)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		store.Put("users/u1/emotions", string(rune('a'+i)), docstore.Fields{
			"emotion":   "sad",
			"color":     "blue",
			"timestamp": testNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	store.Put("users/u2/emotions", "other", docstore.Fields{"emotion": "angry", "timestamp": testNow})

	records, err := repo.ListRecent(ctx, "u1", 7)
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, testNow, records[0].Timestamp)
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].Timestamp.Before(records[i-1].Timestamp))
	}
}

func TestEmotionRepository_ListSinceIsInclusive(t *testing.T) {
	store := setupStore(t)
	repo := NewEmotionRepository(store)
	since := testNow.Add(-7 * 24 * time.Hour)

	store.Put("users/u1/emotions", "boundary", docstore.Fields{"emotion": "happy", "color": "yellow", "timestamp": since})
	store.Put("users/u1/emotions", "too-old", docstore.Fields{"emotion": "sad", "color": "blue", "timestamp": since.Add(-time.Second)})
	store.Put("users/u1/emotions", "recent", docstore.Fields{"emotion": "angry", "color": "red", "timestamp": testNow})

	records, err := repo.ListSince(context.Background(), "u1", since)
	require.NoError(t, err)

	want := []models.EmotionRecord{
		{Emotion: "angry", Color: models.Red, Timestamp: testNow},
		{Emotion: "happy", Color: models.Yellow, Timestamp: since},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestEmotionRepository_DefensiveMapping(t *testing.T) {
	store := setupStore(t)
	repo := NewEmotionRepository(store)

	store.Put("users/u1/emotions", "bad", docstore.Fields{
		"emotion":   42,
		"color":     "magenta",
		"timestamp": testNow,
	})

	records, err := repo.ListRecent(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.UnknownEmotion, records[0].Emotion)
	assert.Equal(t, models.Gray, records[0].Color)
}
