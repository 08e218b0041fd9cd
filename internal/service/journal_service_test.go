package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emotionRepoStub is a stub for repository.EmotionRepository.
type emotionRepoStub struct {
	createFn     func(context.Context, string, string, models.Color) (string, error)
	listRecentFn func(context.Context, string, int) ([]models.EmotionRecord, error)
	listSinceFn  func(context.Context, string, time.Time) ([]models.EmotionRecord, error)
}

func (s *emotionRepoStub) Create(ctx context.Context, userID, emotion string, color models.Color) (string, error) {
	return s.createFn(ctx, userID, emotion, color)
}
func (s *emotionRepoStub) ListRecent(ctx context.Context, userID string, limit int) ([]models.EmotionRecord, error) {
	return s.listRecentFn(ctx, userID, limit)
}
func (s *emotionRepoStub) ListSince(ctx context.Context, userID string, since time.Time) ([]models.EmotionRecord, error) {
	return s.listSinceFn(ctx, userID, since)
}

func failingEmotionRepo(err error) *emotionRepoStub {
	return &emotionRepoStub{
		createFn: func(context.Context, string, string, models.Color) (string, error) { return "", err },
		listRecentFn: func(context.Context, string, int) ([]models.EmotionRecord, error) {
			return nil, err
		},
		listSinceFn: func(context.Context, string, time.Time) ([]models.EmotionRecord, error) {
			return nil, err
		},
	}
}

func TestSaveEmotionRecord(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated", func(t *testing.T) {
		svc, store := newTestService(t, "")
		err := svc.SaveEmotionRecord(bg, "", "happy", models.Yellow)
		assert.ErrorIs(t, err, models.ErrUnauthenticated)

		docs, err := store.GetDocuments(bg, "users/u1/emotions", docstore.NewQuery())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("writes with server timestamp", func(t *testing.T) {
		svc, _ := newTestService(t, "")
		require.NoError(t, svc.SaveEmotionRecord(bg, "u1", "happy", models.Yellow))

		records := svc.FetchEmotionRecords(bg, "u1")
		want := []models.EmotionRecord{{Emotion: "happy", Color: models.Yellow, Timestamp: testNow}}
		if diff := cmp.Diff(want, records); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("store failure is returned", func(t *testing.T) {
		svc := NewJournalService(failingEmotionRepo(errors.New("boom")), nil, NoRetry)
		assert.Error(t, svc.SaveEmotionRecord(bg, "u1", "sad", models.Blue))
	})
}

func TestFetchEmotionRecords_AtMostSevenDescending(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, "")

	for i := 0; i < 12; i++ {
		store.Put("users/u1/emotions", fmt.Sprintf("r%02d", i), docstore.Fields{
			"emotion":   "happy",
			"color":     "yellow",
			"timestamp": testNow.Add(-time.Duration(i*7) * time.Minute),
		})
	}

	records := svc.FetchEmotionRecords(bg, "u1")
	require.Len(t, records, RecentWindow)
	assert.Equal(t, testNow, records[0].Timestamp)
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].Timestamp.Before(records[i-1].Timestamp), "strictly descending")
	}
}

func TestFetchWeeklyEmotionRecords_InclusiveBoundary(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, "")
	boundary := testNow.Add(-7 * 24 * time.Hour)

	store.Put("users/u1/emotions", "exact", docstore.Fields{"emotion": "sad", "color": "blue", "timestamp": boundary})
	store.Put("users/u1/emotions", "before", docstore.Fields{"emotion": "angry", "color": "red", "timestamp": boundary.Add(-time.Nanosecond)})
	for i := 0; i < 9; i++ {
		store.Put("users/u1/emotions", fmt.Sprintf("day%d", i), docstore.Fields{
			"emotion":   "happy",
			"color":     "yellow",
			"timestamp": testNow.Add(-time.Duration(i) * 12 * time.Hour),
		})
	}

	records := svc.FetchWeeklyEmotionRecords(bg, "u1")
	require.Len(t, records, 10, "weekly report is not capped at seven")
	last := records[len(records)-1]
	assert.Equal(t, boundary, last.Timestamp)
	assert.Equal(t, "sad", last.Emotion)
	for _, r := range records {
		assert.False(t, r.Timestamp.Before(boundary))
	}
}

func TestFetchEmotionRecords_DegradesToEmpty(t *testing.T) {
	t.Parallel()

	svc := NewJournalService(failingEmotionRepo(models.NewStoreUnavailableError("query", errors.New("down"))), nil, NoRetry)

	recent := svc.FetchEmotionRecords(bg, "u1")
	assert.NotNil(t, recent)
	assert.Empty(t, recent)

	weekly := svc.FetchWeeklyEmotionRecords(bg, "u1")
	assert.NotNil(t, weekly)
	assert.Empty(t, weekly)

	assert.Empty(t, svc.FetchEmotionRecords(bg, ""))
}

func TestHome(t *testing.T) {
	t.Parallel()

	t.Run("no records means no recommendation", func(t *testing.T) {
		svc, _ := newTestService(t, "")
		summary := svc.Home(bg, "u1")
		assert.Empty(t, summary.Records)
		assert.Equal(t, "", summary.Recommendation)
	})

	t.Run("recommendation follows the latest record", func(t *testing.T) {
		svc, store := newTestService(t, "")
		store.Put("users/u1/emotions", "old", docstore.Fields{"emotion": "happy", "timestamp": testNow.Add(-time.Hour)})
		store.Put("users/u1/emotions", "new", docstore.Fields{"emotion": "sad", "timestamp": testNow})

		summary := svc.Home(bg, "u1")
		require.Len(t, summary.Records, 2)
		assert.Equal(t, Recommend("sad"), summary.Recommendation)
	})
}
