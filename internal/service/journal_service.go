package service

import (
	"context"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/models"
	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
	"github.com/jamiebhpark/MentalHealthApp/internal/repository"
)

const (
	// RecentWindow is how many records the emotional thermometer shows.
	RecentWindow = 7
	// WeeklyWindow is the look-back of the weekly report.
	WeeklyWindow = 7 * 24 * time.Hour
)

// JournalService owns a user's private emotion records.
type JournalService struct {
	emotions repository.EmotionRepository
	rewards  *Rewards
	retry    RetryPolicy
	now      func() time.Time
	logger   *observability.StructuredLogger
}

// HomeSummary is what the home screen shows: recent records and a recommendation
// for the most recent one.
type HomeSummary struct {
	Records        []models.EmotionRecord `json:"records"`
	Recommendation string                 `json:"recommendation"`
}

func NewJournalService(emotions repository.EmotionRepository, rewards *Rewards, retry RetryPolicy) *JournalService {
	return &JournalService{
		emotions: emotions,
		rewards:  rewards,
		retry:    retry,
		now:      time.Now,
		logger:   observability.NewStructuredLogger(),
	}
}

// SaveEmotionRecord writes one record stamped with the store's clock.
func (s *JournalService) SaveEmotionRecord(ctx context.Context, userID, emotion string, color models.Color) error {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "JournalService", "SaveEmotionRecord")
	defer span.End()

	if userID == "" {
		s.logger.LogServiceError(ctx, "JournalService", "SaveEmotionRecord", models.ErrUnauthenticated)
		return models.ErrUnauthenticated
	}

	err := retryErr(ctx, s.retry, func() error {
		_, err := s.emotions.Create(ctx, userID, emotion, color)
		return err
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		s.logger.LogServiceError(ctx, "JournalService", "SaveEmotionRecord", err)
		return err
	}

	s.logger.LogServiceCall(ctx, "JournalService", "SaveEmotionRecord", map[string]interface{}{
		"user_id": userID,
		"emotion": emotion,
	})
	s.rewards.RecordSaved(ctx, userID)
	return nil
}

// FetchEmotionRecords returns the user's most recent records, newest first. Failures
// are logged and yield an empty list.
func (s *JournalService) FetchEmotionRecords(ctx context.Context, userID string) []models.EmotionRecord {
	return s.fetch(ctx, "FetchEmotionRecords", userID, func() ([]models.EmotionRecord, error) {
		return s.emotions.ListRecent(ctx, userID, RecentWindow)
	})
}

// FetchWeeklyEmotionRecords returns every record from the last seven days, boundary
// included, newest first.
func (s *JournalService) FetchWeeklyEmotionRecords(ctx context.Context, userID string) []models.EmotionRecord {
	since := s.now().Add(-WeeklyWindow)
	return s.fetch(ctx, "FetchWeeklyEmotionRecords", userID, func() ([]models.EmotionRecord, error) {
		return s.emotions.ListSince(ctx, userID, since)
	})
}

// Home returns the recent records and, when there is at least one, the recommendation
// for the latest.
func (s *JournalService) Home(ctx context.Context, userID string) HomeSummary {
	records := s.FetchEmotionRecords(ctx, userID)
	summary := HomeSummary{Records: records}
	if len(records) > 0 {
		summary.Recommendation = Recommend(records[0].Emotion)
	}
	return summary
}

func (s *JournalService) fetch(ctx context.Context, method, userID string, list func() ([]models.EmotionRecord, error)) []models.EmotionRecord {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "JournalService", method)
	defer span.End()

	if userID == "" {
		observability.LogDegradedRead(ctx, method, "users/{uid}/emotions", models.ErrUnauthenticated)
		return []models.EmotionRecord{}
	}

	records, err := retry(ctx, s.retry, list)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		observability.LogDegradedRead(ctx, method, "users/"+userID+"/emotions", err)
		return []models.EmotionRecord{}
	}
	return records
}
