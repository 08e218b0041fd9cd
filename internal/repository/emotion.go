package repository

import (
	"context"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"
	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
)

// EmotionRepository defines the interface for a user's private emotion records.
type EmotionRepository interface {
	Create(ctx context.Context, userID, emotion string, color models.Color) (string, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]models.EmotionRecord, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]models.EmotionRecord, error)
}

// emotionRepository implements EmotionRepository
type emotionRepository struct {
	store  docstore.Store
	now    func() time.Time
	logger *observability.RepoLogger
}

// NewEmotionRepository creates a new emotion repository
func NewEmotionRepository(store docstore.Store) EmotionRepository {
	return &emotionRepository{
		store:  store,
		now:    time.Now,
		logger: observability.NewRepoLogger(emotionsCollection),
	}
}

func (r *emotionRepository) Create(ctx context.Context, userID, emotion string, color models.Color) (string, error) {
	id, err := r.store.CreateDocument(ctx, emotionsPath(userID), docstore.Fields{
		fieldEmotion:   emotion,
		fieldColor:     models.EncodeColor(color),
		fieldTimestamp: docstore.ServerTimestamp,
	})
	if err != nil {
		r.logger.LogError(ctx, err, "create")
		return "", err
	}
	r.logger.LogCreate(ctx, map[string]interface{}{"user_id": userID, "id": id})
	return id, nil
}

func (r *emotionRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.EmotionRecord, error) {
	q := docstore.NewQuery().
		OrderByField(fieldTimestamp, docstore.Descending).
		WithLimit(limit)
	return r.list(ctx, userID, q)
}

func (r *emotionRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]models.EmotionRecord, error) {
	q := docstore.NewQuery().
		Where(fieldTimestamp, docstore.GreaterOrEqual, since).
		OrderByField(fieldTimestamp, docstore.Descending)
	return r.list(ctx, userID, q)
}

func (r *emotionRepository) list(ctx context.Context, userID string, q docstore.Query) ([]models.EmotionRecord, error) {
	docs, err := r.store.GetDocuments(ctx, emotionsPath(userID), q)
	if err != nil {
		return nil, err
	}
	records := make([]models.EmotionRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, r.toRecord(d.Fields))
	}
	r.logger.LogRead(ctx, map[string]interface{}{"user_id": userID, "count": len(records)})
	return records, nil
}

func (r *emotionRepository) toRecord(fields docstore.Fields) models.EmotionRecord {
	return models.EmotionRecord{
		Emotion:   stringField(fields, fieldEmotion, models.UnknownEmotion),
		Color:     colorField(fields),
		Timestamp: timeField(fields, fieldTimestamp, r.now()),
	}
}
