package repository

import (
	"context"
	"errors"

	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
)

// ProfileRepository reads and updates the gamification fields of users/{uid}.
// A missing profile reads as zero XP and no badges; updates create it.
type ProfileRepository interface {
	AddXP(ctx context.Context, userID string, amount int) error
	GetXP(ctx context.Context, userID string) (int, error)
	AddBadge(ctx context.Context, userID, badge string) error
	GetBadges(ctx context.Context, userID string) ([]string, error)
}

type profileRepository struct {
	store  docstore.Store
	logger *observability.RepoLogger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(store docstore.Store) ProfileRepository {
	return &profileRepository{
		store:  store,
		logger: observability.NewRepoLogger(usersCollection),
	}
}

func (r *profileRepository) AddXP(ctx context.Context, userID string, amount int) error {
	err := r.store.UpdateField(ctx, usersCollection, userID, fieldXP,
		docstore.Increment(int64(amount)), docstore.Upsert())
	if err != nil {
		r.logger.LogError(ctx, err, "add_xp")
		return err
	}
	r.logger.LogUpdate(ctx, map[string]interface{}{"user_id": userID, "xp_delta": amount})
	return nil
}

func (r *profileRepository) GetXP(ctx context.Context, userID string) (int, error) {
	fields, err := r.get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return intField(fields, fieldXP), nil
}

func (r *profileRepository) AddBadge(ctx context.Context, userID, badge string) error {
	err := r.store.UpdateField(ctx, usersCollection, userID, fieldBadges,
		docstore.AppendUnique(badge), docstore.Upsert())
	if err != nil {
		r.logger.LogError(ctx, err, "add_badge")
		return err
	}
	r.logger.LogUpdate(ctx, map[string]interface{}{"user_id": userID, "badge": badge})
	return nil
}

func (r *profileRepository) GetBadges(ctx context.Context, userID string) ([]string, error) {
	fields, err := r.get(ctx, userID)
	if err != nil {
		return []string{}, err
	}
	return stringsField(fields, fieldBadges), nil
}

func (r *profileRepository) get(ctx context.Context, userID string) (docstore.Fields, error) {
	fields, err := r.store.GetDocument(ctx, usersCollection, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return docstore.Fields{}, nil
	}
	if err != nil {
		return nil, err
	}
	return fields, nil
}
