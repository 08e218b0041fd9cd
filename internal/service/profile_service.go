package service

import (
	"context"

	"github.com/jamiebhpark/MentalHealthApp/internal/models"
	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
	"github.com/jamiebhpark/MentalHealthApp/internal/repository"

	"golang.org/x/sync/errgroup"
)

// ProfileService owns a user's XP and badges.
type ProfileService struct {
	profiles repository.ProfileRepository
	retry    RetryPolicy
	logger   *observability.StructuredLogger
}

func NewProfileService(profiles repository.ProfileRepository, retry RetryPolicy) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		retry:    retry,
		logger:   observability.NewStructuredLogger(),
	}
}

// UpdateUserXP adds amount to the user's XP with an atomic increment, so concurrent
// updates never lose points. A missing profile starts from zero. XP never goes below zero,
// so a negative amount is rejected.
func (s *ProfileService) UpdateUserXP(ctx context.Context, userID string, amount int) error {
	if amount < 0 {
		err := models.NewValidationError("xp amount must not be negative")
		s.logger.LogServiceError(ctx, "ProfileService", "UpdateUserXP", err)
		return err
	}
	return s.mutate(ctx, "UpdateUserXP", userID, func() error {
		return s.profiles.AddXP(ctx, userID, amount)
	})
}

// AwardBadgeToUser adds badge to the user's set. Awarding a held badge changes nothing.
func (s *ProfileService) AwardBadgeToUser(ctx context.Context, userID, badge string) error {
	return s.mutate(ctx, "AwardBadgeToUser", userID, func() error {
		return s.profiles.AddBadge(ctx, userID, badge)
	})
}

// FetchUserXP returns the stored XP, or 0 when there is no user, no profile or the read fails.
func (s *ProfileService) FetchUserXP(ctx context.Context, userID string) int {
	xp, err := s.xp(ctx, userID)
	if err != nil {
		observability.LogDegradedRead(ctx, "FetchUserXP", "users", err)
		return 0
	}
	return xp
}

// FetchUserBadges returns the stored badges, or an empty set.
func (s *ProfileService) FetchUserBadges(ctx context.Context, userID string) []string {
	badges, err := s.badges(ctx, userID)
	if err != nil {
		observability.LogDegradedRead(ctx, "FetchUserBadges", "users", err)
		return []string{}
	}
	return badges
}

// Summary reads XP and badges concurrently and derives the level. Unlike the single
// fetches it reports failures, since a partial profile would be misleading.
func (s *ProfileService) Summary(ctx context.Context, userID string) (models.UserProfile, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "ProfileService", "Summary")
	defer span.End()

	profile := models.UserProfile{UserID: userID, Badges: []string{}}
	if userID == "" {
		return profile, models.ErrUnauthenticated
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		xp, err := s.xp(gctx, userID)
		profile.XP = xp
		return err
	})
	g.Go(func() error {
		badges, err := s.badges(gctx, userID)
		if badges != nil {
			profile.Badges = badges
		}
		return err
	})
	if err := g.Wait(); err != nil {
		observability.RecordErrorInContext(ctx, err)
		s.logger.LogServiceError(ctx, "ProfileService", "Summary", err)
		return models.UserProfile{UserID: userID, Badges: []string{}}, err
	}

	profile.Level = LevelFor(profile.XP)
	return profile, nil
}

func (s *ProfileService) xp(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, models.ErrUnauthenticated
	}
	return retry(ctx, s.retry, func() (int, error) {
		return s.profiles.GetXP(ctx, userID)
	})
}

func (s *ProfileService) badges(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return []string{}, models.ErrUnauthenticated
	}
	return retry(ctx, s.retry, func() ([]string, error) {
		return s.profiles.GetBadges(ctx, userID)
	})
}

func (s *ProfileService) mutate(ctx context.Context, method, userID string, op func() error) error {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "ProfileService", method)
	defer span.End()

	if userID == "" {
		s.logger.LogServiceError(ctx, "ProfileService", method, models.ErrUnauthenticated)
		return models.ErrUnauthenticated
	}
	if err := retryErr(ctx, s.retry, op); err != nil {
		observability.RecordErrorInContext(ctx, err)
		s.logger.LogServiceError(ctx, "ProfileService", method, err)
		return err
	}
	s.logger.LogServiceCall(ctx, "ProfileService", method, map[string]interface{}{"user_id": userID})
	return nil
}
