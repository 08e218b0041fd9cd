package service

import (
	"context"
	"fmt"

	"github.com/jamiebhpark/MentalHealthApp/internal/featureflags"
	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
	"github.com/jamiebhpark/MentalHealthApp/internal/repository"
)

const (
	BadgeFirstRecord = "first-record"
	BadgeFirstShare  = "first-share"
)

// LevelBadge names the badge awarded on reaching level n.
func LevelBadge(n int) string {
	return fmt.Sprintf("level-%d", n)
}

// Rewards grants XP and badges for journaling activity when the gamification flag is on.
// Reward failures are logged and never fail the activity that earned them.
type Rewards struct {
	profiles    repository.ProfileRepository
	flags       *featureflags.Manager
	xpPerRecord int
	xpPerPost   int
	logger      *observability.StructuredLogger
}

// NewRewards creates a rewards engine. A nil flags manager disables all rewards.
func NewRewards(profiles repository.ProfileRepository, flags *featureflags.Manager, xpPerRecord, xpPerPost int) *Rewards {
	return &Rewards{
		profiles:    profiles,
		flags:       flags,
		xpPerRecord: xpPerRecord,
		xpPerPost:   xpPerPost,
		logger:      observability.NewStructuredLogger(),
	}
}

// RecordSaved rewards a saved emotion record.
func (r *Rewards) RecordSaved(ctx context.Context, userID string) {
	r.grant(ctx, userID, r.xpPerRecord, BadgeFirstRecord)
}

// PostShared rewards a post shared to the community feed.
func (r *Rewards) PostShared(ctx context.Context, userID string) {
	r.grant(ctx, userID, r.xpPerPost, BadgeFirstShare)
}

func (r *Rewards) grant(ctx context.Context, userID string, xp int, badge string) {
	if r == nil || !r.flags.Enabled(featureflags.Gamification, userID) {
		return
	}

	// Badges are append-unique, so re-awarding first-* badges is a no-op.
	if err := r.profiles.AddBadge(ctx, userID, badge); err != nil {
		r.logger.LogServiceError(ctx, "Rewards", "AddBadge", err)
	} else {
		observability.RewardsGranted.WithLabelValues("badge").Inc()
	}

	if xp <= 0 {
		return
	}
	if err := r.profiles.AddXP(ctx, userID, xp); err != nil {
		r.logger.LogServiceError(ctx, "Rewards", "AddXP", err)
		return
	}
	observability.RewardsGranted.WithLabelValues("xp").Inc()

	// Read after the increment so overlapping grants each see their own step.
	after, err := r.profiles.GetXP(ctx, userID)
	if err != nil {
		r.logger.LogServiceError(ctx, "Rewards", "GetXP", err)
		return
	}
	before := after - xp

	for level := LevelFor(before) + 1; level <= LevelFor(after); level++ {
		if err := r.profiles.AddBadge(ctx, userID, LevelBadge(level)); err != nil {
			r.logger.LogServiceError(ctx, "Rewards", "AddBadge", err)
			return
		}
		observability.RewardsGranted.WithLabelValues("badge").Inc()
	}
}
