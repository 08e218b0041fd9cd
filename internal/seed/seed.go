// Package seed provides demo data for development and testing. Generated data comes from
// gofakeit; stable demo sets come from a YAML fixture.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"
	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
	"github.com/jamiebhpark/MentalHealthApp/internal/repository"
	"github.com/jamiebhpark/MentalHealthApp/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Options configures generated seeding.
type Options struct {
	NumUsers       int
	RecordsPerUser int
	NumPosts       int
	MaxLikes       int
	MaxComments    int
	MaxDays        int
	XPPerRecord    int
	RandSeed       int64
}

// DefaultOptions is a small but lively demo data set.
var DefaultOptions = Options{
	NumUsers:       5,
	RecordsPerUser: 10,
	NumPosts:       20,
	MaxLikes:       8,
	MaxComments:    3,
	MaxDays:        14,
	XPPerRecord:    10,
}

// Report counts what a seeding run wrote.
type Report struct {
	Users    []string
	Records  int
	Posts    int
	Likes    int
	Comments int
}

// Seeder writes demo data. History (records and posts with past timestamps) is imported
// directly into the store; engagement and profile state go through the data service.
type Seeder struct {
	store docstore.Store
	data  *service.DataService
	now   func() time.Time
}

// NewSeeder creates a seeder over store and the service built on it.
func NewSeeder(store docstore.Store, data *service.DataService) *Seeder {
	return &Seeder{store: store, data: data, now: time.Now}
}

// Seed generates opts.NumUsers users with records, then opts.NumPosts posts with likes and comments.
func (s *Seeder) Seed(ctx context.Context, opts Options) (Report, error) {
	var report Report
	f := NewFactory(opts, s.now)

	observability.LogAsyncOperationStart(ctx, "seed.generate", map[string]interface{}{
		"users": opts.NumUsers,
		"posts": opts.NumPosts,
	})

	for i := 0; i < opts.NumUsers; i++ {
		userID := uuid.NewString()
		report.Users = append(report.Users, userID)

		for j := 0; j < opts.RecordsPerUser; j++ {
			if _, err := repository.ImportEmotionRecord(ctx, s.store, userID, f.BuildRecord()); err != nil {
				return report, fmt.Errorf("seed record for %s: %w", userID, err)
			}
			report.Records++
		}

		if opts.RecordsPerUser > 0 {
			if err := s.data.UpdateUserXP(ctx, userID, opts.RecordsPerUser*opts.XPPerRecord); err != nil {
				return report, fmt.Errorf("seed xp for %s: %w", userID, err)
			}
			if err := s.data.AwardBadgeToUser(ctx, userID, service.BadgeFirstRecord); err != nil {
				return report, fmt.Errorf("seed badge for %s: %w", userID, err)
			}
		}
	}

	if len(report.Users) == 0 {
		observability.LogAsyncOperationEnd(ctx, "seed.generate", report.fields())
		return report, nil
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := report.Users[gofakeit.Number(0, len(report.Users)-1)]
		post := f.BuildPost(author)
		if err := repository.ImportPost(ctx, s.store, post); err != nil {
			return report, fmt.Errorf("seed post: %w", err)
		}
		report.Posts++

		likes, comments := randomUpTo(opts.MaxLikes), randomUpTo(opts.MaxComments)
		if err := s.engage(ctx, post.ID, likes, commentsFrom(f, comments), &report); err != nil {
			return report, err
		}
	}

	observability.LogAsyncOperationEnd(ctx, "seed.generate", report.fields())
	return report, nil
}

// ApplyFixture writes a fixture's users, records and posts. Timestamps are relative to now.
func (s *Seeder) ApplyFixture(ctx context.Context, fx *Fixture) (Report, error) {
	var report Report
	now := s.now().UTC()
	observability.LogAsyncOperationStart(ctx, "seed.fixture", map[string]interface{}{
		"users": len(fx.Users),
		"posts": len(fx.Posts),
	})

	for _, u := range fx.Users {
		report.Users = append(report.Users, u.ID)
		for _, r := range u.Records {
			rec := models.EmotionRecord{
				Emotion:   r.Emotion,
				Color:     models.DecodeColor(r.Color),
				Timestamp: now.Add(-time.Duration(r.DaysAgo) * 24 * time.Hour),
			}
			if _, err := repository.ImportEmotionRecord(ctx, s.store, u.ID, rec); err != nil {
				return report, fmt.Errorf("fixture record for %s: %w", u.ID, err)
			}
			report.Records++
		}
		if u.XP > 0 {
			if err := s.data.UpdateUserXP(ctx, u.ID, u.XP); err != nil {
				return report, fmt.Errorf("fixture xp for %s: %w", u.ID, err)
			}
		}
		for _, b := range u.Badges {
			if err := s.data.AwardBadgeToUser(ctx, u.ID, b); err != nil {
				return report, fmt.Errorf("fixture badge for %s: %w", u.ID, err)
			}
		}
	}

	for _, p := range fx.Posts {
		post := &models.Post{
			UserID:    p.UserID,
			Emotion:   p.Emotion,
			Message:   p.Message,
			Color:     models.DecodeColor(p.Color),
			Timestamp: now.Add(-time.Duration(p.HoursAgo) * time.Hour),
		}
		if err := repository.ImportPost(ctx, s.store, post); err != nil {
			return report, fmt.Errorf("fixture post: %w", err)
		}
		report.Posts++
		if err := s.engage(ctx, post.ID, p.Likes, p.Comments, &report); err != nil {
			return report, err
		}
	}
	observability.LogAsyncOperationEnd(ctx, "seed.fixture", report.fields())
	return report, nil
}

func (r Report) fields() map[string]interface{} {
	return map[string]interface{}{
		"records":  r.Records,
		"posts":    r.Posts,
		"likes":    r.Likes,
		"comments": r.Comments,
	}
}

func (s *Seeder) engage(ctx context.Context, postID string, likes int, comments []string, report *Report) error {
	for i := 0; i < likes; i++ {
		if err := s.data.AddLikeToPost(ctx, postID); err != nil {
			return fmt.Errorf("like post %s: %w", postID, err)
		}
		report.Likes++
	}
	for _, c := range comments {
		if err := s.data.AddCommentToPost(ctx, postID, c); err != nil {
			return fmt.Errorf("comment on post %s: %w", postID, err)
		}
		report.Comments++
	}
	return nil
}

func randomUpTo(n int) int {
	if n <= 0 {
		return 0
	}
	return gofakeit.Number(0, n)
}

func commentsFrom(f *Factory, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.BuildComment())
	}
	return out
}
