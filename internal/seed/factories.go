package seed

import (
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// moods pairs the labels the app offers with the color a user would usually pick for them.
var moods = []struct {
	Label string
	Color models.Color
}{
	{"happy", models.Yellow},
	{"sad", models.Blue},
	{"angry", models.Red},
	{"calm", models.Green},
	{"anxious", models.Purple},
	{"excited", models.Orange},
	{"행복", models.Yellow},
	{"슬픔", models.Blue},
	{"화남", models.Red},
}

var commentTemplates = []string{
	"Sending you a hug",
	"I felt the same this week",
	"Thanks for sharing this",
	"Hope tomorrow is lighter",
	"Proud of you for writing it down",
	"Take it one day at a time",
}

// Factory builds demo records and posts. It never touches the store.
type Factory struct {
	opts Options
	now  func() time.Time
}

// NewFactory creates a Factory. A non-zero opts.RandSeed makes the output reproducible;
// zero seeds from crypto/rand.
func NewFactory(opts Options, now func() time.Time) *Factory {
	gofakeit.Seed(opts.RandSeed)
	if now == nil {
		now = time.Now
	}
	return &Factory{opts: opts, now: now}
}

// BuildRecord returns an emotion record dated somewhere in the last MaxDays days.
func (f *Factory) BuildRecord() models.EmotionRecord {
	mood := moods[gofakeit.Number(0, len(moods)-1)]
	return models.EmotionRecord{
		Emotion:   mood.Label,
		Color:     mood.Color,
		Timestamp: f.pastTime(),
	}
}

// BuildPost returns an unsaved post by userID with no engagement.
func (f *Factory) BuildPost(userID string) *models.Post {
	mood := moods[gofakeit.Number(0, len(moods)-1)]
	return &models.Post{
		UserID:    userID,
		Emotion:   mood.Label,
		Message:   gofakeit.Sentence(gofakeit.Number(4, 12)),
		Color:     mood.Color,
		Timestamp: f.pastTime(),
		Comments:  []string{},
	}
}

// BuildComment returns a short supportive comment.
func (f *Factory) BuildComment() string {
	return gofakeit.RandomString(commentTemplates)
}

func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	now := f.now()
	return gofakeit.DateRange(now.Add(-time.Duration(maxDays)*24*time.Hour), now).UTC()
}
