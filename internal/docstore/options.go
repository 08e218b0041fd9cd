package docstore

import (
	"time"

	"github.com/google/uuid"
)

type settings struct {
	now   func() time.Time
	newID func() string
}

// Option configures the in-process parts of a store: its clock and id generator.
type Option func(*settings)

// WithClock sets the clock used to resolve ServerTimestamp.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithIDGenerator sets the document id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *settings) { s.newID = newID }
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
