package seed

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is a hand-written data set loaded from YAML, for demos that need stable content.
//
//	users:
//	  - id: 6f1c...
//	    xp: 120
//	    badges: [first-record]
//	    records:
//	      - {emotion: happy, color: yellow, days_ago: 1}
//	posts:
//	  - {user: 6f1c..., emotion: calm, color: green, message: "...", hours_ago: 3, likes: 2}
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
	Posts []FixturePost `yaml:"posts"`
}

type FixtureUser struct {
	ID      string          `yaml:"id"`
	XP      int             `yaml:"xp"`
	Badges  []string        `yaml:"badges"`
	Records []FixtureRecord `yaml:"records"`
}

type FixtureRecord struct {
	Emotion string `yaml:"emotion"`
	Color   string `yaml:"color"`
	DaysAgo int    `yaml:"days_ago"`
}

type FixturePost struct {
	UserID   string   `yaml:"user"`
	Emotion  string   `yaml:"emotion"`
	Color    string   `yaml:"color"`
	Message  string   `yaml:"message"`
	HoursAgo int      `yaml:"hours_ago"`
	Likes    int      `yaml:"likes"`
	Comments []string `yaml:"comments"`
}

// LoadFixture reads and validates a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates YAML fixture data.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := fx.validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

func (fx *Fixture) validate() error {
	for i, u := range fx.Users {
		if u.ID == "" {
			return fmt.Errorf("fixture user %d has no id", i)
		}
		if u.XP < 0 {
			return fmt.Errorf("fixture user %s has negative xp", u.ID)
		}
		for _, r := range u.Records {
			if r.DaysAgo < 0 {
				return fmt.Errorf("fixture user %s has a record in the future", u.ID)
			}
		}
	}
	for i, p := range fx.Posts {
		if p.UserID == "" {
			return fmt.Errorf("fixture post %d has no user", i)
		}
		if p.Likes < 0 || p.HoursAgo < 0 {
			return errors.New("fixture post likes and hours_ago cannot be negative")
		}
	}
	return nil
}
