package models

import "time"

// Post is an emotion shared to the public community feed.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Emotion   string    `json:"emotion"`
	Message   string    `json:"message"`
	Color     Color     `json:"color"`
	Timestamp time.Time `json:"timestamp"`
	// Likes only ever grows through an atomic increment.
	Likes int `json:"likes"`
	// Comments is append-only; identical strings collapse into one entry.
	Comments []string `json:"comments"`
}

// SameAs reports whether p and other are the same stored post.
func (p Post) SameAs(other Post) bool {
	return p.ID == other.ID
}
