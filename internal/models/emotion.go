// Package models contains data structures for the application's domain models.
package models

import "time"

// EmotionRecord is one private mood entry. It is written once and never edited.
type EmotionRecord struct {
	Emotion   string    `json:"emotion"`
	Color     Color     `json:"color"`
	Timestamp time.Time `json:"timestamp"`
}

// UnknownEmotion is the label used when a stored record has no readable emotion.
const UnknownEmotion = "Unknown"
