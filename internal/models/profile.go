package models

// UserProfile holds a user's gamification state. Only its owner mutates it.
type UserProfile struct {
	UserID string   `json:"user_id"`
	XP     int      `json:"xp"`
	Level  int      `json:"level"`
	Badges []string `json:"badges"`
}
