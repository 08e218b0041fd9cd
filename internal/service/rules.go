package service

// Recommend maps the latest recorded emotion label to a piece of suggested content.
// Callers with no records skip the call and show nothing.
func Recommend(label string) string {
	switch label {
	case "happy", "행복":
		return "Feel-good music recommendation"
	case "sad", "슬픔":
		return "Comforting meditation recommendation"
	case "angry", "화남":
		return "Calming breathing exercise"
	default:
		return "Content to help restore your daily routine"
	}
}

const xpPerLevel = 100

// LevelFor returns the level reached with xp points.
func LevelFor(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp / xpPerLevel
}
