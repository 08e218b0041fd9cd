package repository

import (
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"
)

const (
	usersCollection    = "users"
	postsCollection    = "posts"
	emotionsCollection = "emotions"

	fieldEmotion   = "emotion"
	fieldColor     = "color"
	fieldTimestamp = "timestamp"
	fieldUserID    = "userID"
	fieldMessage   = "message"
	fieldLikes     = "likes"
	fieldComments  = "comments"
	fieldXP        = "xp"
	fieldBadges    = "badges"
)

// emotionsPath is the private emotion collection of one user.
func emotionsPath(userID string) string {
	return usersCollection + "/" + userID + "/" + emotionsCollection
}

func stringField(fields docstore.Fields, key, fallback string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return fallback
}

func intField(fields docstore.Fields, key string) int {
	switch v := fields[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func timeField(fields docstore.Fields, key string, fallback time.Time) time.Time {
	if t, ok := fields[key].(time.Time); ok {
		return t
	}
	return fallback
}

// stringsField keeps the string elements of an array field and drops anything else.
func stringsField(fields docstore.Fields, key string) []string {
	out := []string{}
	switch v := fields[key].(type) {
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, v...)
	}
	return out
}

func colorField(fields docstore.Fields) models.Color {
	return models.DecodeColor(stringField(fields, fieldColor, models.EncodeColor(models.Gray)))
}
