package repository

import (
	"context"

	"github.com/jamiebhpark/MentalHealthApp/internal/cache"
	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"
)

// ImportEmotionRecord writes rec as-is, keeping its own timestamp. Used by the seeder
// to backfill history; live writes go through EmotionRepository.Create.
func ImportEmotionRecord(ctx context.Context, store docstore.Store, userID string, rec models.EmotionRecord) (string, error) {
	return store.CreateDocument(ctx, emotionsPath(userID), docstore.Fields{
		fieldEmotion:   rec.Emotion,
		fieldColor:     models.EncodeColor(rec.Color),
		fieldTimestamp: rec.Timestamp,
	})
}

// ImportPost writes post with its timestamp, likes and comments and fills in its id.
func ImportPost(ctx context.Context, store docstore.Store, post *models.Post) error {
	comments := post.Comments
	if comments == nil {
		comments = []string{}
	}
	id, err := store.CreateDocument(ctx, postsCollection, docstore.Fields{
		fieldUserID:    post.UserID,
		fieldEmotion:   post.Emotion,
		fieldMessage:   post.Message,
		fieldColor:     models.EncodeColor(post.Color),
		fieldTimestamp: post.Timestamp,
		fieldLikes:     post.Likes,
		fieldComments:  comments,
	})
	if err != nil {
		return err
	}
	post.ID = id
	cache.InvalidateFeed(ctx)
	return nil
}
