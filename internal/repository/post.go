// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/cache"
	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"
	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context) ([]models.Post, error)
	Like(ctx context.Context, postID string) error
	AddComment(ctx context.Context, postID, comment string) error
}

// postRepository implements PostRepository
type postRepository struct {
	store  docstore.Store
	now    func() time.Time
	logger *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(store docstore.Store) PostRepository {
	return &postRepository{
		store:  store,
		now:    time.Now,
		logger: observability.NewRepoLogger(postsCollection),
	}
}

// Create stores post with zero likes and no comments and fills in its id and the
// timestamp the store assigned.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	id, err := r.store.CreateDocument(ctx, postsCollection, docstore.Fields{
		fieldUserID:    post.UserID,
		fieldEmotion:   post.Emotion,
		fieldMessage:   post.Message,
		fieldColor:     models.EncodeColor(post.Color),
		fieldTimestamp: docstore.ServerTimestamp,
		fieldLikes:     0,
		fieldComments:  []string{},
	})
	if err != nil {
		r.logger.LogError(ctx, err, "create")
		return err
	}
	post.ID = id
	post.Likes = 0
	post.Comments = []string{}
	post.Timestamp = r.now()
	if stored, readErr := r.store.GetDocument(ctx, postsCollection, id); readErr == nil {
		post.Timestamp = timeField(stored, fieldTimestamp, post.Timestamp)
	}
	cache.InvalidateFeed(ctx)
	r.logger.LogCreate(ctx, map[string]interface{}{"user_id": post.UserID, "id": id})
	return nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := cache.Aside(ctx, cache.FeedKey, &posts, cache.FeedTTL, func() error {
		docs, err := r.store.GetDocuments(ctx, postsCollection,
			docstore.NewQuery().OrderByField(fieldTimestamp, docstore.Descending))
		if err != nil {
			return err
		}
		posts = make([]models.Post, 0, len(docs))
		for _, d := range docs {
			posts = append(posts, r.toPost(d))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.LogRead(ctx, map[string]interface{}{"count": len(posts)})
	return posts, nil
}

func (r *postRepository) Like(ctx context.Context, postID string) error {
	return r.update(ctx, postID, fieldLikes, docstore.Increment(1))
}

func (r *postRepository) AddComment(ctx context.Context, postID, comment string) error {
	return r.update(ctx, postID, fieldComments, docstore.AppendUnique(comment))
}

func (r *postRepository) update(ctx context.Context, postID, field string, op docstore.FieldOp) error {
	err := r.store.UpdateField(ctx, postsCollection, postID, field, op)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.NewNotFoundError("Post", postID)
	}
	if err != nil {
		r.logger.LogError(ctx, err, "update")
		return err
	}
	cache.InvalidateFeed(ctx)
	r.logger.LogUpdate(ctx, map[string]interface{}{"id": postID, "field": field})
	return nil
}

func (r *postRepository) toPost(d docstore.Document) models.Post {
	return models.Post{
		ID:        d.ID,
		UserID:    stringField(d.Fields, fieldUserID, ""),
		Emotion:   stringField(d.Fields, fieldEmotion, models.UnknownEmotion),
		Message:   stringField(d.Fields, fieldMessage, ""),
		Color:     colorField(d.Fields),
		Timestamp: timeField(d.Fields, fieldTimestamp, r.now()),
		Likes:     intField(d.Fields, fieldLikes),
		Comments:  stringsField(d.Fields, fieldComments),
	}
}
