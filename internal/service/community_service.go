package service

import (
	"context"

	"github.com/jamiebhpark/MentalHealthApp/internal/models"
	"github.com/jamiebhpark/MentalHealthApp/internal/observability"
	"github.com/jamiebhpark/MentalHealthApp/internal/repository"
)

// CommunityService owns the public feed.
type CommunityService struct {
	posts   repository.PostRepository
	rewards *Rewards
	retry   RetryPolicy
	logger  *observability.StructuredLogger
}

func NewCommunityService(posts repository.PostRepository, rewards *Rewards, retry RetryPolicy) *CommunityService {
	return &CommunityService{
		posts:   posts,
		rewards: rewards,
		retry:   retry,
		logger:  observability.NewStructuredLogger(),
	}
}

// CreatePost shares an emotion to the feed and returns the new post's id.
func (s *CommunityService) CreatePost(ctx context.Context, userID, emotion, message string, color models.Color) (string, error) {
	post, err := s.PublishPost(ctx, userID, emotion, message, color)
	return post.ID, err
}

// PublishPost is CreatePost returning the stored post, including its server timestamp.
func (s *CommunityService) PublishPost(ctx context.Context, userID, emotion, message string, color models.Color) (models.Post, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "CommunityService", "CreatePost")
	defer span.End()

	if userID == "" {
		s.logger.LogServiceError(ctx, "CommunityService", "CreatePost", models.ErrUnauthenticated)
		return models.Post{}, models.ErrUnauthenticated
	}

	post := &models.Post{UserID: userID, Emotion: emotion, Message: message, Color: color}
	err := retryErr(ctx, s.retry, func() error {
		return s.posts.Create(ctx, post)
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		s.logger.LogServiceError(ctx, "CommunityService", "CreatePost", err)
		return models.Post{}, err
	}

	s.logger.LogServiceCall(ctx, "CommunityService", "CreatePost", map[string]interface{}{
		"user_id": userID,
		"post_id": post.ID,
	})
	s.rewards.PostShared(ctx, userID)
	return *post, nil
}

// FetchPosts returns every post, newest first. It needs no user. Failures are logged
// and yield an empty feed.
func (s *CommunityService) FetchPosts(ctx context.Context) []models.Post {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "CommunityService", "FetchPosts")
	defer span.End()

	posts, err := retry(ctx, s.retry, func() ([]models.Post, error) {
		return s.posts.List(ctx)
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		observability.LogDegradedRead(ctx, "FetchPosts", "posts", err)
		return []models.Post{}
	}
	return posts
}

// AddLikeToPost adds exactly one like using the store's atomic increment.
func (s *CommunityService) AddLikeToPost(ctx context.Context, postID string) error {
	return s.mutate(ctx, "AddLikeToPost", postID, func() error {
		return s.posts.Like(ctx, postID)
	})
}

// AddCommentToPost appends comment unless the same text is already on the post.
func (s *CommunityService) AddCommentToPost(ctx context.Context, postID, comment string) error {
	return s.mutate(ctx, "AddCommentToPost", postID, func() error {
		return s.posts.AddComment(ctx, postID, comment)
	})
}

func (s *CommunityService) mutate(ctx context.Context, method, postID string, op func() error) error {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, "CommunityService", method)
	defer span.End()

	if postID == "" {
		return models.NewValidationError("post id is required")
	}
	if err := retryErr(ctx, s.retry, op); err != nil {
		observability.RecordErrorInContext(ctx, err)
		s.logger.LogServiceError(ctx, "CommunityService", method, err)
		return err
	}
	s.logger.LogServiceCall(ctx, "CommunityService", method, map[string]interface{}{"post_id": postID})
	return nil
}
