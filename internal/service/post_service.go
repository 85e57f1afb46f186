package service

import (
	"context"

	"socialposts/internal/models"
	"socialposts/internal/observability"
	"socialposts/internal/repository"
	"socialposts/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// LikeAction is the outcome of a like toggle.
type LikeAction string

const (
	LikeAdded   LikeAction = "added"
	LikeRemoved LikeAction = "removed"
)

// ToggleResult reports whether the actor likes the post after the toggle.
type ToggleResult struct {
	Liked  bool
	Action LikeAction
}

type PostService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		likeRepo: likeRepo,
	}
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// Get returns a post with its likes.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, actor Actor, text string) (*models.Post, error) {
	if err := RequireActor(actor); err != nil {
		return nil, err
	}
	if err := validation.ValidatePostText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{UserID: actor.UserID, Text: text}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}

// Update replaces the text of a post the actor owns.
func (s *PostService) Update(ctx context.Context, actor Actor, id uint, text string) (*models.Post, error) {
	if err := RequireActor(actor); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(actor, post); err != nil {
		return nil, err
	}
	if err := validation.ValidatePostText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post.Text = text
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, id)
}

// Delete removes a post the actor owns, together with its likes.
func (s *PostService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := RequireActor(actor); err != nil {
		return err
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireOwner(actor, post); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

// ToggleLike removes the actor's like on the post if present, otherwise adds one.
// A concurrent insert of the same pair is treated as added.
func (s *PostService) ToggleLike(ctx context.Context, actor Actor, id uint) (result ToggleResult, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.ToggleLike",
		attribute.Int64("post.id", int64(id)),
		attribute.Int64("user.id", int64(actor.UserID)),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if err := RequireActor(actor); err != nil {
		return ToggleResult{}, err
	}
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return ToggleResult{}, err
	}

	existing, err := s.likeRepo.Find(ctx, actor.UserID, id)
	if err != nil {
		return ToggleResult{}, err
	}

	if existing != nil {
		if _, err := s.likeRepo.Delete(ctx, actor.UserID, id); err != nil {
			return ToggleResult{}, err
		}
		result = ToggleResult{Liked: false, Action: LikeRemoved}
	} else {
		if _, err := s.likeRepo.Save(ctx, &models.Like{UserID: actor.UserID, PostID: id}); err != nil {
			return ToggleResult{}, err
		}
		result = ToggleResult{Liked: true, Action: LikeAdded}
	}

	observability.LikesToggled.WithLabelValues(string(result.Action)).Inc()
	span.AddAttributes(attribute.String("like.action", string(result.Action)))
	return result, nil
}
