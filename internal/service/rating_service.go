package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartblog/internal/entity"
	"smartblog/internal/repository"
	"smartblog/pkg/apperror"
)

// RatingService enforces the voting invariants: one rating per user per
// post, and no rating of one's own post.
type RatingService interface {
	AddRating(ctx context.Context, postID, userID uuid.UUID, ratingType entity.RatingType) (*entity.Rating, error)
	RemoveRating(ctx context.Context, postID, ratingID uuid.UUID) (*entity.Rating, error)
	Score(ctx context.Context, postID uuid.UUID) (int64, error)
	RatingsForPost(ctx context.Context, postID uuid.UUID) ([]*entity.Rating, error)
	RatingsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error)
}

type ratingService struct {
	ratings repository.RatingRepository
	posts   repository.PostRepository
	users   repository.UserRepository
}

func NewRatingService(ratings repository.RatingRepository, posts repository.PostRepository, users repository.UserRepository) RatingService {
	return &ratingService{
		ratings: ratings,
		posts:   posts,
		users:   users,
	}
}

// AddRating checks its preconditions in a fixed order so each failure
// mode keeps its distinct error: post exists, user exists, user is not
// the author, user has not voted yet.
func (s *ratingService) AddRating(ctx context.Context, postID, userID uuid.UUID, ratingType entity.RatingType) (*entity.Rating, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Post not found.")
		}
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found.")
		}
		return nil, err
	}

	if post.UserID == userID {
		return nil, apperror.BadRequest("User can't rate their own post.")
	}

	alreadyRated, err := s.ratings.Exists(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if alreadyRated {
		return nil, apperror.BadRequest("User has already rated this post.")
	}

	rating := &entity.Rating{
		PostID: postID,
		UserID: userID,
		Type:   ratingType,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		// Two concurrent votes can both pass the existence check; the
		// unique index on (post_id, user_id) catches the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest("User has already rated this post.")
		}
		return nil, err
	}
	return rating, nil
}

// RemoveRating deletes a rating only when it exists and belongs to the
// given post. A repeated call reports not-found without touching state.
func (s *ratingService) RemoveRating(ctx context.Context, postID, ratingID uuid.UUID) (*entity.Rating, error) {
	rating, err := s.ratings.FindByIDAndPost(ctx, ratingID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Rating not found.")
		}
		return nil, err
	}
	if err := s.ratings.Delete(ctx, rating.ID); err != nil {
		return nil, err
	}
	return rating, nil
}

// Score is the plain like/dislike difference; zero for an unrated post.
func (s *ratingService) Score(ctx context.Context, postID uuid.UUID) (int64, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return 0, err
	}
	likes, err := s.ratings.CountByType(ctx, postID, entity.RatingLike)
	if err != nil {
		return 0, err
	}
	dislikes, err := s.ratings.CountByType(ctx, postID, entity.RatingDislike)
	if err != nil {
		return 0, err
	}
	return likes - dislikes, nil
}

func (s *ratingService) RatingsForPost(ctx context.Context, postID uuid.UUID) ([]*entity.Rating, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.ratings.FindByPostID(ctx, postID)
}

func (s *ratingService) RatingsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found.")
		}
		return nil, err
	}
	return s.ratings.FindByUserID(ctx, userID)
}

func (s *ratingService) requirePost(ctx context.Context, postID uuid.UUID) error {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NotFound("Post not found.")
	}
	return nil
}
