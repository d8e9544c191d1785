package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartblog/internal/entity"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	// FindByIDAndPost requires the rating to belong to the given post.
	FindByIDAndPost(ctx context.Context, ratingID, postID uuid.UUID) (*entity.Rating, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.Rating, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	CountByType(ctx context.Context, postID uuid.UUID, t entity.RatingType) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) FindByIDAndPost(ctx context.Context, ratingID, postID uuid.UUID) (*entity.Rating, error) {
	var rating entity.Rating
	if err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", ratingID, postID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.Rating, error) {
	var ratings []*entity.Rating
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error) {
	var ratings []*entity.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Rating{}, "id = ?", id).Error
}

func (r *ratingRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ratingRepository) CountByType(ctx context.Context, postID uuid.UUID, t entity.RatingType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Where("post_id = ? AND type = ?", postID, t).
		Count(&count).Error
	return count, err
}
