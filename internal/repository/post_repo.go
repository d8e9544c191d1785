package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartblog/internal/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	// FindByIDAndOwner scopes the lookup to the owning user; a post
	// owned by someone else is indistinguishable from an absent one.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error)
	FindAll(ctx context.Context) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	ReplaceTags(ctx context.Context, post *entity.Post, tags []entity.Tag) error
	Delete(ctx context.Context, post *entity.Post) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Order("created_at ASC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).
		Omit("Tags", "Comments").
		Save(post).Error
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *entity.Post, tags []entity.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *postRepository) Delete(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Select("Comments").Delete(post).Error
}

func (r *postRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
