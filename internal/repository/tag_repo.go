package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartblog/internal/entity"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	// GetOrCreate resolves a tag by exact (case-sensitive) name,
	// creating it when absent.
	GetOrCreate(ctx context.Context, name string) (*entity.Tag, error)
	FindAll(ctx context.Context) ([]*entity.Tag, error)
	FindByName(ctx context.Context, name string) (*entity.Tag, error)
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*entity.Tag, error)
	Update(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPostsWithTag(ctx context.Context, tagID uuid.UUID) (int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*entity.Tag, error) {
	// Find with a slice avoids gorm's "record not found" log noise
	var existing []entity.Tag
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Limit(1).
		Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	tag := &entity.Tag{Name: name}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) FindAll(ctx context.Context) ([]*entity.Tag, error) {
	var tags []*entity.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*entity.Tag, error) {
	var tags []*entity.Tag
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", prefix+"%").
		Order("name ASC").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Tag{}, "id = ?", id).Error
}

func (r *tagRepository) CountPostsWithTag(ctx context.Context, tagID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("post_tags").
		Where("tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}
