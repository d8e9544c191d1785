package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smartblog/internal/dto"
	"smartblog/internal/entity"
	"smartblog/internal/repository"
	"smartblog/pkg/apperror"
)

type TagService interface {
	GetAllTags(ctx context.Context) ([]*entity.Tag, error)
	CreateTag(ctx context.Context, req dto.TagRequest) (*entity.Tag, error)
	GetTag(ctx context.Context, name string) (*entity.Tag, error)
	UpdateTag(ctx context.Context, name string, req dto.TagRequest) (*entity.Tag, error)
	DeleteTag(ctx context.Context, name string) (*entity.Tag, error)
}

type tagService struct {
	tags   repository.TagRepository
	search SearchService
}

func NewTagService(tags repository.TagRepository, search SearchService) TagService {
	return &tagService{
		tags:   tags,
		search: search,
	}
}

func (s *tagService) GetAllTags(ctx context.Context) ([]*entity.Tag, error) {
	return s.tags.FindAll(ctx)
}

func (s *tagService) CreateTag(ctx context.Context, req dto.TagRequest) (*entity.Tag, error) {
	tag := &entity.Tag{Name: sanitizeText(req.Name)}
	if err := s.tags.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Tag already exists.")
		}
		return nil, err
	}
	if s.search != nil {
		s.search.IndexTag(tag)
	}
	return tag, nil
}

func (s *tagService) GetTag(ctx context.Context, name string) (*entity.Tag, error) {
	tag, err := s.tags.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Tag not found.")
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, name string, req dto.TagRequest) (*entity.Tag, error) {
	tag, err := s.GetTag(ctx, name)
	if err != nil {
		return nil, err
	}

	tag.Name = sanitizeText(req.Name)
	if err := s.tags.Update(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Tag already exists.")
		}
		return nil, err
	}
	if s.search != nil {
		s.search.IndexTag(tag)
	}
	return tag, nil
}

// DeleteTag refuses to remove a tag still attached to posts, so no
// post is left with a dangling association.
func (s *tagService) DeleteTag(ctx context.Context, name string) (*entity.Tag, error) {
	tag, err := s.GetTag(ctx, name)
	if err != nil {
		return nil, err
	}

	count, err := s.tags.CountPostsWithTag(ctx, tag.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict("Tag is still referenced by posts.")
	}

	if err := s.tags.Delete(ctx, tag.ID); err != nil {
		return nil, err
	}
	if s.search != nil {
		s.search.DeleteTag(tag.ID.String())
	}
	return tag, nil
}
