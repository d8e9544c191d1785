package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartblog/internal/dto"
	"smartblog/internal/entity"
	"smartblog/internal/repository"
	"smartblog/pkg/apperror"
)

type PostService interface {
	CreatePost(ctx context.Context, ownerID uuid.UUID, req dto.CreatePostRequest) (*entity.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	GetAllPosts(ctx context.Context) ([]*entity.Post, error)
	UpdatePost(ctx context.Context, id, ownerID uuid.UUID, req dto.UpdatePostRequest) (*entity.Post, error)
	DeletePost(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error)
}

type postService struct {
	posts  repository.PostRepository
	tags   repository.TagRepository
	search SearchService
}

func NewPostService(posts repository.PostRepository, tags repository.TagRepository, search SearchService) PostService {
	return &postService{
		posts:  posts,
		tags:   tags,
		search: search,
	}
}

func (s *postService) CreatePost(ctx context.Context, ownerID uuid.UUID, req dto.CreatePostRequest) (*entity.Post, error) {
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		Title:  sanitizeText(req.Title),
		Text:   sanitizeText(req.Text),
		UserID: ownerID,
		Tags:   tags,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Post not found.")
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) GetAllPosts(ctx context.Context) ([]*entity.Post, error) {
	return s.posts.FindAll(ctx)
}

// UpdatePost succeeds only for the owner; the owner-scoped lookup makes
// someone else's post look absent. The tag set is replaced wholesale.
func (s *postService) UpdatePost(ctx context.Context, id, ownerID uuid.UUID, req dto.UpdatePostRequest) (*entity.Post, error) {
	post, err := s.posts.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Post not found.")
		}
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	post.Title = sanitizeText(req.Title)
	post.Text = sanitizeText(req.Text)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	if err := s.posts.ReplaceTags(ctx, post, tags); err != nil {
		return nil, err
	}
	post.Tags = tags
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error) {
	post, err := s.posts.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Post not found.")
		}
		return nil, err
	}
	if err := s.posts.Delete(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// resolveTags maps tag names onto persistent tags via get-or-create,
// keeping the search index in sync for freshly created ones.
func (s *postService) resolveTags(ctx context.Context, names []string) ([]entity.Tag, error) {
	tags := make([]entity.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = sanitizeText(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.tags.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if s.search != nil {
			s.search.IndexTag(tag)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
