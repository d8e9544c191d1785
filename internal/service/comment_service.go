package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartblog/internal/dto"
	"smartblog/internal/entity"
	"smartblog/internal/repository"
	"smartblog/pkg/apperror"
)

type CommentService interface {
	CreateComment(ctx context.Context, postID, authorID uuid.UUID, req dto.CreateCommentRequest) (*entity.Comment, error)
	UpdateComment(ctx context.Context, commentID, authorID uuid.UUID, req dto.UpdateCommentRequest) (*entity.Comment, error)
	// RemoveComment deletes regardless of author; the moderator/admin
	// role gate is enforced at the route, not here.
	RemoveComment(ctx context.Context, commentID uuid.UUID) (*entity.Comment, error)
	ListCommentsForPost(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{
		comments: comments,
		posts:    posts,
	}
}

func (s *commentService) CreateComment(ctx context.Context, postID, authorID uuid.UUID, req dto.CreateCommentRequest) (*entity.Comment, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("Post not found.")
	}

	comment := &entity.Comment{
		Text:   sanitizeText(req.Text),
		PostID: postID,
		UserID: authorID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment distinguishes an absent comment (404) from someone
// else's comment (403).
func (s *commentService) UpdateComment(ctx context.Context, commentID, authorID uuid.UUID, req dto.UpdateCommentRequest) (*entity.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Comment not found.")
		}
		return nil, err
	}
	if comment.UserID != authorID {
		return nil, apperror.Forbidden("You can only edit your own comments.")
	}

	now := time.Now()
	comment.Text = sanitizeText(req.Text)
	comment.UpdatedAt = &now
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) RemoveComment(ctx context.Context, commentID uuid.UUID) (*entity.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Comment not found.")
		}
		return nil, err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListCommentsForPost answers 404 only when the post itself is absent;
// a post without comments yields an empty list.
func (s *commentService) ListCommentsForPost(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("Post not found.")
	}
	return s.comments.FindByPostID(ctx, postID)
}
