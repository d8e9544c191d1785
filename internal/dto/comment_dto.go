package dto

import (
	"github.com/google/uuid"

	"smartblog/internal/entity"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=280"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=280"`
}

type DeleteCommentResponse struct {
	Message          string          `json:"message"`
	DeletedCommentID uuid.UUID       `json:"deleted_comment_id"`
	DeletedComment   *entity.Comment `json:"deleted_comment"`
}
