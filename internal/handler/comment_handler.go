package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartblog/internal/dto"
	"smartblog/internal/service"
	"smartblog/pkg/response"
	"smartblog/pkg/validator"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, err := parsePathID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), postID, userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, err := parsePathID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comments, err := h.service.ListCommentsForPost(c.Request.Context(), postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := parsePathID(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comment, err := h.service.UpdateComment(c.Request.Context(), commentID, userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment is reachable only through the moderator role gate.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := parsePathID(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comment, err := h.service.RemoveComment(c.Request.Context(), commentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteCommentResponse{
		Message:          "Comment deleted.",
		DeletedCommentID: comment.ID,
		DeletedComment:   comment,
	})
}
