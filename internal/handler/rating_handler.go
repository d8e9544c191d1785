package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartblog/internal/dto"
	"smartblog/internal/entity"
	"smartblog/internal/service"
	"smartblog/pkg/apperror"
	"smartblog/pkg/response"
	"smartblog/pkg/validator"
)

type RatingHandler struct {
	service service.RatingService
}

func NewRatingHandler(service service.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

func (h *RatingHandler) CreateRating(c *gin.Context) {
	postID, err := parsePathID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ratingType, ok := entity.ParseRatingType(req.Type)
	if !ok {
		response.ResponseError(c, apperror.BadRequest("Invalid rating type."))
		return
	}

	rating, err := h.service.AddRating(c.Request.Context(), postID, userID, ratingType)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// GetScore returns likes minus dislikes for the post.
func (h *RatingHandler) GetScore(c *gin.Context) {
	postID, err := parsePathID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	score, err := h.service.Score(c.Request.Context(), postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

func (h *RatingHandler) ListRatingsForPost(c *gin.Context) {
	postID, err := parsePathID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ratings, err := h.service.RatingsForPost(c.Request.Context(), postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}

func (h *RatingHandler) ListRatingsForUser(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ratings, err := h.service.RatingsForUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	postID, err := parsePathID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ratingID, err := parsePathID(c, "rating_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	rating, err := h.service.RemoveRating(c.Request.Context(), postID, ratingID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}
