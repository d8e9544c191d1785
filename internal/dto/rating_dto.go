package dto

type CreateRatingRequest struct {
	Type string `json:"type" binding:"required,oneof=LIKE DISLIKE"`
}
