package dto

import "time"

type PublicProfileResponse struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	Description *string   `json:"description"`
	PostCount   int64     `json:"post_count"`
}

type OwnProfileResponse struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Description *string `json:"description"`
	Role        string  `json:"role"`
}

type UpdateProfileRequest struct {
	Username    *string `json:"username" binding:"omitempty,min=3,max=50"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatar_url" binding:"required,url"`
}

type AvatarResponse struct {
	Original string `json:"original"`
	Round    string `json:"round"`
}
