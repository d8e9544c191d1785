package dto

import "smartblog/internal/entity"

type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type SignupResponse struct {
	User   *entity.User `json:"user"`
	Detail string       `json:"detail"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type RequestEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
