package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartblog/internal/dto"
	"smartblog/internal/service"
	"smartblog/pkg/response"
	"smartblog/pkg/validator"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		User:   user,
		Detail: "Confirmation email has been sent.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Refresh exchanges a refresh token, passed as a bearer token, for a
// fresh access/refresh pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), tokenString)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")

	message, err := h.service.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) RequestEmail(c *gin.Context) {
	var req dto.RequestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	message, err := h.service.RequestEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}
