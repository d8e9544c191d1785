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

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// AssignRole runs behind the admin role gate; the caller's role is put
// in the context by the middleware.
func (h *UserHandler) AssignRole(c *gin.Context) {
	targetID, err := parsePathID(c, "user_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	role, ok := entity.ParseRole(req.Role)
	if !ok {
		response.ResponseError(c, apperror.BadRequest("Invalid role."))
		return
	}

	callerRole, exists := c.Get("role")
	if !exists {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	message, err := h.service.AssignRole(c.Request.Context(), callerRole.(entity.Role), targetID, role)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}
