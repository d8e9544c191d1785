package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartblog/internal/service"
	"smartblog/pkg/response"
)

type IllustrationHandler struct {
	service service.IllustrationService
}

func NewIllustrationHandler(service service.IllustrationService) *IllustrationHandler {
	return &IllustrationHandler{service: service}
}

// Illustrate generates a picture for the prompt in query_param and
// returns its stored URL.
func (h *IllustrationHandler) Illustrate(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.service.Illustrate(c.Request.Context(), userID, c.Query("query_param"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
