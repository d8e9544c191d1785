package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartblog/internal/dto"
	"smartblog/internal/service"
	"smartblog/pkg/response"
)

type AutocompleteHandler struct {
	service service.AutocompleteService
}

func NewAutocompleteHandler(service service.AutocompleteService) *AutocompleteHandler {
	return &AutocompleteHandler{service: service}
}

func (h *AutocompleteHandler) SuggestTerms(c *gin.Context) {
	query := c.Query("q")

	c.JSON(http.StatusOK, dto.AutocompleteResponse{
		Suggestions: h.service.SuggestTerms(query),
	})
}

func (h *AutocompleteHandler) SuggestTags(c *gin.Context) {
	query := c.Query("q")

	names, err := h.service.SuggestTagNames(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AutocompleteResponse{Suggestions: names})
}
