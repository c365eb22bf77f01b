package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/e3lany/e3lany_api/internal/service"
	"github.com/e3lany/e3lany_api/internal/utils"
)

// CategoryHandler handles the read-only taxonomy endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch categories")
		utils.Error(c, 500, "Internal server error")
		return
	}
	c.JSON(200, categories)
}
