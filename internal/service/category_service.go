package service

import (
	"context"

	"github.com/e3lany/e3lany_api/internal/models"
)

// CategoryListStore loads the full taxonomy with ad counts.
type CategoryListStore interface {
	ListWithSubcategories(ctx context.Context) ([]models.CategoryWithChildren, error)
}

// CategoryService serves the read-only taxonomy endpoints.
type CategoryService struct {
	categories CategoryListStore
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories CategoryListStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// ListCategories returns all categories with their subcategories and active
// ad counts, ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.CategoryWithChildren, error) {
	return s.categories.ListWithSubcategories(ctx)
}
