package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/e3lany/e3lany_api/internal/models"
)

// CategoryRepository handles data access for the category taxonomy.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetByID returns a category by id, or sql.ErrNoRows.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	const query = `
		SELECT id, name, slug, image, icon, description, created_at, updated_at
		FROM categories WHERE id = $1`

	var c models.Category
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetSubcategoryByID returns a subcategory by id, or sql.ErrNoRows.
func (r *CategoryRepository) GetSubcategoryByID(ctx context.Context, id string) (*models.SubCategory, error) {
	const query = `
		SELECT id, name, slug, category_id, count, created_at, updated_at
		FROM subcategories WHERE id = $1`

	var s models.SubCategory
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		return nil, err
	}
	return &s, nil
}

type categoryWithCountRow struct {
	models.Category
	AdsCount int `db:"ads_count"`
}

// ListWithSubcategories returns all categories ordered by name, each with its
// subcategories and the count of ACTIVE ads.
func (r *CategoryRepository) ListWithSubcategories(ctx context.Context) ([]models.CategoryWithChildren, error) {
	const categoriesQuery = `
		SELECT c.id, c.name, c.slug, c.image, c.icon, c.description, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM ads a WHERE a.category_id = c.id AND a.status = 'ACTIVE') AS ads_count
		FROM categories c
		ORDER BY c.name ASC`

	var rows []categoryWithCountRow
	if err := r.db.SelectContext(ctx, &rows, categoriesQuery); err != nil {
		return nil, err
	}

	const subcategoriesQuery = `
		SELECT id, name, slug, category_id, count, created_at, updated_at
		FROM subcategories
		ORDER BY name ASC`

	var subs []models.SubCategory
	if err := r.db.SelectContext(ctx, &subs, subcategoriesQuery); err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.SubCategory, len(rows))
	for _, s := range subs {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], s)
	}

	out := make([]models.CategoryWithChildren, 0, len(rows))
	for _, row := range rows {
		children := byCategory[row.ID]
		if children == nil {
			children = []models.SubCategory{}
		}
		out = append(out, models.CategoryWithChildren{
			ID:            row.ID,
			Name:          row.Name,
			Slug:          row.Slug,
			Image:         row.Image,
			Icon:          row.Icon,
			Description:   row.Description,
			Subcategories: children,
			AdsCount:      row.AdsCount,
		})
	}
	return out, nil
}

// SearchSuggestions returns up to limit categories whose name, or one of
// whose subcategory names, contains the query. Each result carries only the
// subcategory names that matched.
func (r *CategoryRepository) SearchSuggestions(ctx context.Context, query string, limit int) ([]models.CategorySuggestion, error) {
	const q = `
		WITH matched AS (
			SELECT c.id, c.name
			FROM categories c
			WHERE c.name ILIKE '%' || $1 || '%'
			   OR EXISTS (
				SELECT 1 FROM subcategories s
				WHERE s.category_id = c.id AND s.name ILIKE '%' || $1 || '%'
			   )
			ORDER BY c.name
			LIMIT $2
		)
		SELECT m.name AS category_name, s.name AS subcategory_name
		FROM matched m
		LEFT JOIN subcategories s
		  ON s.category_id = m.id AND s.name ILIKE '%' || $1 || '%'
		ORDER BY m.name, s.name`

	rows, err := r.db.QueryContext(ctx, q, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CategorySuggestion
	index := make(map[string]int)
	for rows.Next() {
		var categoryName string
		var subcategoryName *string
		if err := rows.Scan(&categoryName, &subcategoryName); err != nil {
			return nil, err
		}
		i, ok := index[categoryName]
		if !ok {
			out = append(out, models.CategorySuggestion{Name: categoryName})
			i = len(out) - 1
			index[categoryName] = i
		}
		if subcategoryName != nil {
			out[i].Subcategories = append(out[i].Subcategories, *subcategoryName)
		}
	}
	return out, rows.Err()
}

// RefreshSubcategoryCounts recomputes the precomputed active-ad count on
// every subcategory. Invoked periodically by the count sync worker.
func (r *CategoryRepository) RefreshSubcategoryCounts(ctx context.Context) error {
	const query = `
		UPDATE subcategories s
		SET count = (
			SELECT COUNT(*) FROM ads a
			WHERE a.subcategory_id = s.id AND a.status = 'ACTIVE'
		), updated_at = now()`

	_, err := r.db.ExecContext(ctx, query)
	return err
}
