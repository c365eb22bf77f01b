package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/e3lany/e3lany_api/internal/models"
)

// adColumns selects the ad row plus the joined relation projections used by
// the response transforms.
const adColumns = `
	a.id, a.title, a.description, a.price, a.currency, a.location,
	a.condition, a.is_negotiable, a.phone, a.image, a.images,
	a.status, a.views, a.featured,
	a.category_id, a.subcategory_id, a.seller_id,
	a.posted_date, a.created_at, a.updated_at,
	c.name AS category_name, c.slug AS category_slug,
	s.name AS subcategory_name, s.slug AS subcategory_slug,
	u.name AS seller_name, u.image AS seller_image`

const adJoins = `
	FROM ads a
	JOIN categories c ON c.id = a.category_id
	LEFT JOIN subcategories s ON s.id = a.subcategory_id
	JOIN users u ON u.id = a.seller_id`

// AdRepository handles data access for ads.
type AdRepository struct {
	db *sqlx.DB
}

// NewAdRepository creates a new AdRepository.
func NewAdRepository(db *sqlx.DB) *AdRepository {
	return &AdRepository{db: db}
}

// List returns one page of ads matching the filter plus the total match
// count independent of pagination.
func (r *AdRepository) List(ctx context.Context, f models.AdFilter) ([]models.AdWithRelations, int, error) {
	where := buildAdWhere(f)

	countQuery := r.db.Rebind(`SELECT COUNT(*) ` + adJoins + ` WHERE ` + where.clause())
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, where.args...); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	listQuery := r.db.Rebind(`SELECT ` + adColumns + adJoins + ` WHERE ` + where.clause() +
		` ORDER BY ` + orderClause(f.SortBy) + ` LIMIT ? OFFSET ?`)
	args := append(append([]interface{}{}, where.args...), f.Limit, offset)

	ads := make([]models.AdWithRelations, 0, f.Limit)
	if err := r.db.SelectContext(ctx, &ads, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// GetActiveByID returns a single ACTIVE ad with relations, or sql.ErrNoRows.
func (r *AdRepository) GetActiveByID(ctx context.Context, id int) (*models.AdWithRelations, error) {
	query := `SELECT ` + adColumns + adJoins + ` WHERE a.id = $1 AND a.status = $2`

	var ad models.AdWithRelations
	if err := r.db.GetContext(ctx, &ad, query, id, string(models.AdStatusActive)); err != nil {
		return nil, err
	}
	return &ad, nil
}

// IncrementViews bumps the view counter. The increment happens inside the
// database, so concurrent viewers never lose updates.
func (r *AdRepository) IncrementViews(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE ads SET views = views + 1 WHERE id = $1`, id)
	return err
}

// Create inserts a new ad and returns it with relations loaded.
func (r *AdRepository) Create(ctx context.Context, ad *models.Ad) (*models.AdWithRelations, error) {
	const query = `
		INSERT INTO ads (
			title, description, price, currency, location, condition,
			is_negotiable, phone, image, images, status,
			category_id, subcategory_id, seller_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		ad.Title, ad.Description, ad.Price, ad.Currency, ad.Location, string(ad.Condition),
		ad.IsNegotiable, ad.Phone, ad.Image, ad.Images, string(ad.Status),
		ad.CategoryID, ad.SubcategoryID, ad.SellerID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetActiveByID(ctx, id)
}

// SearchTitles returns distinct ACTIVE ad titles containing the query,
// matched case-insensitively, capped at limit.
func (r *AdRepository) SearchTitles(ctx context.Context, query string, limit int) ([]string, error) {
	const q = `
		SELECT DISTINCT title FROM ads
		WHERE status = $1 AND title ILIKE '%' || $2 || '%'
		ORDER BY title
		LIMIT $3`

	titles := make([]string, 0, limit)
	if err := r.db.SelectContext(ctx, &titles, q, string(models.AdStatusActive), query, limit); err != nil {
		return nil, err
	}
	return titles, nil
}
