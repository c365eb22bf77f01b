package repository

import (
	"strings"

	"github.com/e3lany/e3lany_api/internal/models"
)

// adWhere assembles the WHERE clause for ad queries out of typed clauses
// combined with AND. Clauses use ? placeholders; callers rebind the final
// query for PostgreSQL, so argument order alone determines numbering and the
// same filter always renders the same predicate.
type adWhere struct {
	exprs []string
	args  []interface{}
}

// and appends a predicate ANDed with the existing clauses.
func (w *adWhere) and(expr string, args ...interface{}) {
	w.exprs = append(w.exprs, expr)
	w.args = append(w.args, args...)
}

// or appends a group of predicates OR-combined inside parentheses. The group
// as a whole is still ANDed with the other clauses, which keeps
// (locationA OR locationB) AND (titleMatch OR descriptionMatch) from
// collapsing into a single OR list when both facets are present.
func (w *adWhere) or(exprs []string, args ...interface{}) {
	if len(exprs) == 0 {
		return
	}
	w.and("("+strings.Join(exprs, " OR ")+")", args...)
}

// clause renders the assembled predicate without the WHERE keyword.
func (w *adWhere) clause() string {
	return strings.Join(w.exprs, " AND ")
}

// buildAdWhere translates an AdFilter into the predicate for ad queries.
// Only ACTIVE ads are ever matched.
func buildAdWhere(f models.AdFilter) *adWhere {
	w := &adWhere{}
	w.and("a.status = ?", string(models.AdStatusActive))
	if f.CategorySlug != "" {
		w.and("c.slug = ?", f.CategorySlug)
	}
	if f.SubcategorySlug != "" {
		w.and("s.slug = ?", f.SubcategorySlug)
	}
	if len(f.Locations) > 0 {
		exprs := make([]string, 0, len(f.Locations))
		args := make([]interface{}, 0, len(f.Locations))
		for _, loc := range f.Locations {
			exprs = append(exprs, "a.location ILIKE '%' || ? || '%'")
			args = append(args, loc)
		}
		w.or(exprs, args...)
	}
	if f.TextQuery != "" {
		w.or([]string{
			"a.title ILIKE '%' || ? || '%'",
			"a.description ILIKE '%' || ? || '%'",
		}, f.TextQuery, f.TextQuery)
	}
	if f.MinPrice != nil {
		w.and("a.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.and("a.price <= ?", *f.MaxPrice)
	}
	if f.Condition != "" {
		w.and("a.condition = ?", string(f.Condition))
	}
	return w
}

// orderClause maps a sort directive onto the ORDER BY expression. Ties within
// the sort key keep storage order.
func orderClause(s models.AdSort) string {
	switch s {
	case models.AdSortOldest:
		return "a.created_at ASC"
	case models.AdSortPriceLow:
		return "a.price ASC"
	case models.AdSortPriceHigh:
		return "a.price DESC"
	default:
		return "a.created_at DESC"
	}
}
