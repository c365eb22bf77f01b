package models

import (
	"time"

	"github.com/lib/pq"
)

// AdCondition enumerates the supported ad conditions.
type AdCondition string

const (
	AdConditionNew         AdCondition = "NEW"
	AdConditionUsed        AdCondition = "USED"
	AdConditionRefurbished AdCondition = "REFURBISHED"
)

// ValidAdCondition reports whether v is a known condition value.
func ValidAdCondition(v AdCondition) bool {
	switch v {
	case AdConditionNew, AdConditionUsed, AdConditionRefurbished:
		return true
	}
	return false
}

// AdStatus enumerates the lifecycle states of an ad. Only ACTIVE ads are
// visible in search and listing results.
type AdStatus string

const (
	AdStatusActive  AdStatus = "ACTIVE"
	AdStatusSold    AdStatus = "SOLD"
	AdStatusExpired AdStatus = "EXPIRED"
	AdStatusDeleted AdStatus = "DELETED"
)

// AdSort enumerates the supported sort orders for ad queries.
type AdSort string

const (
	AdSortNewest    AdSort = "newest"
	AdSortOldest    AdSort = "oldest"
	AdSortPriceLow  AdSort = "price-low"
	AdSortPriceHigh AdSort = "price-high"
)

// Ad represents a classified listing as stored.
type Ad struct {
	ID            int            `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Description   string         `db:"description" json:"description"`
	Price         float64        `db:"price" json:"price"`
	Currency      string         `db:"currency" json:"currency"`
	Location      string         `db:"location" json:"location"`
	Condition     AdCondition    `db:"condition" json:"condition"`
	IsNegotiable  bool           `db:"is_negotiable" json:"isNegotiable"`
	Phone         *string        `db:"phone" json:"phone,omitempty"`
	Image         *string        `db:"image" json:"image,omitempty"`
	Images        pq.StringArray `db:"images" json:"images"`
	Status        AdStatus       `db:"status" json:"status"`
	Views         int            `db:"views" json:"views"`
	Featured      bool           `db:"featured" json:"featured"`
	CategoryID    string         `db:"category_id" json:"categoryId"`
	SubcategoryID *string        `db:"subcategory_id" json:"subcategoryId,omitempty"`
	SellerID      string         `db:"seller_id" json:"sellerId"`
	PostedDate    time.Time      `db:"posted_date" json:"postedDate"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updatedAt"`
}

// AdWithRelations is an Ad joined with its category, subcategory and seller.
type AdWithRelations struct {
	Ad
	CategoryName    string  `db:"category_name" json:"-"`
	CategorySlug    string  `db:"category_slug" json:"-"`
	SubcategoryName *string `db:"subcategory_name" json:"-"`
	SubcategorySlug *string `db:"subcategory_slug" json:"-"`
	SellerName      *string `db:"seller_name" json:"-"`
	SellerImage     *string `db:"seller_image" json:"-"`
}

// AdDetail is the nested-relations shape returned by ad creation and the
// ad detail endpoint.
type AdDetail struct {
	Ad
	Category    CategoryRef     `json:"category"`
	Subcategory *SubCategoryRef `json:"subcategory,omitempty"`
	Seller      SellerRef       `json:"seller"`
}

// SellerRef is the seller projection embedded in AdDetail.
type SellerRef struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// Detail converts a joined row into the nested AdDetail shape.
func (a *AdWithRelations) Detail() *AdDetail {
	d := &AdDetail{
		Ad: a.Ad,
		Category: CategoryRef{
			ID:   a.CategoryID,
			Name: a.CategoryName,
			Slug: a.CategorySlug,
		},
		Seller: SellerRef{
			ID:    a.SellerID,
			Name:  a.SellerName,
			Image: a.SellerImage,
		},
	}
	if a.SubcategoryID != nil && a.SubcategorySlug != nil {
		d.Subcategory = &SubCategoryRef{
			ID:   *a.SubcategoryID,
			Name: derefOr(a.SubcategoryName, ""),
			Slug: *a.SubcategorySlug,
		}
	}
	return d
}

// SearchAd is the flattened ad shape returned by the search and autocomplete
// endpoints: relation objects collapsed to scalars, postedDate as the
// creation timestamp in RFC 3339.
type SearchAd struct {
	ID            int         `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Price         float64     `json:"price"`
	Currency      string      `json:"currency"`
	Location      string      `json:"location"`
	CategoryID    string      `json:"categoryId"`
	SubcategoryID *string     `json:"subcategoryId"`
	Category      string      `json:"category"`
	Subcategory   *string     `json:"subcategory,omitempty"`
	Image         *string     `json:"image"`
	Images        []string    `json:"images"`
	PostedDate    string      `json:"postedDate"`
	Seller        string      `json:"seller"`
	SellerImage   *string     `json:"sellerImage"`
	SellerID      string      `json:"sellerId"`
	Featured      bool        `json:"featured"`
	Condition     AdCondition `json:"condition"`
	Views         int         `json:"views"`
	IsNegotiable  bool        `json:"isNegotiable"`
	Phone         *string     `json:"phone"`
	Status        AdStatus    `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// ListedAd is the flattened ad shape returned by the listing endpoint:
// postedDate rendered as an Arabic relative-time string and condition
// lower-cased for display.
type ListedAd struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	Location      string   `json:"location"`
	CategoryID    string   `json:"categoryId"`
	SubcategoryID *string  `json:"subcategoryId,omitempty"`
	Category      string   `json:"category"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	Image         *string  `json:"image,omitempty"`
	Images        []string `json:"images"`
	PostedDate    string   `json:"postedDate"`
	Seller        string   `json:"seller"`
	SellerImage   *string  `json:"sellerImage,omitempty"`
	SellerID      string   `json:"sellerId"`
	Featured      bool     `json:"featured"`
	Condition     string   `json:"condition"`
	Views         int      `json:"views"`
	IsNegotiable  bool     `json:"isNegotiable"`
	Phone         *string  `json:"phone,omitempty"`
}

// AdFilter is the resolved input to the ads query builder. Identical filters
// always produce an identical predicate and order.
type AdFilter struct {
	TextQuery       string
	CategorySlug    string
	SubcategorySlug string
	// Locations holds OR-matched substrings against the ad location field.
	// Empty means no location restriction.
	Locations []string
	MinPrice  *float64
	MaxPrice  *float64
	// Condition is the normalized enum value; empty means no filter.
	Condition AdCondition
	SortBy    AdSort
	Page      int
	Limit     int
}

// ListEnvelope is the standard paginated response wrapper.
type ListEnvelope struct {
	Data        interface{} `json:"data"`
	Total       int         `json:"total"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
	HasNext     bool        `json:"hasNext"`
	HasPrevious bool        `json:"hasPrevious"`
}

func derefOr(s *string, def string) string {
	if s != nil {
		return *s
	}
	return def
}
