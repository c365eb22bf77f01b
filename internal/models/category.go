package models

import "time"

// Category is a top-level taxonomy node.
type Category struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Image       *string   `db:"image" json:"image,omitempty"`
	Icon        *string   `db:"icon" json:"icon,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// SubCategory is a child taxonomy node. Count is the precomputed number of
// active ads, maintained by the count sync worker.
type SubCategory struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Slug       string    `db:"slug" json:"slug"`
	CategoryID string    `db:"category_id" json:"categoryId"`
	Count      int       `db:"count" json:"count"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
	UpdatedAt  time.Time `db:"updated_at" json:"-"`
}

// CategoryRef is the category projection embedded in AdDetail.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SubCategoryRef is the subcategory projection embedded in AdDetail.
type SubCategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryWithChildren is the taxonomy shape returned by the categories
// endpoint, including the aggregate count of active ads.
type CategoryWithChildren struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Image         *string       `json:"image"`
	Icon          *string       `json:"icon,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Subcategories []SubCategory `json:"subcategories"`
	AdsCount      int           `json:"adsCount"`
}

// CategorySuggestion is a category name with the subcategory names that
// matched an autocomplete query.
type CategorySuggestion struct {
	Name          string
	Subcategories []string
}
