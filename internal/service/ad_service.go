package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/e3lany/e3lany_api/internal/models"
	"github.com/e3lany/e3lany_api/internal/utils"
)

// Sentinel facet values sent by the filters UI. The all-regions sentinel
// disables the location filter outright; the all-cities sentinel falls back
// to country-level matching.
const (
	allRegionsSentinel = "كل المناطق"
	allCitiesSentinel  = "الكل"
)

// AdStore abstracts ad persistence for the service layer.
type AdStore interface {
	List(ctx context.Context, f models.AdFilter) ([]models.AdWithRelations, int, error)
	GetActiveByID(ctx context.Context, id int) (*models.AdWithRelations, error)
	IncrementViews(ctx context.Context, id int) error
	Create(ctx context.Context, ad *models.Ad) (*models.AdWithRelations, error)
}

// TaxonomyStore provides the category lookups needed to validate submissions.
type TaxonomyStore interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetSubcategoryByID(ctx context.Context, id string) (*models.SubCategory, error)
}

// SellerStore creates seller rows lazily from identity claims.
type SellerStore interface {
	EnsureExists(ctx context.Context, u *models.User) error
}

// AdService implements ad listing, search, detail and submission.
type AdService struct {
	ads        AdStore
	categories TaxonomyStore
	users      SellerStore

	now func() time.Time
}

// NewAdService constructs an AdService.
func NewAdService(ads AdStore, categories TaxonomyStore, users SellerStore) *AdService {
	return &AdService{
		ads:        ads,
		categories: categories,
		users:      users,
		now:        time.Now,
	}
}

// ListAdsParams is the raw parameter set of the listing endpoint. Numeric
// parameters arrive pre-parsed by the handler; unparsable values were already
// dropped there, so absent means default.
type ListAdsParams struct {
	Page        int
	Limit       int
	Category    string
	Subcategory string
	Locations   []string
	Countries   []string
	Query       string
	MinPrice    *float64
	MaxPrice    *float64
	Condition   string
	SortBy      string
}

// SearchAdsParams is the raw parameter set of the search endpoint.
type SearchAdsParams struct {
	Query     string
	Category  string
	Location  string
	MinPrice  *float64
	MaxPrice  *float64
	Condition string
	SortBy    string
	Page      int
	Limit     int
}

// Identity is the authenticated caller as asserted by the identity provider.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Image  string
}

// CreateAdRequest is the ad submission body.
type CreateAdRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	Currency      string   `json:"currency"`
	Location      string   `json:"location"`
	CategoryID    string   `json:"categoryId"`
	SubcategoryID string   `json:"subcategoryId"`
	Condition     string   `json:"condition"`
	IsNegotiable  bool     `json:"isNegotiable"`
	Phone         string   `json:"phone"`
	Images        []string `json:"images"`
}

// ListAds executes the browse query and returns one page of listing-shaped
// ads with pagination metadata.
func (s *AdService) ListAds(ctx context.Context, p ListAdsParams) (*models.ListEnvelope, error) {
	page, limit := normalizePage(p.Page, p.Limit)
	filter := models.AdFilter{
		TextQuery:       p.Query,
		CategorySlug:    p.Category,
		SubcategorySlug: p.Subcategory,
		Locations:       resolveLocationFilter(p.Locations, p.Countries),
		MinPrice:        p.MinPrice,
		MaxPrice:        p.MaxPrice,
		Condition:       normalizeCondition(p.Condition),
		SortBy:          normalizeSort(p.SortBy),
		Page:            page,
		Limit:           limit,
	}

	ads, total, err := s.ads.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	data := make([]models.ListedAd, 0, len(ads))
	for i := range ads {
		data = append(data, toListedAd(&ads[i], now))
	}
	return envelope(data, total, page, limit), nil
}

// SearchAds executes the text-driven search query and returns one page of
// search-shaped ads with pagination metadata.
func (s *AdService) SearchAds(ctx context.Context, p SearchAdsParams) (*models.ListEnvelope, error) {
	page, limit := normalizePage(p.Page, p.Limit)
	var locations []string
	if p.Location != "" {
		locations = []string{p.Location}
	}
	filter := models.AdFilter{
		TextQuery:    p.Query,
		CategorySlug: p.Category,
		Locations:    locations,
		MinPrice:     p.MinPrice,
		MaxPrice:     p.MaxPrice,
		Condition:    normalizeCondition(p.Condition),
		SortBy:       normalizeSort(p.SortBy),
		Page:         page,
		Limit:        limit,
	}

	ads, total, err := s.ads.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]models.SearchAd, 0, len(ads))
	for i := range ads {
		data = append(data, toSearchAd(&ads[i]))
	}
	return envelope(data, total, page, limit), nil
}

// GetAd returns one ACTIVE ad with relations and bumps its view counter.
// A failed increment is logged but does not fail the fetch.
func (s *AdService) GetAd(ctx context.Context, id int) (*models.AdDetail, error) {
	ad, err := s.ads.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrAdNotFound
		}
		return nil, err
	}

	if err := s.ads.IncrementViews(ctx, id); err != nil {
		log.Warn().Err(err).Int("ad_id", id).Msg("Failed to increment ad views")
	} else {
		ad.Views++
	}
	return ad.Detail(), nil
}

// CreateAd validates and stores a new ad on behalf of the authenticated
// seller, creating the seller row from identity claims when missing.
func (s *AdService) CreateAd(ctx context.Context, identity Identity, req *CreateAdRequest) (*models.AdDetail, error) {
	if req.Title == "" || req.Description == "" || req.Price == nil || *req.Price <= 0 ||
		req.CategoryID == "" || req.Location == "" {
		return nil, utils.ErrMissingFields
	}

	condition := models.AdConditionUsed
	if req.Condition != "" {
		condition = models.AdCondition(strings.ToUpper(req.Condition))
	}
	if !models.ValidAdCondition(condition) {
		return nil, utils.ErrInvalidCondition
	}

	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrInvalidCategory
		}
		return nil, err
	}

	var subcategoryID *string
	if req.SubcategoryID != "" {
		sub, err := s.categories.GetSubcategoryByID(ctx, req.SubcategoryID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.ErrInvalidSubcategory
			}
			return nil, err
		}
		// The subcategory must belong to the declared category.
		if sub.CategoryID != req.CategoryID {
			return nil, utils.ErrInvalidSubcategory
		}
		subcategoryID = &req.SubcategoryID
	}

	seller := &models.User{
		ID:    identity.UserID,
		Email: identity.Email,
		Name:  optional(identity.Name),
		Image: optional(identity.Image),
	}
	if err := s.users.EnsureExists(ctx, seller); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	ad := &models.Ad{
		Title:         req.Title,
		Description:   req.Description,
		Price:         *req.Price,
		Currency:      currency,
		Location:      req.Location,
		Condition:     condition,
		IsNegotiable:  req.IsNegotiable,
		Phone:         optional(req.Phone),
		Images:        images,
		Status:        models.AdStatusActive,
		CategoryID:    req.CategoryID,
		SubcategoryID: subcategoryID,
		SellerID:      identity.UserID,
	}

	created, err := s.ads.Create(ctx, ad)
	if err != nil {
		return nil, err
	}
	return created.Detail(), nil
}

// resolveLocationFilter reduces the location/country facets to the list of
// substrings the predicate should OR-match, or nil for no restriction.
// Priority: the all-regions sentinel wins outright; the all-cities sentinel
// defers to country matching; specific cities beat countries.
func resolveLocationFilter(locations, countries []string) []string {
	if containsString(countries, allRegionsSentinel) {
		return nil
	}
	if containsString(locations, allCitiesSentinel) {
		if len(countries) > 0 {
			return countries
		}
		return nil
	}
	if len(locations) > 0 {
		return locations
	}
	if len(countries) > 0 {
		return countries
	}
	return nil
}

// normalizeCondition maps the raw condition parameter onto the stored enum.
// Empty and the literal "all" mean no filter.
func normalizeCondition(v string) models.AdCondition {
	if v == "" || v == "all" {
		return ""
	}
	return models.AdCondition(strings.ToUpper(v))
}

// normalizeSort maps the raw sortBy parameter onto a known sort order,
// defaulting to newest. Legacy aliases are resolved at the handler boundary
// before this runs.
func normalizeSort(v string) models.AdSort {
	switch s := models.AdSort(v); s {
	case models.AdSortNewest, models.AdSortOldest, models.AdSortPriceLow, models.AdSortPriceHigh:
		return s
	default:
		return models.AdSortNewest
	}
}

// normalizePage applies the documented defaults: page 1, limit 10.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// envelope wraps a result page in the standard pagination envelope.
func envelope(data interface{}, total, page, limit int) *models.ListEnvelope {
	offset := (page - 1) * limit
	return &models.ListEnvelope{
		Data:        data,
		Total:       total,
		Page:        page,
		Limit:       limit,
		HasNext:     offset+limit < total,
		HasPrevious: page > 1,
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
