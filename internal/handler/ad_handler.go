package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/e3lany/e3lany_api/internal/service"
	"github.com/e3lany/e3lany_api/internal/utils"
)

// AdHandler handles the ad listing, search, autocomplete, detail and
// submission endpoints.
type AdHandler struct {
	adService           *service.AdService
	autocompleteService *service.AutocompleteService
}

// NewAdHandler constructs an AdHandler.
func NewAdHandler(adService *service.AdService, autocompleteService *service.AutocompleteService) *AdHandler {
	return &AdHandler{adService: adService, autocompleteService: autocompleteService}
}

// ListAds handles GET /ads — the browse endpoint with multi-value
// location/country facets.
func (h *AdHandler) ListAds(c *gin.Context) {
	params := service.ListAdsParams{
		Page:        parseIntDefault(c.Query("page"), 1),
		Limit:       parseIntDefault(c.Query("limit"), 10),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Locations:   c.QueryArray("location"),
		Countries:   c.QueryArray("country"),
		Query:       c.Query("query"),
		MinPrice:    parseFloat(c.Query("minPrice")),
		MaxPrice:    parseFloat(c.Query("maxPrice")),
		Condition:   c.Query("condition"),
		SortBy:      mapSortAlias(c.Query("sortBy")),
	}

	result, err := h.adService.ListAds(c.Request.Context(), params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch ads")
		utils.Error(c, 500, "Internal server error")
		return
	}
	c.JSON(200, result)
}

// SearchAds handles GET /ads/search — text-driven search.
func (h *AdHandler) SearchAds(c *gin.Context) {
	params := service.SearchAdsParams{
		Query:     c.Query("q"),
		Category:  c.Query("category"),
		Location:  c.Query("location"),
		MinPrice:  parseFloat(c.Query("minPrice")),
		MaxPrice:  parseFloat(c.Query("maxPrice")),
		Condition: c.Query("condition"),
		SortBy:    c.Query("sortBy"),
		Page:      parseIntDefault(c.Query("page"), 1),
		Limit:     parseIntDefault(c.Query("limit"), 10),
	}

	result, err := h.adService.SearchAds(c.Request.Context(), params)
	if err != nil {
		log.Error().Err(err).Msg("Search failed")
		utils.Error(c, 500, "Failed to search ads")
		return
	}
	c.JSON(200, result)
}

// Autocomplete handles GET /ads/autocomplete. Queries shorter than two
// characters return empty lists, never an error.
func (h *AdHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	limit := parseIntDefault(c.Query("limit"), 8)

	result, err := h.autocompleteService.Autocomplete(c.Request.Context(), query, limit)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Autocomplete failed")
		utils.Error(c, 500, "Failed to get suggestions")
		return
	}
	c.JSON(200, result)
}

// GetAd handles GET /ads/:id — the detail fetch, which bumps the view
// counter as a side effect. Non-numeric ids behave like missing ads.
func (h *AdHandler) GetAd(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 404, "Ad not found")
		return
	}

	ad, err := h.adService.GetAd(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrAdNotFound) {
			utils.Error(c, 404, "Ad not found")
			return
		}
		log.Error().Err(err).Int("ad_id", id).Msg("Failed to fetch ad")
		utils.Error(c, 500, "Internal server error")
		return
	}
	c.JSON(200, ad)
}

// CreateAd handles POST /ads (authenticated).
func (h *AdHandler) CreateAd(c *gin.Context) {
	identity := service.Identity{
		UserID: c.GetString("user_id"),
		Email:  c.GetString("email"),
		Name:   c.GetString("name"),
		Image:  c.GetString("image"),
	}
	if identity.UserID == "" {
		utils.Error(c, 401, "Unauthorized")
		return
	}

	var req service.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	ad, err := h.adService.CreateAd(c.Request.Context(), identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrMissingFields):
			utils.Error(c, 400, "Missing required fields")
		case errors.Is(err, utils.ErrInvalidCategory):
			utils.Error(c, 400, "Invalid category")
		case errors.Is(err, utils.ErrInvalidSubcategory):
			utils.Error(c, 400, "Invalid subcategory")
		case errors.Is(err, utils.ErrInvalidCondition):
			utils.Error(c, 400, "Invalid condition")
		default:
			log.Error().Err(err).Msg("Failed to create ad")
			utils.Error(c, 500, "Internal server error")
		}
		return
	}
	c.JSON(201, ad)
}

// mapSortAlias resolves the legacy sort values accepted at the boundary.
// "popular" maps to newest, not view count.
func mapSortAlias(v string) string {
	switch v {
	case "auto", "popular":
		return "newest"
	default:
		return v
	}
}

// parseIntDefault parses v as a positive integer, falling back to def for
// empty, unparsable or non-positive input.
func parseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// parseFloat parses v as a non-negative number; unparsable or negative input
// counts as absent.
func parseFloat(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil
	}
	return &f
}
