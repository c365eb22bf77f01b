package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e3lany/e3lany_api/internal/models"
	"github.com/e3lany/e3lany_api/internal/service"
)

type fakeAdStore struct {
	lastFilter models.AdFilter
	ads        []models.AdWithRelations
	total      int
}

func (s *fakeAdStore) List(_ context.Context, f models.AdFilter) ([]models.AdWithRelations, int, error) {
	s.lastFilter = f
	return s.ads, s.total, nil
}

func (s *fakeAdStore) GetActiveByID(_ context.Context, _ int) (*models.AdWithRelations, error) {
	return nil, sql.ErrNoRows
}

func (s *fakeAdStore) IncrementViews(_ context.Context, _ int) error { return nil }

func (s *fakeAdStore) Create(_ context.Context, ad *models.Ad) (*models.AdWithRelations, error) {
	return &models.AdWithRelations{Ad: *ad}, nil
}

func (s *fakeAdStore) SearchTitles(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, nil
}

type fakeTaxonomyStore struct{}

func (fakeTaxonomyStore) GetByID(_ context.Context, _ string) (*models.Category, error) {
	return nil, sql.ErrNoRows
}

func (fakeTaxonomyStore) GetSubcategoryByID(_ context.Context, _ string) (*models.SubCategory, error) {
	return nil, sql.ErrNoRows
}

func (fakeTaxonomyStore) SearchSuggestions(_ context.Context, _ string, _ int) ([]models.CategorySuggestion, error) {
	return nil, nil
}

type fakeSellerStore struct{}

func (fakeSellerStore) EnsureExists(_ context.Context, _ *models.User) error { return nil }

func newTestRouter(store *fakeAdStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	adSvc := service.NewAdService(store, fakeTaxonomyStore{}, fakeSellerStore{})
	autocompleteSvc := service.NewAutocompleteService(store, fakeTaxonomyStore{}, nil)
	h := NewAdHandler(adSvc, autocompleteSvc)

	router := gin.New()
	router.GET("/ads", h.ListAds)
	router.GET("/ads/search", h.SearchAds)
	router.GET("/ads/autocomplete", h.Autocomplete)
	router.GET("/ads/:id", h.GetAd)
	router.POST("/ads", func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		c.Set("email", "a@b.com")
	}, h.CreateAd)
	return router
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListAdsEnvelope(t *testing.T) {
	store := &fakeAdStore{total: 25}
	router := newTestRouter(store)

	w := doRequest(router, http.MethodGet, "/ads?page=2&limit=10", "")
	require.Equal(t, 200, w.Code)

	var env models.ListEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 25, env.Total)
	assert.Equal(t, 2, env.Page)
	assert.Equal(t, 10, env.Limit)
	assert.True(t, env.HasNext)
	assert.True(t, env.HasPrevious)
}

func TestListAdsIgnoresUnparsableParams(t *testing.T) {
	store := &fakeAdStore{}
	router := newTestRouter(store)

	w := doRequest(router, http.MethodGet, "/ads?page=abc&limit=-5&minPrice=cheap", "")
	require.Equal(t, 200, w.Code)

	assert.Equal(t, 1, store.lastFilter.Page)
	assert.Equal(t, 10, store.lastFilter.Limit)
	assert.Nil(t, store.lastFilter.MinPrice)
}

func TestListAdsSortAliases(t *testing.T) {
	store := &fakeAdStore{}
	router := newTestRouter(store)

	for _, alias := range []string{"auto", "popular"} {
		w := doRequest(router, http.MethodGet, "/ads?sortBy="+alias, "")
		require.Equal(t, 200, w.Code)
		assert.Equal(t, models.AdSortNewest, store.lastFilter.SortBy)
	}

	w := doRequest(router, http.MethodGet, "/ads?sortBy=price-high", "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, models.AdSortPriceHigh, store.lastFilter.SortBy)
}

func TestListAdsMultiValueFacets(t *testing.T) {
	store := &fakeAdStore{}
	router := newTestRouter(store)

	w := doRequest(router, http.MethodGet, "/ads?location=%D8%B9%D9%85%D8%A7%D9%86&location=%D8%A5%D8%B1%D8%A8%D8%AF", "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, []string{"عمان", "إربد"}, store.lastFilter.Locations)
}

func TestGetAdNotFound(t *testing.T) {
	router := newTestRouter(&fakeAdStore{})

	for _, target := range []string{"/ads/999", "/ads/abc"} {
		w := doRequest(router, http.MethodGet, target, "")
		require.Equal(t, 404, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Ad not found", body["error"])
	}
}

func TestAutocompleteShortQuery(t *testing.T) {
	router := newTestRouter(&fakeAdStore{})

	w := doRequest(router, http.MethodGet, "/ads/autocomplete?q=a", "")
	require.Equal(t, 200, w.Code)

	var result service.AutocompleteResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.Ads)
}

func TestCreateAdRequiresIdentity(t *testing.T) {
	router := newTestRouter(&fakeAdStore{})

	w := doRequest(router, http.MethodPost, "/ads", `{"title":"x"}`)
	require.Equal(t, 401, w.Code)
}

func TestCreateAdMissingFields(t *testing.T) {
	router := newTestRouter(&fakeAdStore{})

	req := httptest.NewRequest(http.MethodPost, "/ads", strings.NewReader(`{"title":"لابتوب"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 400, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Missing required fields", body["error"])
}
