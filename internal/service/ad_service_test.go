package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e3lany/e3lany_api/internal/models"
	"github.com/e3lany/e3lany_api/internal/utils"
)

type stubAdStore struct {
	lastFilter models.AdFilter
	listAds    []models.AdWithRelations
	listTotal  int
	listErr    error

	ad     *models.AdWithRelations
	getErr error

	incErr   error
	incCalls int

	created   *models.Ad
	createErr error
}

func (s *stubAdStore) List(_ context.Context, f models.AdFilter) ([]models.AdWithRelations, int, error) {
	s.lastFilter = f
	return s.listAds, s.listTotal, s.listErr
}

func (s *stubAdStore) GetActiveByID(_ context.Context, _ int) (*models.AdWithRelations, error) {
	return s.ad, s.getErr
}

func (s *stubAdStore) IncrementViews(_ context.Context, _ int) error {
	s.incCalls++
	return s.incErr
}

func (s *stubAdStore) Create(_ context.Context, ad *models.Ad) (*models.AdWithRelations, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = ad
	return &models.AdWithRelations{Ad: *ad, CategoryName: "إلكترونيات", CategorySlug: "electronics"}, nil
}

type stubTaxonomyStore struct {
	categories    map[string]*models.Category
	subcategories map[string]*models.SubCategory
}

func (s *stubTaxonomyStore) GetByID(_ context.Context, id string) (*models.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubTaxonomyStore) GetSubcategoryByID(_ context.Context, id string) (*models.SubCategory, error) {
	if sub, ok := s.subcategories[id]; ok {
		return sub, nil
	}
	return nil, sql.ErrNoRows
}

type stubSellerStore struct {
	ensured *models.User
}

func (s *stubSellerStore) EnsureExists(_ context.Context, u *models.User) error {
	s.ensured = u
	return nil
}

func newTestAdService(ads *stubAdStore) (*AdService, *stubTaxonomyStore, *stubSellerStore) {
	taxonomy := &stubTaxonomyStore{
		categories: map[string]*models.Category{
			"cat-electronics": {ID: "cat-electronics", Name: "إلكترونيات", Slug: "electronics"},
		},
		subcategories: map[string]*models.SubCategory{
			"sub-electronics-laptops": {ID: "sub-electronics-laptops", Slug: "laptops", CategoryID: "cat-electronics"},
			"sub-cars-sedan":          {ID: "sub-cars-sedan", Slug: "sedan", CategoryID: "cat-cars"},
		},
	}
	sellers := &stubSellerStore{}
	svc := NewAdService(ads, taxonomy, sellers)
	return svc, taxonomy, sellers
}

func strPtr(s string) *string { return &s }

func TestResolveLocationFilter(t *testing.T) {
	tests := []struct {
		name      string
		locations []string
		countries []string
		want      []string
	}{
		{"no facets", nil, nil, nil},
		{"all regions wins over everything", []string{"عمان"}, []string{"كل المناطق", "الأردن"}, nil},
		{"all cities falls back to countries", []string{"الكل"}, []string{"الأردن"}, []string{"الأردن"}},
		{"all cities without countries", []string{"الكل"}, nil, nil},
		{"specific cities beat countries", []string{"عمان", "إربد"}, []string{"الأردن"}, []string{"عمان", "إربد"}},
		{"countries alone", nil, []string{"الأردن"}, []string{"الأردن"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLocationFilter(tt.locations, tt.countries))
		})
	}
}

func TestListAdsBuildsFilter(t *testing.T) {
	store := &stubAdStore{}
	svc, _, _ := newTestAdService(store)
	min := 100.0

	_, err := svc.ListAds(context.Background(), ListAdsParams{
		Category:  "electronics",
		Locations: []string{"عمان"},
		Countries: []string{"الأردن"},
		Query:     "لابتوب",
		MinPrice:  &min,
		Condition: "new",
		SortBy:    "price-low",
	})
	require.NoError(t, err)

	f := store.lastFilter
	assert.Equal(t, "electronics", f.CategorySlug)
	assert.Equal(t, []string{"عمان"}, f.Locations)
	assert.Equal(t, "لابتوب", f.TextQuery)
	assert.Equal(t, models.AdConditionNew, f.Condition)
	assert.Equal(t, models.AdSortPriceLow, f.SortBy)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
}

func TestListAdsConditionNormalization(t *testing.T) {
	store := &stubAdStore{}
	svc, _, _ := newTestAdService(store)

	_, err := svc.ListAds(context.Background(), ListAdsParams{Condition: "all"})
	require.NoError(t, err)
	assert.Equal(t, models.AdCondition(""), store.lastFilter.Condition)

	_, err = svc.ListAds(context.Background(), ListAdsParams{Condition: "used"})
	require.NoError(t, err)
	assert.Equal(t, models.AdConditionUsed, store.lastFilter.Condition)
}

func TestListAdsUnknownSortDefaultsToNewest(t *testing.T) {
	store := &stubAdStore{}
	svc, _, _ := newTestAdService(store)

	_, err := svc.ListAds(context.Background(), ListAdsParams{SortBy: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, models.AdSortNewest, store.lastFilter.SortBy)
}

func TestListAdsPagination(t *testing.T) {
	store := &stubAdStore{listTotal: 25}
	svc, _, _ := newTestAdService(store)

	env, err := svc.ListAds(context.Background(), ListAdsParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, env.Total)
	assert.Equal(t, 2, env.Page)
	assert.True(t, env.HasNext)
	assert.True(t, env.HasPrevious)

	env, err = svc.ListAds(context.Background(), ListAdsParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.False(t, env.HasNext)
	assert.True(t, env.HasPrevious)

	env, err = svc.ListAds(context.Background(), ListAdsParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, env.Page)
	assert.Equal(t, 10, env.Limit)
	assert.False(t, env.HasPrevious)
}

func TestListAdsTransform(t *testing.T) {
	posted := time.Date(2025, 6, 12, 12, 0, 0, 0, time.UTC)
	store := &stubAdStore{
		listAds: []models.AdWithRelations{
			{
				Ad: models.Ad{
					ID:         1,
					Title:      "لابتوب مستعمل",
					Condition:  models.AdConditionUsed,
					PostedDate: posted,
				},
				CategorySlug: "electronics",
			},
		},
		listTotal: 1,
	}
	svc, _, _ := newTestAdService(store)
	svc.now = func() time.Time { return posted.Add(3 * 24 * time.Hour) }

	env, err := svc.ListAds(context.Background(), ListAdsParams{})
	require.NoError(t, err)

	data, ok := env.Data.([]models.ListedAd)
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "منذ 3 أيام", data[0].PostedDate)
	assert.Equal(t, "used", data[0].Condition)
	assert.Equal(t, "مستخدم مجهول", data[0].Seller)
	assert.Equal(t, []string{}, data[0].Images)
}

func TestSearchAdsTransform(t *testing.T) {
	created := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	store := &stubAdStore{
		listAds: []models.AdWithRelations{
			{
				Ad: models.Ad{
					ID:        2,
					Title:     "شقة للإيجار",
					Condition: models.AdConditionNew,
					Status:    models.AdStatusActive,
					CreatedAt: created,
				},
				CategorySlug: "real-estate",
				SellerName:   strPtr(""),
			},
		},
		listTotal: 1,
	}
	svc, _, _ := newTestAdService(store)

	env, err := svc.SearchAds(context.Background(), SearchAdsParams{Query: "شقة", Location: "عمان"})
	require.NoError(t, err)

	assert.Equal(t, []string{"عمان"}, store.lastFilter.Locations)

	data, ok := env.Data.([]models.SearchAd)
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, created.Format(time.RFC3339), data[0].PostedDate)
	assert.Equal(t, models.AdConditionNew, data[0].Condition)
	assert.Equal(t, "مستخدم", data[0].Seller)
	assert.Equal(t, models.AdStatusActive, data[0].Status)
}

func TestGetAdNotFound(t *testing.T) {
	store := &stubAdStore{getErr: sql.ErrNoRows}
	svc, _, _ := newTestAdService(store)

	_, err := svc.GetAd(context.Background(), 99)
	assert.ErrorIs(t, err, utils.ErrAdNotFound)
}

func TestGetAdIncrementsViews(t *testing.T) {
	store := &stubAdStore{
		ad: &models.AdWithRelations{Ad: models.Ad{ID: 1, Views: 7}},
	}
	svc, _, _ := newTestAdService(store)

	detail, err := svc.GetAd(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.incCalls)
	assert.Equal(t, 8, detail.Views)
}

func TestGetAdSurvivesIncrementFailure(t *testing.T) {
	store := &stubAdStore{
		ad:     &models.AdWithRelations{Ad: models.Ad{ID: 1, Views: 7}},
		incErr: errors.New("connection reset"),
	}
	svc, _, _ := newTestAdService(store)

	detail, err := svc.GetAd(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, detail.Views)
}

func TestCreateAdValidation(t *testing.T) {
	price := 150.0
	zero := 0.0
	valid := CreateAdRequest{
		Title:       "لابتوب",
		Description: "بحالة ممتازة",
		Price:       &price,
		Location:    "عمان",
		CategoryID:  "cat-electronics",
	}
	identity := Identity{UserID: "user-1", Email: "a@b.com"}

	tests := []struct {
		name   string
		mutate func(r *CreateAdRequest)
		want   error
	}{
		{"missing title", func(r *CreateAdRequest) { r.Title = "" }, utils.ErrMissingFields},
		{"missing price", func(r *CreateAdRequest) { r.Price = nil }, utils.ErrMissingFields},
		{"zero price", func(r *CreateAdRequest) { r.Price = &zero }, utils.ErrMissingFields},
		{"missing location", func(r *CreateAdRequest) { r.Location = "" }, utils.ErrMissingFields},
		{"unknown condition", func(r *CreateAdRequest) { r.Condition = "broken" }, utils.ErrInvalidCondition},
		{"unknown category", func(r *CreateAdRequest) { r.CategoryID = "cat-nope" }, utils.ErrInvalidCategory},
		{"unknown subcategory", func(r *CreateAdRequest) { r.SubcategoryID = "sub-nope" }, utils.ErrInvalidSubcategory},
		{"subcategory from another category", func(r *CreateAdRequest) { r.SubcategoryID = "sub-cars-sedan" }, utils.ErrInvalidSubcategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAdService(&stubAdStore{})
			req := valid
			tt.mutate(&req)
			_, err := svc.CreateAd(context.Background(), identity, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateAdDefaults(t *testing.T) {
	price := 150.0
	store := &stubAdStore{}
	svc, _, sellers := newTestAdService(store)

	detail, err := svc.CreateAd(context.Background(), Identity{UserID: "user-1", Email: "a@b.com", Name: "أحمد"}, &CreateAdRequest{
		Title:       "لابتوب",
		Description: "بحالة ممتازة",
		Price:       &price,
		Location:    "عمان",
		CategoryID:  "cat-electronics",
	})
	require.NoError(t, err)

	require.NotNil(t, store.created)
	assert.Equal(t, models.AdConditionUsed, store.created.Condition)
	assert.Equal(t, "USD", store.created.Currency)
	assert.Equal(t, models.AdStatusActive, store.created.Status)
	assert.NotNil(t, store.created.Images)
	assert.Empty(t, store.created.Images)
	assert.Equal(t, "user-1", store.created.SellerID)

	require.NotNil(t, sellers.ensured)
	assert.Equal(t, "user-1", sellers.ensured.ID)
	require.NotNil(t, sellers.ensured.Name)
	assert.Equal(t, "أحمد", *sellers.ensured.Name)

	assert.Equal(t, "electronics", detail.Category.Slug)
}
