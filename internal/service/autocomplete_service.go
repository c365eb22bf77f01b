package service

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/e3lany/e3lany_api/internal/models"
)

const (
	// minQueryRunes is the minimum query length before any lookup runs.
	// Shorter queries short-circuit to empty results without touching the
	// store.
	minQueryRunes = 2

	maxTitleSuggestions    = 5
	maxCategorySuggestions = 3
	maxSuggestions         = 5
	defaultPreviewLimit    = 8
)

// AutocompleteAdStore provides the two ad lookups autocomplete needs.
type AutocompleteAdStore interface {
	List(ctx context.Context, f models.AdFilter) ([]models.AdWithRelations, int, error)
	SearchTitles(ctx context.Context, query string, limit int) ([]string, error)
}

// CategorySuggester finds taxonomy entries matching a partial query.
type CategorySuggester interface {
	SearchSuggestions(ctx context.Context, query string, limit int) ([]models.CategorySuggestion, error)
}

// ResultCache caches assembled autocomplete responses. A nil cache disables
// caching; cache failures degrade to direct lookups.
type ResultCache interface {
	Get(ctx context.Context, query string, limit int, out interface{}) (bool, error)
	Set(ctx context.Context, query string, limit int, value interface{}) error
}

// AutocompleteResult is the autocomplete response body.
type AutocompleteResult struct {
	Suggestions []string          `json:"suggestions"`
	Ads         []models.SearchAd `json:"ads"`
}

// AutocompleteService assembles typeahead suggestions and a preview result
// page for the search box.
type AutocompleteService struct {
	ads        AutocompleteAdStore
	categories CategorySuggester
	cache      ResultCache
}

// NewAutocompleteService constructs an AutocompleteService. cache may be nil.
func NewAutocompleteService(ads AutocompleteAdStore, categories CategorySuggester, cache ResultCache) *AutocompleteService {
	return &AutocompleteService{ads: ads, categories: categories, cache: cache}
}

// Autocomplete runs the three lookups (distinct titles, taxonomy matches,
// preview ads) concurrently and joins them into one response. All three must
// succeed; any failure fails the request. Suggestions are deduplicated and
// capped, ad titles taking priority over taxonomy names.
func (s *AutocompleteService) Autocomplete(ctx context.Context, query string, limit int) (*AutocompleteResult, error) {
	if limit < 1 {
		limit = defaultPreviewLimit
	}
	if utf8.RuneCountInString(query) < minQueryRunes {
		return &AutocompleteResult{Suggestions: []string{}, Ads: []models.SearchAd{}}, nil
	}

	if s.cache != nil {
		var cached AutocompleteResult
		hit, err := s.cache.Get(ctx, query, limit, &cached)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("Autocomplete cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	var (
		titles     []string
		categories []models.CategorySuggestion
		preview    []models.AdWithRelations
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		titles, err = s.ads.SearchTitles(gctx, query, maxTitleSuggestions)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.SearchSuggestions(gctx, query, maxCategorySuggestions)
		return err
	})
	g.Go(func() error {
		var err error
		preview, _, err = s.ads.List(gctx, models.AdFilter{
			TextQuery: query,
			SortBy:    models.AdSortNewest,
			Page:      1,
			Limit:     limit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, maxSuggestions)
	seen := make(map[string]bool)
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			suggestions = append(suggestions, v)
		}
	}
	for _, t := range titles {
		add(t)
	}
	for _, c := range categories {
		add(c.Name)
		for _, sub := range c.Subcategories {
			add(sub)
		}
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	ads := make([]models.SearchAd, 0, len(preview))
	for i := range preview {
		ads = append(ads, toSearchAd(&preview[i]))
	}

	result := &AutocompleteResult{Suggestions: suggestions, Ads: ads}
	if s.cache != nil {
		if err := s.cache.Set(ctx, query, limit, result); err != nil {
			log.Warn().Err(err).Str("query", query).Msg("Autocomplete cache write failed")
		}
	}
	return result, nil
}
