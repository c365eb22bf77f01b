package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// CountRefresher recomputes the denormalized subcategory ad counts.
type CountRefresher interface {
	RefreshSubcategoryCounts(ctx context.Context) error
}

// CountSyncWorker periodically refreshes the per-subcategory ad counts so
// the taxonomy endpoints never pay for a live aggregate.
type CountSyncWorker struct {
	store    CountRefresher
	interval time.Duration
}

// NewCountSyncWorker constructs a CountSyncWorker.
func NewCountSyncWorker(store CountRefresher, interval time.Duration) *CountSyncWorker {
	return &CountSyncWorker{
		store:    store,
		interval: interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *CountSyncWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting count sync worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Count sync worker stopped")
			return
		}
	}
}

func (w *CountSyncWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.store.RefreshSubcategoryCounts(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh subcategory counts")
		return
	}

	log.Info().Dur("duration", time.Since(start)).Msg("Subcategory count refresh completed")
}
