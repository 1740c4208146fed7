// Package watcher orchestrates one full run of the pipeline:
// load prior state, fetch and extract every query page, aggregate, diff
// against the store, notify for each newly discovered vehicle, and persist
// the merged result.
package watcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/Houeta/lot-watch/internal/extractor"
	"github.com/Houeta/lot-watch/internal/fetcher"
	"github.com/Houeta/lot-watch/internal/inventory"
	"github.com/Houeta/lot-watch/internal/models"
	"github.com/Houeta/lot-watch/internal/notifier"
	"github.com/Houeta/lot-watch/internal/repository"
)

// Watcher performs a full discovery cycle over the dealership inventory.
//
// Precondition: runs never overlap. A run owns the store file for its whole
// load-merge-persist sequence; the external scheduler must not start a second
// run while one is in flight.
type Watcher struct {
	log       *slog.Logger
	fetcher   fetcher.PageFetcher
	repo      repository.Inventory
	notifiers []notifier.Notifier
	origin    string
}

// Summary reports what a run did, for logging and exit diagnostics.
type Summary struct {
	PagesFetched   int
	PagesFailed    int
	SnapshotSize   int
	NewVehicles    []models.Vehicle
	NotifyFailures int
}

// NewWatcher creates a new Watcher instance.
func NewWatcher(
	log *slog.Logger,
	pageFetcher fetcher.PageFetcher,
	repo repository.Inventory,
	notifiers []notifier.Notifier,
	origin string,
) *Watcher {
	return &Watcher{log: log, fetcher: pageFetcher, repo: repo, notifiers: notifiers, origin: origin}
}

// Run executes one load→fetch→extract→aggregate→diff→notify→persist cycle.
// Page-level failures are logged and skipped; notification failures are
// logged and never block persistence. Only a failed persist fails the run,
// and by then notifications have already gone out, so a re-run after a
// persist failure may notify the same vehicles again.
func (w *Watcher) Run(ctx context.Context, pages []models.Page) (*Summary, error) {
	const opn = "watcher.Run"
	log := w.log.With("op", opn)

	// 1. Load the prior store. Missing or corrupt state degrades to an
	// empty store inside the repository; the run always reaches this step.
	prior := w.repo.Load()
	log.InfoContext(ctx, "Loaded prior inventory store", "known_vehicles", len(prior))

	// 2. Fetch every page and extract each body with its variant's rules.
	results := w.fetcher.FetchAll(ctx, pages)

	summary := &Summary{}
	pageVehicles := make([][]models.Vehicle, 0, len(results))

	for i, res := range results {
		if res.Err != nil {
			summary.PagesFailed++
			log.WarnContext(ctx, "page fetch failed, skipping",
				"page_index", i, "url", res.Page.URL, "error", res.Err)
			continue
		}

		ext, err := extractor.ForVariant(res.Page.Variant, w.origin)
		if err != nil {
			summary.PagesFailed++
			log.WarnContext(ctx, "no extractor for page, skipping",
				"page_index", i, "url", res.Page.URL, "error", err)
			continue
		}

		vehicles, err := ext.Extract(bytes.NewReader(res.Body))
		if err != nil {
			summary.PagesFailed++
			log.WarnContext(ctx, "page extraction failed, skipping",
				"page_index", i, "url", res.Page.URL, "error", err)
			continue
		}

		summary.PagesFetched++
		pageVehicles = append(pageVehicles, vehicles)
		log.DebugContext(ctx, "Extracted page", "page_index", i, "variant", res.Page.Variant, "count", len(vehicles))
	}

	if len(pages) > 0 && summary.PagesFailed == len(pages) {
		// Indistinguishable from an empty inventory without extra
		// signaling from the site; treated as a quiet no-op run.
		log.WarnContext(ctx, "all pages failed, run continues with an empty snapshot")
	}

	// 3. Aggregate into one snapshot and diff it against the prior store.
	snapshot := inventory.Aggregate(pageVehicles)
	fresh := inventory.DetectNew(snapshot, prior)
	summary.SnapshotSize = len(snapshot)
	summary.NewVehicles = fresh
	log.InfoContext(ctx, "Change detection complete", "snapshot", len(snapshot), "new", len(fresh))

	// 4. Notify for every new vehicle before persisting, so a crash between
	// the two never drops a vehicle from the store without an alert.
	for _, vehicle := range fresh {
		for _, n := range w.notifiers {
			if err := n.Notify(ctx, vehicle); err != nil {
				summary.NotifyFailures++
				log.ErrorContext(ctx, "failed to send notification",
					"stock_number", vehicle.StockNumber, "error", err)
			}
		}
	}

	// 5. Fold the new vehicles into the store and rewrite it. Notifications
	// already sent are not rolled back on failure here.
	merged := repository.Merge(prior, fresh)
	if err := w.repo.Persist(merged); err != nil {
		return summary, fmt.Errorf("%s: failed to persist store: %w", opn, err)
	}
	log.InfoContext(ctx, "Persisted inventory store", "total_vehicles", len(merged))

	return summary, nil
}
