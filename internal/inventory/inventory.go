// Package inventory holds the run-local set operations of the pipeline:
// flattening page results into one snapshot and diffing that snapshot against
// the durable store.
package inventory

import "github.com/Houeta/lot-watch/internal/models"

// Aggregate flattens per-page extraction results into a single snapshot,
// preserving first-seen order. The stock number is the sole identity: when it
// repeats across pages (overlapping new/used results, adjacent paginated
// queries) the first occurrence wins and later duplicates are dropped.
// Records without a stock number cannot be tracked and are dropped as well.
func Aggregate(pages [][]models.Vehicle) []models.Vehicle {
	var snapshot []models.Vehicle
	seen := make(map[string]struct{})

	for _, page := range pages {
		for _, vehicle := range page {
			if vehicle.StockNumber == "" {
				continue
			}
			if _, ok := seen[vehicle.StockNumber]; ok {
				continue
			}
			seen[vehicle.StockNumber] = struct{}{}
			snapshot = append(snapshot, vehicle)
		}
	}

	return snapshot
}

// DetectNew returns the vehicles of the current snapshot whose stock number
// is absent from the prior store, in snapshot order. Field-level drift on an
// already-known stock number never makes a vehicle "new". The prior store is
// not modified.
func DetectNew(current []models.Vehicle, prior models.Store) []models.Vehicle {
	var fresh []models.Vehicle

	for _, vehicle := range current {
		if _, known := prior[vehicle.StockNumber]; !known {
			fresh = append(fresh, vehicle)
		}
	}

	return fresh
}
