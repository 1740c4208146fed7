// Package repository defines the durable inventory store contract. The store
// is the only shared mutable resource of the process; a run loads it once,
// merges in the vehicles it discovered, and rewrites it wholesale.
//
// Precondition: runs never overlap. The external scheduler serializes
// invocations; nothing here takes a cross-process lock.
package repository

import (
	"github.com/Houeta/lot-watch/internal/models"
)

// Inventory is the persistence interface consumed by the watcher.
type Inventory interface {
	// Load reads the persisted store. It fails soft: a missing, unreadable
	// or malformed file yields an empty store and a logged diagnostic.
	Load() models.Store
	// Persist serializes the full store and atomically replaces the
	// durable file.
	Persist(store models.Store) error
}

// Merge folds the vehicles discovered this run into the prior store.
//
// Collision policy: the stored record wins. A stock number already present in
// the prior store keeps its originally captured snapshot, so price or trim
// drift in a fresh scrape never clobbers it. This is documented compatibility
// behavior; do not invert it without product sign-off.
func Merge(prior models.Store, fresh []models.Vehicle) models.Store {
	merged := make(models.Store, len(prior)+len(fresh))

	for _, vehicle := range fresh {
		merged[vehicle.StockNumber] = vehicle
	}
	for stockNumber, vehicle := range prior {
		merged[stockNumber] = vehicle
	}

	return merged
}
