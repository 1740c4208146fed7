// Package jsonfile persists the cumulative inventory as one human-readable,
// pretty-printed JSON mapping from stock number to vehicle. The file is read
// and rewritten wholesale each run; there is no append format and no schema
// version tag. The store grows without bound: vehicles that leave the lot are
// never evicted, and a later reuse of their stock number reads as already
// known.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Houeta/lot-watch/internal/models"
)

// Repository stores the inventory in a single JSON file.
type Repository struct {
	path string
	log  *slog.Logger
}

// NewRepository creates a repository backed by the file at the given path.
// The file does not have to exist yet.
func NewRepository(log *slog.Logger, path string) *Repository {
	return &Repository{path: path, log: log}
}

// Load reads the persisted store. It never fails the run: a missing file is
// the expected first-run state, and an unreadable or corrupt file degrades to
// an empty store with a logged diagnostic.
func (r *Repository) Load() models.Store {
	const opn = "repository.jsonfile.Load"

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Info("no persisted store found, starting empty", "op", opn, "path", r.path)
		} else {
			r.log.Warn("failed to read persisted store, starting empty", "op", opn, "path", r.path, "error", err)
		}
		return models.Store{}
	}

	var store models.Store
	if err = json.Unmarshal(data, &store); err != nil {
		r.log.Warn("persisted store is malformed, starting empty", "op", opn, "path", r.path, "error", err)
		return models.Store{}
	}
	if store == nil {
		store = models.Store{}
	}

	return store
}

// Persist serializes the full store and atomically replaces the durable file
// by writing a temporary file next to it and renaming it into place, so a
// concurrent reader never observes a truncated store.
func (r *Repository) Persist(store models.Store) error {
	const opn = "repository.jsonfile.Persist"

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: failed to marshal store: %w", opn, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".vehicles-*.json")
	if err != nil {
		return fmt.Errorf("%s: failed to create temp file in %s: %w", opn, dir, err)
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: failed to write temp file: %w", opn, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: failed to close temp file: %w", opn, err)
	}

	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: failed to set permissions: %w", opn, err)
	}

	if err = os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: failed to replace %s: %w", opn, r.path, err)
	}

	r.log.Debug("persisted inventory store", "op", opn, "path", r.path, "vehicles", len(store))

	return nil
}
