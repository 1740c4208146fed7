package jsonfile_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Houeta/lot-watch/internal/models"
	"github.com/Houeta/lot-watch/internal/repository/jsonfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepo is a helper that creates a repository backed by a temporary file.
func newTestRepo(t *testing.T) (*jsonfile.Repository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vehicles.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return jsonfile.NewRepository(logger, path), path
}

func TestLoad_MissingFile(t *testing.T) {
	repo, _ := newTestRepo(t)

	store := repo.Load()

	// first run: an absent file is an empty store, not an error
	assert.NotNil(t, store)
	assert.Empty(t, store)
}

func TestLoad_CorruptFile(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := repo.Load()

	assert.NotNil(t, store)
	assert.Empty(t, store)
}

func TestLoad_NullContent(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	store := repo.Load()

	assert.NotNil(t, store)
	assert.Empty(t, store)
}

func TestPersistAndLoad_RoundTrip(t *testing.T) {
	repo, path := newTestRepo(t)

	store := models.Store{
		"A1": {StockNumber: "A1", Price: "$20,000", Make: "Ford", Model: "F-150"},
		"B2": {StockNumber: "B2", Price: "$31,000", Make: "Ford", Model: "Explorer"},
	}

	require.NoError(t, repo.Persist(store))

	loaded := repo.Load()
	assert.Equal(t, store, loaded)

	// the file itself must be human-readable pretty-printed JSON keyed by stock number
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"A1\": {")

	var raw map[string]models.Vehicle
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 2)
}

func TestPersist_ReplacesExistingFile(t *testing.T) {
	repo, path := newTestRepo(t)

	require.NoError(t, repo.Persist(models.Store{"A1": {StockNumber: "A1"}}))
	require.NoError(t, repo.Persist(models.Store{"B2": {StockNumber: "B2"}}))

	loaded := repo.Load()
	assert.Equal(t, models.Store{"B2": {StockNumber: "B2"}}, loaded)

	// no temp files may be left behind next to the store
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPersist_DirectoryMissing(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := jsonfile.NewRepository(logger, filepath.Join(t.TempDir(), "no-such-dir", "vehicles.json"))

	err := repo.Persist(models.Store{"A1": {StockNumber: "A1"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create temp file")
}
