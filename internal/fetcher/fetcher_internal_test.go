package fetcher

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Houeta/lot-watch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRoundTripper — its a mock for http.RoundTripper.
type mockRoundTripper struct {
	mu        sync.Mutex
	responses map[string]*http.Response
	errs      map[string]error
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url := req.URL.String()
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	if resp, ok := m.responses[url]; ok {
		return resp, nil
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func newTestFetcher(rt http.RoundTripper) *Fetcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := NewFetcher(logger, 5*time.Second, 100)
	f.client = &http.Client{Transport: rt}
	return f
}

func TestFetchAll(t *testing.T) {
	rt := &mockRoundTripper{
		responses: map[string]*http.Response{
			"http://test.com/new": {
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("new inventory")),
			},
			"http://test.com/used": {
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("used inventory")),
			},
		},
	}

	pages := []models.Page{
		{URL: "http://test.com/new", Variant: models.VariantLabeled},
		{URL: "http://test.com/used", Variant: models.VariantPositional},
	}

	results := newTestFetcher(rt).FetchAll(t.Context(), pages)
	require.Len(t, results, 2)

	// results come back in input order, not completion order
	assert.Equal(t, pages[0], results[0].Page)
	assert.Equal(t, pages[1], results[1].Page)

	require.NoError(t, results[0].Err)
	assert.Equal(t, "new inventory", string(results[0].Body))
	require.NoError(t, results[1].Err)
	assert.Equal(t, "used inventory", string(results[1].Body))
}

func TestFetchAll_PartialFailure(t *testing.T) {
	rt := &mockRoundTripper{
		responses: map[string]*http.Response{
			"http://test.com/ok": {
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("inventory")),
			},
			"http://test.com/down": {
				StatusCode: http.StatusInternalServerError,
				Status:     "500 Internal Server Error",
				Body:       io.NopCloser(strings.NewReader("Error")),
			},
		},
		errs: map[string]error{
			"http://test.com/unreachable": errors.New("connection failed"),
		},
	}

	pages := []models.Page{
		{URL: "http://test.com/ok"},
		{URL: "http://test.com/down"},
		{URL: "http://test.com/unreachable"},
	}

	results := newTestFetcher(rt).FetchAll(t.Context(), pages)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, "inventory", string(results[0].Body))

	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "status code error: [500]")
	assert.Nil(t, results[1].Body)

	require.Error(t, results[2].Err)
	assert.Contains(t, results[2].Err.Error(), "connection failed")
}

func TestFetchAll_NoPages(t *testing.T) {
	results := newTestFetcher(&mockRoundTripper{}).FetchAll(t.Context(), nil)

	assert.Empty(t, results)
}
