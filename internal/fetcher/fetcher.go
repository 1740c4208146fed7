// Package fetcher retrieves raw inventory page bodies over HTTP. Pages are
// fetched concurrently but paced by a shared rate limiter, and every failure
// stays scoped to its page.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Houeta/lot-watch/internal/models"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (compatible; GoHttpClient/1.0)"

// PageFetcher retrieves the raw bodies of a set of query pages.
type PageFetcher interface {
	FetchAll(ctx context.Context, pages []models.Page) []models.FetchResult
}

type Fetcher struct {
	log     *slog.Logger
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a fetcher with a per-request timeout and an
// outgoing-request rate limit in requests per second.
func NewFetcher(log *slog.Logger, timeout time.Duration, rps float64) *Fetcher {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Fetcher{
		log:     log,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// FetchAll retrieves every page and returns the results in the same order as
// the input, regardless of which request finished first. A failed page is
// reported on its result and never aborts the remaining pages.
func (f *Fetcher) FetchAll(ctx context.Context, pages []models.Page) []models.FetchResult {
	results := make([]models.FetchResult, len(pages))

	var wg sync.WaitGroup
	for i, page := range pages {
		wg.Add(1)
		go func(i int, page models.Page) {
			defer wg.Done()

			body, err := f.fetch(ctx, page.URL)
			results[i] = models.FetchResult{Page: page, Body: body, Err: err}
		}(i, page)
	}
	wg.Wait()

	return results
}

func (f *Fetcher) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", pageURL, err)
	}

	req.Header.Add("User-Agent", userAgent)

	f.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	f.log.InfoContext(ctx, "Successfully received http response", "status code", res.StatusCode, "bytes", len(body))

	return body, nil
}
