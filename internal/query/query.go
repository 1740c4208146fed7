// Package query turns the command-line search options into the concrete set
// of inventory pages a run has to fetch.
package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Houeta/lot-watch/internal/config"
	"github.com/Houeta/lot-watch/internal/models"
)

// The dealership renders each inventory section with its own page template,
// so every section is pinned to the variant its markup follows.
const (
	newInventoryPath  = "/new-inventory/index.htm"
	usedInventoryPath = "/used-inventory/index.htm"
	searchAPIPath     = "/api/inventory/search"
)

// BuildPages returns the ordered list of pages one run fetches: the
// new-inventory and used-inventory listings filtered by the configured
// options, plus the AJAX search endpoint when a free-text search is set.
func BuildPages(cfg *config.Config) []models.Page {
	params := buildParams(cfg.Options)

	pages := []models.Page{
		{URL: pageURL(cfg.Origin, newInventoryPath, params), Variant: models.VariantLabeled},
		{URL: pageURL(cfg.Origin, usedInventoryPath, params), Variant: models.VariantPositional},
	}

	if cfg.Options.Search != "" {
		pages = append(pages, models.Page{
			URL:     pageURL(cfg.Origin, searchAPIPath, params),
			Variant: models.VariantAttribute,
		})
	}

	return pages
}

// buildParams assembles the shared query string applied to every section.
func buildParams(opts config.Options) url.Values {
	params := url.Values{}

	for _, year := range opts.Years {
		params.Add("year", year)
	}
	for _, mk := range opts.Makes {
		params.Add("make", mk)
	}
	for _, model := range opts.Models {
		params.Add("model", model)
	}
	for _, style := range opts.Styles {
		params.Add("bodyStyle", style)
	}

	if opts.PriceHigh > 0 {
		low := opts.PriceLow
		if low <= 0 {
			low = 1
		}
		params.Set("internetPrice", fmt.Sprintf("%d-%d", low, opts.PriceHigh))
	}

	if opts.Search != "" {
		params.Set("search", opts.Search)
	}

	return params
}

func pageURL(origin, path string, params url.Values) string {
	u := strings.TrimSuffix(origin, "/") + path
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}
