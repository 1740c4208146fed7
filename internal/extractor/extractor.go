// Package extractor maps raw inventory page markup into canonical vehicle
// records. Each page template variant has its own extractor; all of them
// share the URL normalization rules and degrade to empty fields instead of
// failing a whole page on partial markup.
package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/Houeta/lot-watch/internal/models"
)

// Extractor turns one raw response body into a sequence of vehicle records.
// Implementations are pure: they read the body, never perform I/O of their
// own, and tolerate malformed markup by returning empty-string fields.
type Extractor interface {
	Extract(body io.Reader) ([]models.Vehicle, error)
}

// ForVariant returns the extractor for the given page template variant.
func ForVariant(variant models.Variant, origin string) (Extractor, error) {
	switch variant {
	case models.VariantLabeled:
		return &labeledExtractor{origin: origin}, nil
	case models.VariantPositional:
		return &positionalExtractor{origin: origin}, nil
	case models.VariantAttribute:
		return &attributeExtractor{origin: origin}, nil
	default:
		return nil, fmt.Errorf("unknown template variant: %q", variant)
	}
}

// normalizeURL rewrites a scraped URL into a fully qualified absolute form:
// a protocol-relative URL gets https, a relative path is resolved against the
// site origin, and an already-absolute URL passes through unchanged.
func normalizeURL(raw, origin string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return strings.TrimSuffix(origin, "/") + raw
}
