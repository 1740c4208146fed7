package extractor

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Houeta/lot-watch/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// labeledExtractor handles the static listing template whose description line
// carries labeled fields, e.g. "Stock #: 123, Mileage: 45,000 More".
type labeledExtractor struct {
	origin string
}

func (e *labeledExtractor) Extract(body io.Reader) ([]models.Vehicle, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	var vehicles []models.Vehicle

	doc.Find(".inventoryList .item").Each(func(_ int, item *goquery.Selection) {
		description := item.Find(".description").Text()

		vehicle := models.Vehicle{
			StockNumber:   labeledValue(description, "Stock #"),
			Price:         strings.TrimSpace(item.Find(".internetPrice.final-price .value").Text()),
			Mileage:       labeledValue(description, "Mileage"),
			Year:          productAttr(item, "data-year"),
			Make:          productAttr(item, "data-make"),
			Model:         productAttr(item, "data-model"),
			Trim:          productAttr(item, "data-trim"),
			BodyStyle:     productAttr(item, "data-bodystyle"),
			Engine:        labeledValue(description, "Engine"),
			Transmission:  labeledValue(description, "Transmission"),
			ExteriorColor: labeledValue(description, "Exterior Color"),
			InteriorColor: labeledValue(description, "Interior Color"),
			VIN:           productAttr(item, "data-vin"),
			Type:          productAttr(item, "data-type"),
			DetailURL:     normalizeURL(item.Find(".media > a").AttrOr("href", ""), e.origin),
			ImageURL:      normalizeURL(thumbnailSrc(item), e.origin),
		}

		vehicles = append(vehicles, vehicle)
	})

	return vehicles, nil
}

// labeledValue pulls one field out of the free-text description line: the
// value runs from after "label: " up to the earliest of a comma or the
// literal " More" terminator. An absent label yields an empty string.
func labeledValue(description, label string) string {
	exp := regexp.QuoteMeta(label) + `: (.*?)(,| More)`
	match := regexp.MustCompile(exp).FindStringSubmatch(description)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// productAttr reads a field from the item's hproduct microdata node.
func productAttr(item *goquery.Selection, attr string) string {
	return item.Find(".hproduct").AttrOr(attr, "")
}

// thumbnailSrc prefers the lazy-load data-src attribute over src. The site
// serves thumbnails protocol-relative, which normalizeURL rewrites to https.
func thumbnailSrc(item *goquery.Selection) string {
	thumb := item.Find(".hproduct .thumb")
	if src, ok := thumb.Attr("data-src"); ok && src != "" {
		return src
	}
	return thumb.AttrOr("src", "")
}
