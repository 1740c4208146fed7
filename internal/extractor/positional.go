package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/Houeta/lot-watch/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// positionalExtractor handles the listing template whose detail list has no
// labels: fields are addressed by their ordinal position.
type positionalExtractor struct {
	origin string
}

// Ordinal positions within the ".vehicle-details" list.
const (
	stockIdx = iota
	mileageIdx
	engineIdx
	transmissionIdx
	extColorIdx
	intColorIdx
)

func (e *positionalExtractor) Extract(body io.Reader) ([]models.Vehicle, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	var vehicles []models.Vehicle

	doc.Find(".inventoryList .item").Each(func(_ int, item *goquery.Selection) {
		details := item.Find(".vehicle-details li")

		vehicle := models.Vehicle{
			StockNumber:   detailAt(details, stockIdx),
			Price:         strings.TrimSpace(item.Find(".internetPrice.final-price .value").Text()),
			Mileage:       detailAt(details, mileageIdx),
			Year:          productAttr(item, "data-year"),
			Make:          productAttr(item, "data-make"),
			Model:         productAttr(item, "data-model"),
			Trim:          productAttr(item, "data-trim"),
			BodyStyle:     productAttr(item, "data-bodystyle"),
			Engine:        detailAt(details, engineIdx),
			Transmission:  detailAt(details, transmissionIdx),
			ExteriorColor: detailAt(details, extColorIdx),
			InteriorColor: detailAt(details, intColorIdx),
			VIN:           productAttr(item, "data-vin"),
			Type:          productAttr(item, "data-type"),
			DetailURL:     normalizeURL(item.Find(".media > a").AttrOr("href", ""), e.origin),
			ImageURL:      normalizeURL(thumbnailSrc(item), e.origin),
		}

		vehicles = append(vehicles, vehicle)
	})

	return vehicles, nil
}

// detailAt captures the text of the list entry at the given ordinal, with
// decorative badge markup stripped out first. A missing ordinal yields an
// empty string.
func detailAt(details *goquery.Selection, idx int) string {
	if idx >= details.Length() {
		return ""
	}
	entry := details.Eq(idx)
	entry.Find(".badge").Remove()
	return strings.TrimSpace(entry.Text())
}
