package extractor

import (
	"fmt"
	"io"

	"github.com/Houeta/lot-watch/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// attributeExtractor handles the AJAX search result fragment, where every
// field rides on a named attribute: most of them on the item's root node,
// the identity trio on the "save vehicle" affordance element.
type attributeExtractor struct {
	origin string
}

func (e *attributeExtractor) Extract(body io.Reader) ([]models.Vehicle, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	var vehicles []models.Vehicle

	doc.Find(".searchResults .item").Each(func(_ int, item *goquery.Selection) {
		// Items without a model year are placeholders (sold or inbound
		// stock) and are excluded outright rather than reported empty.
		year := item.AttrOr("data-year", "")
		if year == "" {
			return
		}

		save := item.Find(".save-vehicle")

		vehicle := models.Vehicle{
			StockNumber:   save.AttrOr("remote-id", ""),
			Price:         item.AttrOr("data-price", ""),
			Mileage:       item.AttrOr("data-mileage", ""),
			Year:          year,
			Make:          item.AttrOr("data-make", ""),
			Model:         item.AttrOr("data-model", ""),
			Trim:          item.AttrOr("data-trim", ""),
			BodyStyle:     item.AttrOr("data-bodystyle", ""),
			Engine:        item.AttrOr("data-engine", ""),
			Transmission:  item.AttrOr("data-transmission", ""),
			ExteriorColor: item.AttrOr("data-extcolor", ""),
			InteriorColor: item.AttrOr("data-intcolor", ""),
			VIN:           item.AttrOr("data-vin", ""),
			Type:          item.AttrOr("data-type", ""),
			DetailURL:     normalizeURL(save.AttrOr("url", ""), e.origin),
			ImageURL:      normalizeURL(save.AttrOr("thumbnail-url", ""), e.origin),
		}

		vehicles = append(vehicles, vehicle)
	})

	return vehicles, nil
}
