package models

// Variant identifies the page template a response body was rendered with.
// Each variant carries its own field-extraction rules.
type Variant string

const (
	// VariantLabeled is the static listing whose description line holds
	// labeled fields ("Stock #: 123, Mileage: 45,000 More").
	VariantLabeled Variant = "labeled"
	// VariantPositional is the static listing whose detail list addresses
	// fields by ordinal position.
	VariantPositional Variant = "positional"
	// VariantAttribute is the AJAX result set that carries one attribute
	// per field on every item node.
	VariantAttribute Variant = "attribute"
)

// Page describes one logical query page to fetch: the URL to request and the
// template variant its response is known to use.
type Page struct {
	URL     string
	Variant Variant
}

// FetchResult is the outcome of fetching a single page. A failed page
// carries an error and no body; it contributes zero vehicles to the run but
// never fails it.
type FetchResult struct {
	Page Page
	Body []byte
	Err  error
}
