package models

// Vehicle is the canonical representation of one inventory listing.
//
// StockNumber is the sole identity field: two vehicles with the same stock
// number are the same vehicle for deduplication and diffing, regardless of
// differences in any other field. All other fields are best-effort and may be
// empty when the source markup does not carry them.
type Vehicle struct {
	StockNumber   string `json:"stockNum"`
	Price         string `json:"price"`
	Mileage       string `json:"mileage"`
	Year          string `json:"year"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	Trim          string `json:"trim"`
	BodyStyle     string `json:"bodyStyle"`
	Engine        string `json:"engine"`
	Transmission  string `json:"transmission"`
	ExteriorColor string `json:"extColor"`
	InteriorColor string `json:"intColor"`
	VIN           string `json:"vin"`
	Type          string `json:"type"`
	DetailURL     string `json:"url"`   // always an absolute URL
	ImageURL      string `json:"image"` // always an absolute URL
}

// Store is the durable cumulative mapping from stock number to vehicle,
// covering every vehicle ever observed across all runs.
type Store map[string]Vehicle
