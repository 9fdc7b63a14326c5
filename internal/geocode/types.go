// Package geocode resolves free-text city and country pairs into a
// canonical location usable for a bounded-area business search.
package geocode

import "context"

// Location is a resolved place. Latitude and Longitude are WGS84 and always
// in range; an unresolvable query is ErrNotFound, never a zero coordinate.
type Location struct {
	City         string       `json:"city"`
	CountryCode  string       `json:"countryCode"`
	DisplayName  string       `json:"displayName,omitempty"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	RadiusMeters *float64     `json:"radiusMeters,omitempty"`
	BoundingBox  *BoundingBox `json:"boundingBox,omitempty"`
}

// BoundingBox is the extent the provider reports for a match.
type BoundingBox struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Candidate is one provider match before selection.
type Candidate struct {
	DisplayName string
	Latitude    float64
	Longitude   float64
	Importance  float64
	BoundingBox *BoundingBox
}

// Provider is the external geocoding collaborator.
type Provider interface {
	Geocode(ctx context.Context, city, countryCode string) ([]Candidate, error)
}

// LookupRequest represents the query parameters of GET /geocode.
type LookupRequest struct {
	City    string `form:"city" validate:"required"`
	Country string `form:"country" validate:"countrycode"`
}
