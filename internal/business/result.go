package business

import "strings"

// Result is one discovered business candidate. ExternalID is the only
// identity: two results with the same ExternalID are the same business.
type Result struct {
	ExternalID  string   `json:"externalId"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Industry    Industry `json:"industry"`
	Rating      *float64 `json:"rating,omitempty"`
	RatingCount *int     `json:"ratingCount,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	// PhotoName is the provider's photo resource name. It is what gets
	// stored; PhotoURL is only filled in on the way out by LinkPhotos.
	PhotoName   *string  `json:"photoName,omitempty"`
	PhotoURL    *string  `json:"photoUrl,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Website     *string  `json:"website,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// PhotoLinker turns a stored photo resource name into a fetchable URL.
type PhotoLinker interface {
	PhotoURL(name string) *string
}

// LinkPhotos returns a copy of results with PhotoURL resolved from PhotoName.
// A nil linker clears PhotoURL so nothing client-supplied is echoed back.
func LinkPhotos(results []Result, linker PhotoLinker) []Result {
	out := make([]Result, len(results))
	for i, r := range results {
		r.PhotoURL = nil
		if linker != nil && r.PhotoName != nil {
			r.PhotoURL = linker.PhotoURL(*r.PhotoName)
		}
		out[i] = r
	}
	return out
}

// Importable reports whether r carries the identity and name needed to become a lead.
func (r Result) Importable() bool {
	return strings.TrimSpace(r.ExternalID) != "" && strings.TrimSpace(r.Name) != ""
}
