// Package business defines the discovered-business vocabulary shared by
// search, snapshot and lead import.
package business

import (
	"fmt"
	"strings"
)

// Industry is the closed classification of a discovered business.
type Industry string

const (
	IndustryRestaurant  Industry = "restaurant"
	IndustryCafe        Industry = "cafe"
	IndustryBar         Industry = "bar"
	IndustryBakery      Industry = "bakery"
	IndustryRetail      Industry = "retail"
	IndustryBeautySalon Industry = "beauty_salon"
	IndustryGym         Industry = "gym"
	IndustryHotel       Industry = "hotel"
	IndustryDentist     Industry = "dentist"
	IndustryDoctor      Industry = "doctor"
	IndustryLawyer      Industry = "lawyer"
	IndustryAccounting  Industry = "accounting"
	IndustryRealEstate  Industry = "real_estate"
	IndustryCarRepair   Industry = "car_repair"
	IndustryPlumber     Industry = "plumber"
	IndustryElectrician Industry = "electrician"
	IndustryOther       Industry = "other"
)

// placesTypes maps each industry to its Google Places primary type.
var placesTypes = map[Industry]string{
	IndustryRestaurant:  "restaurant",
	IndustryCafe:        "cafe",
	IndustryBar:         "bar",
	IndustryBakery:      "bakery",
	IndustryRetail:      "store",
	IndustryBeautySalon: "beauty_salon",
	IndustryGym:         "gym",
	IndustryHotel:       "hotel",
	IndustryDentist:     "dentist",
	IndustryDoctor:      "doctor",
	IndustryLawyer:      "lawyer",
	IndustryAccounting:  "accounting",
	IndustryRealEstate:  "real_estate_agency",
	IndustryCarRepair:   "car_repair",
	IndustryPlumber:     "plumber",
	IndustryElectrician: "electrician",
}

var allIndustries = []Industry{
	IndustryRestaurant, IndustryCafe, IndustryBar, IndustryBakery, IndustryRetail,
	IndustryBeautySalon, IndustryGym, IndustryHotel, IndustryDentist, IndustryDoctor,
	IndustryLawyer, IndustryAccounting, IndustryRealEstate, IndustryCarRepair,
	IndustryPlumber, IndustryElectrician, IndustryOther,
}

// Industries returns every industry in display order.
func Industries() []Industry {
	return append([]Industry(nil), allIndustries...)
}

// ParseIndustry validates a wire value.
func ParseIndustry(value string) (Industry, error) {
	candidate := Industry(strings.ToLower(strings.TrimSpace(value)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("unknown industry %q", value)
}

// Valid reports whether i is part of the enumeration.
func (i Industry) Valid() bool {
	if i == IndustryOther {
		return true
	}
	_, ok := placesTypes[i]
	return ok
}

// PlacesType returns the provider type used to search for i. IndustryOther
// has no provider type and returns false.
func (i Industry) PlacesType() (string, bool) {
	t, ok := placesTypes[i]
	return t, ok
}

// FromPlacesTypes classifies a provider result by the first type that maps
// back to a known industry.
func FromPlacesTypes(types []string) Industry {
	for _, t := range types {
		for industry, placesType := range placesTypes {
			if placesType == t {
				return industry
			}
		}
	}
	return IndustryOther
}
