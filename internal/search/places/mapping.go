package places

import (
	"math"

	"leadscout_backend/internal/business"
	"leadscout_backend/platform/sanitize"
)

// ToResult converts a place to a business result. Only the first photo's
// resource name is kept; see PhotoLinker for turning it into a URL.
func ToResult(p Place, industry business.Industry) business.Result {
	if industry == "" || industry == business.IndustryOther {
		industry = business.FromPlacesTypes(p.Types)
	}

	result := business.Result{
		ExternalID:  p.ID,
		Name:        sanitize.Text(p.DisplayName.Text),
		Address:     sanitize.Text(p.FormattedAddress),
		Industry:    industry,
		Rating:      p.Rating,
		RatingCount: p.UserRatingCount,
		Score:       Score(p.Rating, p.UserRatingCount),
		Phone:       firstNonEmpty(p.InternationalPhoneNumber, p.NationalPhoneNumber),
		Website:     sanitize.TextPtr(firstNonEmpty(p.WebsiteURI)),
	}
	if p.Location != nil {
		lat, lon := p.Location.Latitude, p.Location.Longitude
		result.Latitude = &lat
		result.Longitude = &lon
	}
	if len(p.Photos) > 0 {
		result.PhotoName = firstNonEmpty(p.Photos[0].Name)
	}
	return result
}

// Score ranks a place on [0, 100] by rating weighted with review volume.
// A place with no rating has no score. Volume saturates at 1000 reviews.
func Score(rating *float64, count *int) *float64 {
	if rating == nil {
		return nil
	}
	reviews := 0
	if count != nil && *count > 0 {
		reviews = *count
	}
	confidence := math.Min(1, math.Log10(1+float64(reviews))/3)
	score := math.Round((*rating/5)*confidence*1000) / 10
	return &score
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v != "" {
			out := v
			return &out
		}
	}
	return nil
}
