package geocode

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"leadscout_backend/platform/apperr"
)

// ErrNotFound is the normal outcome for a query with no resolvable match.
var ErrNotFound = errors.New("location not found")

const (
	defaultTimeout = 5 * time.Second
	earthRadiusM   = 6371008.8
)

var countryCodePattern = regexp.MustCompile(`^[a-z]{2}$`)

// Resolver turns (city, country) into a Location through a Provider.
// It holds no per-call state.
type Resolver struct {
	provider       Provider
	selector       MatchSelector
	defaultCountry string
	timeout        time.Duration
	maxRadius      float64
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithSelector sets the best-match policy.
func WithSelector(selector MatchSelector) ResolverOption {
	return func(r *Resolver) {
		if selector != nil {
			r.selector = selector
		}
	}
}

// WithTimeout bounds each provider call.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithMaxRadius caps the radius derived from the provider bounding box.
func WithMaxRadius(meters float64) ResolverOption {
	return func(r *Resolver) {
		r.maxRadius = meters
	}
}

// NewResolver creates a resolver. defaultCountry is used when a query omits the country.
func NewResolver(provider Provider, defaultCountry string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		provider:       provider,
		selector:       HighestImportance,
		defaultCountry: strings.ToLower(strings.TrimSpace(defaultCountry)),
		timeout:        defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the best match for city in country. It returns ErrNotFound
// when the provider has no usable match, a Validation error for malformed
// input (before any I/O) and a ResolutionFailed error when the provider is
// unreachable, slow, over quota or returns garbage.
func (r *Resolver) Resolve(ctx context.Context, city, country string) (Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Location{}, apperr.Validation("city is required").WithOp("geocode.Resolve")
	}

	countryCode := strings.ToLower(strings.TrimSpace(country))
	if countryCode == "" {
		countryCode = r.defaultCountry
	}
	if !countryCodePattern.MatchString(countryCode) {
		return Location{}, apperr.Validation("country must be a two-letter ISO code").WithOp("geocode.Resolve")
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	candidates, err := r.provider.Geocode(callCtx, city, countryCode)
	if err != nil {
		return Location{}, apperr.ResolutionFailed("geocoding provider unavailable", err).WithOp("geocode.Resolve")
	}

	valid := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if inRange(c.Latitude, c.Longitude) {
			valid = append(valid, c)
		}
	}

	best, ok := r.selector(valid)
	if !ok {
		return Location{}, ErrNotFound
	}

	return Location{
		City:         city,
		CountryCode:  strings.ToUpper(countryCode),
		DisplayName:  best.DisplayName,
		Latitude:     best.Latitude,
		Longitude:    best.Longitude,
		RadiusMeters: r.radius(best.BoundingBox),
		BoundingBox:  best.BoundingBox,
	}, nil
}

func inRange(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// radius is half the bounding box diagonal, capped at maxRadius when set.
func (r *Resolver) radius(box *BoundingBox) *float64 {
	if box == nil {
		return nil
	}
	meters := haversine(box.South, box.West, box.North, box.East) / 2
	if r.maxRadius > 0 && meters > r.maxRadius {
		meters = r.maxRadius
	}
	return &meters
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Min(1, math.Sqrt(a)))
}
