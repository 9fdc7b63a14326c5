package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"leadscout_backend/platform/apperr"
)

type stubProvider struct {
	candidates []Candidate
	err        error
	calls      int
	gotCity    string
	gotCountry string
	wait       bool
}

func (s *stubProvider) Geocode(ctx context.Context, city, countryCode string) ([]Candidate, error) {
	s.calls++
	s.gotCity = city
	s.gotCountry = countryCode
	if s.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.candidates, s.err
}

func TestResolveEmptyCityFailsBeforeIO(t *testing.T) {
	provider := &stubProvider{}
	r := NewResolver(provider, "us")

	_, err := r.Resolve(context.Background(), "   ", "us")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected Validation, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider must not be called")
	}
}

func TestResolveRejectsMalformedCountry(t *testing.T) {
	provider := &stubProvider{}
	r := NewResolver(provider, "us")

	_, err := r.Resolve(context.Background(), "Austin", "usa")
	if !apperr.Is(err, apperr.KindValidation) || provider.calls != 0 {
		t.Fatalf("expected Validation without I/O, got %v (%d calls)", err, provider.calls)
	}
}

func TestResolveDefaultsCountry(t *testing.T) {
	provider := &stubProvider{candidates: []Candidate{{Latitude: 30.27, Longitude: -97.74}}}
	r := NewResolver(provider, "US")

	loc, err := r.Resolve(context.Background(), " Austin ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.gotCountry != "us" || provider.gotCity != "Austin" {
		t.Fatalf("unexpected provider args %q/%q", provider.gotCity, provider.gotCountry)
	}
	if loc.CountryCode != "US" || loc.City != "Austin" {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestResolveNoMatchIsNotFound(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
	}{
		{"empty", nil},
		{"all out of range", []Candidate{{Latitude: 91, Longitude: 0}, {Latitude: 0, Longitude: -181}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(&stubProvider{candidates: tc.candidates}, "us")
			loc, err := r.Resolve(context.Background(), "Nowhere", "us")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if loc != (Location{}) {
				t.Fatalf("not found must not carry coordinates, got %+v", loc)
			}
		})
	}
}

func TestResolveProviderFailureIsResolutionFailed(t *testing.T) {
	r := NewResolver(&stubProvider{err: ErrRateLimited}, "us")

	_, err := r.Resolve(context.Background(), "Austin", "us")
	if !apperr.Is(err, apperr.KindResolutionFailed) {
		t.Fatalf("expected ResolutionFailed, got %v", err)
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected cause to be preserved")
	}
}

func TestResolveHonorsTimeout(t *testing.T) {
	r := NewResolver(&stubProvider{wait: true}, "us", WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := r.Resolve(context.Background(), "Austin", "us")
	if !apperr.Is(err, apperr.KindResolutionFailed) {
		t.Fatalf("expected ResolutionFailed, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded cause, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("resolver did not honor its timeout")
	}
}

func TestResolveSelectors(t *testing.T) {
	candidates := []Candidate{
		{DisplayName: "Springfield, Ohio", Latitude: 39.9, Longitude: -83.8, Importance: 0.4},
		{DisplayName: "Springfield, Illinois", Latitude: 39.8, Longitude: -89.6, Importance: 0.7},
		{DisplayName: "Springfield, Missouri", Latitude: 37.2, Longitude: -93.3, Importance: 0.7},
	}

	first := NewResolver(&stubProvider{candidates: candidates}, "us", WithSelector(FirstMatch))
	loc, err := first.Resolve(context.Background(), "Springfield", "us")
	if err != nil || loc.DisplayName != "Springfield, Ohio" {
		t.Fatalf("FirstMatch: got %q (%v)", loc.DisplayName, err)
	}

	best := NewResolver(&stubProvider{candidates: candidates}, "us")
	loc, err = best.Resolve(context.Background(), "Springfield", "us")
	if err != nil || loc.DisplayName != "Springfield, Illinois" {
		t.Fatalf("HighestImportance: got %q (%v)", loc.DisplayName, err)
	}
}

func TestResolveRadiusFromBoundingBox(t *testing.T) {
	box := &BoundingBox{South: 30.0, North: 30.2, West: -97.9, East: -97.7}
	provider := &stubProvider{candidates: []Candidate{{Latitude: 30.1, Longitude: -97.8, BoundingBox: box}}}

	loc, err := NewResolver(provider, "us").Resolve(context.Background(), "Austin", "us")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.RadiusMeters == nil || *loc.RadiusMeters < 14000 || *loc.RadiusMeters > 16000 {
		t.Fatalf("expected roughly 15km radius, got %v", loc.RadiusMeters)
	}

	capped, err := NewResolver(provider, "us", WithMaxRadius(5000)).Resolve(context.Background(), "Austin", "us")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *capped.RadiusMeters != 5000 {
		t.Fatalf("expected capped radius 5000, got %v", *capped.RadiusMeters)
	}
}

func TestSelectorByName(t *testing.T) {
	if _, err := SelectorByName("random"); err == nil {
		t.Fatalf("expected unknown selector error")
	}
	if s, err := SelectorByName("first"); err != nil || s == nil {
		t.Fatalf("expected first selector")
	}
}
