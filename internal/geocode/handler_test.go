package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadscout_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type fixedResolver struct {
	loc Location
	err error
}

func (f fixedResolver) Resolve(context.Context, string, string) (Location, error) {
	return f.loc, f.err
}

func serveLookup(t *testing.T, resolver LocationResolver, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/geocode", NewHandler(resolver, validator.New()).Lookup)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestLookupHandler(t *testing.T) {
	ok := fixedResolver{loc: Location{City: "Austin", CountryCode: "US", Latitude: 30.27, Longitude: -97.74}}

	tests := []struct {
		name     string
		resolver LocationResolver
		target   string
		status   int
		contains string
	}{
		{"found", ok, "/geocode?city=Austin&country=us", http.StatusOK, `"countryCode":"US"`},
		{"missing city", ok, "/geocode?country=us", http.StatusBadRequest, "city"},
		{"bad country", ok, "/geocode?city=Austin&country=usa", http.StatusBadRequest, "country"},
		{"not found", fixedResolver{err: ErrNotFound}, "/geocode?city=Atlantis", http.StatusNotFound, "location not found"},
		{"provider down", fixedResolver{err: errResolution()}, "/geocode?city=Austin", http.StatusBadGateway, "resolution"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveLookup(t, tc.resolver, tc.target)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.contains) {
				t.Fatalf("expected body to contain %q, got %s", tc.contains, rec.Body.String())
			}
		})
	}
}

func errResolution() error {
	_, err := NewResolver(&stubProvider{err: ErrRateLimited}, "us").Resolve(context.Background(), "Austin", "us")
	return err
}
