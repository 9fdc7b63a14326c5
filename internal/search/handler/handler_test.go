package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/geocode"
	leadservice "leadscout_backend/internal/leads/service"
	"leadscout_backend/internal/search/service"
	"leadscout_backend/internal/snapshot"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/httpkit"
	"leadscout_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type stubSearcher struct {
	enabled   bool
	searchErr error
	cached    *snapshot.CachedSearch
	importErr error
	cleared   bool
	gotParams service.Params
}

func (s *stubSearcher) Enabled() bool { return s.enabled }

func (s *stubSearcher) Search(_ context.Context, _ string, params service.Params) (service.Outcome, error) {
	s.gotParams = params
	if s.searchErr != nil {
		return service.Outcome{}, s.searchErr
	}
	return service.Outcome{
		Location: geocode.Location{City: "Austin", CountryCode: "US"},
		Snapshot: snapshot.CachedSearch{Search: snapshot.Search{
			Results:  []business.Result{{ExternalID: "biz-1", Name: "Cafe A"}},
			Industry: business.IndustryCafe,
		}, Timestamp: time.Now()},
	}, nil
}

func (s *stubSearcher) Last(context.Context, string) (snapshot.CachedSearch, bool, error) {
	if s.cached == nil {
		return snapshot.CachedSearch{}, false, nil
	}
	return *s.cached, true, nil
}

func (s *stubSearcher) ClearLast(context.Context, string) error {
	s.cleared = true
	return nil
}

func (s *stubSearcher) ImportLast(context.Context, string) (leadservice.ReconcileResult, error) {
	return leadservice.ReconcileResult{Created: 1}, s.importErr
}

type stubPhotos struct{}

func (stubPhotos) PhotoURL(name string) *string {
	u := "https://media.example/" + name + "?key=current"
	return &u
}

func serve(t *testing.T, svc Searcher, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	return serveWithPhotos(t, svc, nil, method, target)
}

func serveWithPhotos(t *testing.T, svc Searcher, photos business.PhotoLinker, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, "u1")
		c.Next()
	})
	New(svc, validator.New(), photos).RegisterRoutes(r.Group("/search"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	svc := &stubSearcher{enabled: true}
	rec := serve(t, svc, http.MethodGet, "/search?city=Austin&country=us&industry=cafe")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"externalId":"biz-1"`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotParams.Country != "us" || svc.gotParams.Industry != "cafe" {
		t.Fatalf("unexpected params %+v", svc.gotParams)
	}
}

func TestSearchEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		svc    *stubSearcher
		target string
		status int
	}{
		{"disabled", &stubSearcher{}, "/search?city=Austin&industry=cafe", http.StatusServiceUnavailable},
		{"missing industry", &stubSearcher{enabled: true}, "/search?city=Austin", http.StatusBadRequest},
		{"not found", &stubSearcher{enabled: true, searchErr: apperr.NotFound("location not found")}, "/search?city=X&industry=cafe", http.StatusNotFound},
		{"provider down", &stubSearcher{enabled: true, searchErr: apperr.ResolutionFailed("down", nil)}, "/search?city=X&industry=cafe", http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, tc.svc, http.MethodGet, tc.target)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLastSearchEndpoints(t *testing.T) {
	empty := &stubSearcher{}
	if rec := serve(t, empty, http.MethodGet, "/search/last"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	saved := &stubSearcher{cached: &snapshot.CachedSearch{Search: snapshot.Search{City: "Austin", Country: "us"}}}
	rec := serve(t, saved, http.MethodGet, "/search/last")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"city":"Austin"`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}

	if rec := serve(t, saved, http.MethodDelete, "/search/last"); rec.Code != http.StatusNoContent || !saved.cleared {
		t.Fatalf("expected 204 and a cleared slot, got %d", rec.Code)
	}
}

func TestLastSearchLinksPhotosAtReadTime(t *testing.T) {
	name := "places/p1/photos/a"
	saved := &stubSearcher{cached: &snapshot.CachedSearch{Search: snapshot.Search{
		City:    "Austin",
		Results: []business.Result{{ExternalID: "biz-1", Name: "Cafe A", PhotoName: &name}},
	}}}

	rec := serveWithPhotos(t, saved, stubPhotos{}, http.MethodGet, "/search/last")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"photoUrl":"https://media.example/places/p1/photos/a?key=current"`) {
		t.Fatalf("expected a linked photo url, got %d: %s", rec.Code, rec.Body.String())
	}
	if saved.cached.Results[0].PhotoURL != nil {
		t.Fatalf("linking must not write back into the snapshot")
	}

	rec = serve(t, saved, http.MethodGet, "/search/last")
	if strings.Contains(rec.Body.String(), "photoUrl") {
		t.Fatalf("no linker means no photo url, got %s", rec.Body.String())
	}
}

func TestImportLastEndpoint(t *testing.T) {
	rec := serve(t, &stubSearcher{}, http.MethodPost, "/search/last/import")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"created":1`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(t, &stubSearcher{importErr: apperr.NotFound("no saved search")}, http.MethodPost, "/search/last/import")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
