package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadscout_backend/internal/business"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchNearby_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places:searchNearby", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "places.id")

		var body searchNearbyBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"cafe"}, body.IncludedTypes)
		assert.Equal(t, 10, body.MaxResultCount)
		assert.InDelta(t, 30.27, body.LocationRestriction.Circle.Center.Latitude, 0.001)
		assert.InDelta(t, 2500, body.LocationRestriction.Circle.Radius, 0.001)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"places":[{
			"id":"ChIJ1","displayName":{"text":"Cafe A"},"formattedAddress":"1 Main St",
			"types":["cafe","food"],"rating":4.6,"userRatingCount":212,
			"internationalPhoneNumber":"+1 512-555-0100","websiteUri":"https://cafe-a.example",
			"location":{"latitude":30.27,"longitude":-97.74},"photos":[{"name":"places/ChIJ1/photos/p1"}]
		}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithMaxResults(10))
	places, err := client.SearchNearby(context.Background(), NearbyRequest{
		Latitude: 30.27, Longitude: -97.74, RadiusMeters: 2500, IncludedType: "cafe",
	})

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "ChIJ1", places[0].ID)
	assert.Equal(t, "Cafe A", places[0].DisplayName.Text)
	require.NotNil(t, places[0].UserRatingCount)
	assert.Equal(t, 212, *places[0].UserRatingCount)
}

func TestSearchNearby_ClampsRadiusAndOmitsType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body searchNearbyBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Empty(t, body.IncludedTypes)
		assert.InDelta(t, MaxRadiusMeters, body.LocationRestriction.Circle.Radius, 0.001)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	places, err := NewClient("k", WithBaseURL(srv.URL)).SearchNearby(context.Background(), NearbyRequest{RadiusMeters: 120000})
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestSearchNearby_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		quota  bool
	}{
		{"quota", http.StatusTooManyRequests, `{}`, true},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"API key invalid"}}`, false},
		{"garbage", http.StatusOK, `not json`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient("k", WithBaseURL(srv.URL)).SearchNearby(context.Background(), NearbyRequest{})
			require.Error(t, err)
			if tc.quota {
				assert.ErrorIs(t, err, ErrQuotaExceeded)
			}
		})
	}
}

func TestPhotoLinker(t *testing.T) {
	linker := NewPhotoLinker("https://places.example/v1/", "secret")
	got := linker.PhotoURL("places/X/photos/p1")
	require.NotNil(t, got)
	assert.Equal(t, "https://places.example/v1/places/X/photos/p1/media?key=secret&maxWidthPx=400", *got)

	assert.Nil(t, linker.PhotoURL("  "))
	assert.Nil(t, NewPhotoLinker("", "").PhotoURL("places/X/photos/p1"))

	rotated := NewPhotoLinker("", "new-key").PhotoURL("places/X/photos/p1")
	require.NotNil(t, rotated)
	assert.Equal(t, "https://places.googleapis.com/v1/places/X/photos/p1/media?key=new-key&maxWidthPx=400", *rotated)
}

func TestToResult(t *testing.T) {
	rating := 4.0
	count := 9
	place := Place{
		ID:                  "ChIJ2",
		DisplayName:         DisplayName{Text: "Bakery B"},
		FormattedAddress:    "2 Main St",
		Types:               []string{"point_of_interest", "bakery"},
		Rating:              &rating,
		UserRatingCount:     &count,
		NationalPhoneNumber: "(512) 555-0101",
		Photos:              []Photo{{Name: "places/ChIJ2/photos/p"}},
		Location:            &LatLng{Latitude: 1, Longitude: 2},
	}

	result := ToResult(place, "")

	assert.Equal(t, "ChIJ2", result.ExternalID)
	assert.Equal(t, business.IndustryBakery, result.Industry)
	require.NotNil(t, result.Phone)
	assert.Equal(t, "(512) 555-0101", *result.Phone)
	assert.Nil(t, result.Website)
	require.NotNil(t, result.PhotoName)
	assert.Equal(t, "places/ChIJ2/photos/p", *result.PhotoName)
	assert.Nil(t, result.PhotoURL, "no key-bearing url may be stored with the result")
	require.NotNil(t, result.Score)
	assert.InDelta(t, 26.7, *result.Score, 0.001)
	require.NotNil(t, result.Latitude)

	explicit := ToResult(place, business.IndustryCafe)
	assert.Equal(t, business.IndustryCafe, explicit.Industry)
}

func TestScore(t *testing.T) {
	assert.Nil(t, Score(nil, nil))

	five := 5.0
	many := 5000
	require.NotNil(t, Score(&five, &many))
	assert.InDelta(t, 100, *Score(&five, &many), 0.001)
	assert.InDelta(t, 0, *Score(&five, nil), 0.001)
}
