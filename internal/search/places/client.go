// Package places is a client for the Google Places API (New) nearby search.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL    = "https://places.googleapis.com/v1"
	defaultMaxResults = 20
	// MaxRadiusMeters is the largest circle searchNearby accepts.
	MaxRadiusMeters = 50000.0
	photoMaxWidthPx = 400
)

var fieldMask = strings.Join([]string{
	"places.id",
	"places.displayName",
	"places.formattedAddress",
	"places.types",
	"places.rating",
	"places.userRatingCount",
	"places.nationalPhoneNumber",
	"places.internationalPhoneNumber",
	"places.websiteUri",
	"places.location",
	"places.photos",
}, ",")

// ErrQuotaExceeded is returned when the API answers 429.
var ErrQuotaExceeded = errors.New("places quota exceeded")

// Place is the subset of a Places API place the search uses.
type Place struct {
	ID                       string      `json:"id"`
	DisplayName              DisplayName `json:"displayName"`
	FormattedAddress         string      `json:"formattedAddress"`
	Types                    []string    `json:"types"`
	Rating                   *float64    `json:"rating,omitempty"`
	UserRatingCount          *int        `json:"userRatingCount,omitempty"`
	NationalPhoneNumber      string      `json:"nationalPhoneNumber,omitempty"`
	InternationalPhoneNumber string      `json:"internationalPhoneNumber,omitempty"`
	WebsiteURI               string      `json:"websiteUri,omitempty"`
	Location                 *LatLng     `json:"location,omitempty"`
	Photos                   []Photo     `json:"photos,omitempty"`
}

// DisplayName holds the place's localized name.
type DisplayName struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Photo references a place photo by resource name.
type Photo struct {
	Name string `json:"name"`
}

// NearbyRequest bounds a search to a circle and optionally one place type.
type NearbyRequest struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IncludedType string
}

type nearbyResponse struct {
	Places []Place `json:"places"`
}

type searchNearbyBody struct {
	IncludedTypes       []string            `json:"includedTypes,omitempty"`
	MaxResultCount      int                 `json:"maxResultCount"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"`
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithMaxResults sets maxResultCount, between 1 and 20.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= defaultMaxResults {
			c.maxResults = n
		}
	}
}

// Client performs Places API requests.
type Client struct {
	apiKey     string
	baseURL    string
	maxResults int
	http       *http.Client
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		maxResults: defaultMaxResults,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SearchNearby returns places inside the request circle, in provider order.
func (c *Client) SearchNearby(ctx context.Context, req NearbyRequest) ([]Place, error) {
	radius := req.RadiusMeters
	if radius <= 0 || radius > MaxRadiusMeters {
		radius = MaxRadiusMeters
	}

	body := searchNearbyBody{
		MaxResultCount: c.maxResults,
		LocationRestriction: locationRestriction{Circle: circle{
			Center: LatLng{Latitude: req.Latitude, Longitude: req.Longitude},
			Radius: radius,
		}},
	}
	if req.IncludedType != "" {
		body.IncludedTypes = []string{req.IncludedType}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("places: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchNearby", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("places: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)
	httpReq.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("places: send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("places: read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result nearbyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("places: unmarshal response: %w", err)
	}
	return result.Places, nil
}

// PhotoLinker builds Places media URLs at read time, so only photo resource
// names are ever stored and a rotated key takes effect immediately.
type PhotoLinker struct {
	baseURL string
	apiKey  string
}

// NewPhotoLinker returns a linker for baseURL (empty means the public API).
func NewPhotoLinker(baseURL, apiKey string) PhotoLinker {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return PhotoLinker{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

// PhotoURL returns the media URL of a photo resource name, or nil when the
// name is blank or no key is configured.
func (l PhotoLinker) PhotoURL(photoName string) *string {
	photoName = strings.Trim(strings.TrimSpace(photoName), "/")
	if photoName == "" || l.apiKey == "" {
		return nil
	}
	params := url.Values{}
	params.Set("maxWidthPx", fmt.Sprint(photoMaxWidthPx))
	params.Set("key", l.apiKey)
	u := fmt.Sprintf("%s/%s/media?%s", l.baseURL, photoName, params.Encode())
	return &u
}
