package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"leadscout_backend/platform/logger"

	"golang.org/x/time/rate"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	nominatimLimit      = 5
)

// ErrRateLimited is returned when Nominatim answers 429.
var ErrRateLimited = errors.New("nominatim rate limit exceeded")

// Nominatim is a Provider backed by the OpenStreetMap Nominatim search API.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	log       *logger.Logger
}

// NominatimOption customizes the client.
type NominatimOption func(*Nominatim)

// WithBaseURL points the client at another Nominatim instance.
func WithBaseURL(u string) NominatimOption {
	return func(n *Nominatim) {
		if u != "" {
			n.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) NominatimOption {
	return func(n *Nominatim) { n.client = c }
}

// WithRateLimiter replaces the client-side limiter. nil disables limiting.
func WithRateLimiter(l *rate.Limiter) NominatimOption {
	return func(n *Nominatim) { n.limiter = l }
}

// NewNominatim creates a client allowing one request per second, the public
// instance's usage policy.
func NewNominatim(userAgent string, log *logger.Logger, opts ...NominatimOption) *Nominatim {
	n := &Nominatim{
		baseURL:   defaultNominatimURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		log:       log,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type nominatimResponse struct {
	DisplayName string   `json:"display_name"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	Importance  float64  `json:"importance"`
	BoundingBox []string `json:"boundingbox"`
}

// Geocode searches for city within countryCode.
func (n *Nominatim) Geocode(ctx context.Context, city, countryCode string) ([]Candidate, error) {
	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("nominatim rate limiter: %w", err)
		}
	}

	params := url.Values{}
	params.Add("city", city)
	params.Add("countrycodes", countryCode)
	params.Add("format", "jsonv2")
	params.Add("limit", strconv.Itoa(nominatimLimit))

	reqURL := fmt.Sprintf("%s/search?%s", n.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Error("nominatim request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		n.log.Warn("nominatim rate limited", "status", resp.StatusCode)
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		n.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var raw []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		n.log.Error("failed to decode nominatim payload", "error", err)
		return nil, fmt.Errorf("decode nominatim payload: %w", err)
	}

	candidates := make([]Candidate, 0, len(raw))
	for _, item := range raw {
		candidate, ok := buildCandidate(item)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func buildCandidate(raw nominatimResponse) (Candidate, bool) {
	lat, errLat := strconv.ParseFloat(raw.Lat, 64)
	lon, errLon := strconv.ParseFloat(raw.Lon, 64)
	if errLat != nil || errLon != nil {
		return Candidate{}, false
	}

	return Candidate{
		DisplayName: raw.DisplayName,
		Latitude:    lat,
		Longitude:   lon,
		Importance:  raw.Importance,
		BoundingBox: parseBoundingBox(raw.BoundingBox),
	}, true
}

// parseBoundingBox reads Nominatim's [south, north, west, east] string array.
func parseBoundingBox(values []string) *BoundingBox {
	if len(values) != 4 {
		return nil
	}
	var parsed [4]float64
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		parsed[i] = f
	}
	return &BoundingBox{South: parsed[0], North: parsed[1], West: parsed[2], East: parsed[3]}
}
