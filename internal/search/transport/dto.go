package transport

import (
	"time"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/geocode"
)

// SearchRequest represents the query parameters of GET /search.
type SearchRequest struct {
	City     string `form:"city" validate:"required,max=200"`
	Country  string `form:"country" validate:"countrycode"`
	Industry string `form:"industry" validate:"required"`
}

type SearchResponse struct {
	Location  geocode.Location  `json:"location"`
	Industry  business.Industry `json:"industry"`
	Results   []business.Result `json:"results"`
	Total     int               `json:"total"`
	Timestamp time.Time         `json:"timestamp"`
}

// LastSearchResponse is the resumable snapshot of the caller's last search.
type LastSearchResponse struct {
	City      string            `json:"city"`
	Country   string            `json:"country"`
	Industry  business.Industry `json:"industry"`
	Results   []business.Result `json:"results"`
	Total     int               `json:"total"`
	Timestamp time.Time         `json:"timestamp"`
}

type ImportLastResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
