// Package snapshot remembers each client's last business search so the
// session can be resumed without querying the provider again.
package snapshot

import (
	"time"

	"leadscout_backend/internal/business"
)

// Search is what a caller saves. The cache adds the timestamp.
type Search struct {
	Results  []business.Result `json:"results"`
	Industry business.Industry `json:"industry"`
	City     string            `json:"city"`
	Country  string            `json:"country"`
}

// CachedSearch is a saved Search with the moment it was written.
// It is advisory: the cache never expires it.
type CachedSearch struct {
	Search
	Timestamp time.Time `json:"timestamp"`
}

// IsStale reports whether the snapshot is older than maxAge at now.
// A non-positive maxAge never goes stale.
func (s CachedSearch) IsStale(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(s.Timestamp) > maxAge
}
