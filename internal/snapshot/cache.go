package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/snapshot/kv"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/logger"
)

// Cache is a single slot holding one CachedSearch. Save overwrites; there is
// at most one snapshot per slot and one writer per slot is assumed.
type Cache struct {
	store kv.Store
	key   string
	log   *logger.Logger
	now   func() time.Time
}

// CacheOption customizes a Cache.
type CacheOption func(*Cache)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache binds a slot to key in store.
func NewCache(store kv.Store, key string, log *logger.Logger, opts ...CacheOption) *Cache {
	c := &Cache{store: store, key: key, log: log, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the storage key of the slot.
func (c *Cache) Key() string {
	return c.key
}

// Save overwrites the slot, stamping the snapshot with the current time.
func (c *Cache) Save(ctx context.Context, search Search) (CachedSearch, error) {
	cached := CachedSearch{Search: search, Timestamp: c.now().UTC()}
	if cached.Results == nil {
		cached.Results = []business.Result{}
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return CachedSearch{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.store.Set(ctx, c.key, payload); err != nil {
		return CachedSearch{}, apperr.StoreUnavailable("save search snapshot", err).WithOp("snapshot.Save")
	}
	return cached, nil
}

// Load returns the slot's snapshot. ok is false when nothing was saved or the
// stored payload cannot be parsed or carries no timestamp; a corrupt payload
// is logged, not returned.
func (c *Cache) Load(ctx context.Context) (CachedSearch, bool, error) {
	payload, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return CachedSearch{}, false, nil
	}
	if err != nil {
		return CachedSearch{}, false, apperr.StoreUnavailable("load search snapshot", err).WithOp("snapshot.Load")
	}

	var cached CachedSearch
	if err := json.Unmarshal(payload, &cached); err != nil {
		c.log.Warn("discarding unreadable search snapshot", "key", c.key, "error", err)
		return CachedSearch{}, false, nil
	}
	// Save always stamps the snapshot, so a zero timestamp means the payload
	// decoded to nothing (null, {}).
	if cached.Timestamp.IsZero() {
		c.log.Warn("discarding unreadable search snapshot", "key", c.key, "error", "missing timestamp")
		return CachedSearch{}, false, nil
	}
	return cached, true, nil
}

// Exists reports whether Load would return a snapshot.
func (c *Cache) Exists(ctx context.Context) (bool, error) {
	_, ok, err := c.Load(ctx)
	return ok, err
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.store.Remove(ctx, c.key); err != nil {
		return apperr.StoreUnavailable("clear search snapshot", err).WithOp("snapshot.Clear")
	}
	return nil
}
