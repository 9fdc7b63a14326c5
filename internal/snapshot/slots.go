package snapshot

import (
	"time"

	"leadscout_backend/internal/snapshot/kv"
	"leadscout_backend/platform/logger"
)

// Slots hands out one Cache per client, keyed "<prefix>:<clientID>".
type Slots struct {
	store  kv.Store
	prefix string
	log    *logger.Logger
	now    func() time.Time
}

func NewSlots(store kv.Store, prefix string, log *logger.Logger) *Slots {
	return &Slots{store: store, prefix: prefix, log: log, now: time.Now}
}

// ForClient returns the slot of clientID.
func (s *Slots) ForClient(clientID string) *Cache {
	return NewCache(s.store, s.prefix+":"+clientID, s.log, WithClock(s.now))
}
