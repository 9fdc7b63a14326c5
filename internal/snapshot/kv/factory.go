package kv

import (
	"fmt"
	"io"

	"leadscout_backend/platform/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend named by cfg. The returned closer releases the
// backend's resources and is never nil.
func Open(cfg config.SnapshotConfig, tlsInsecure bool) (Store, io.Closer, error) {
	switch cfg.GetSnapshotBackend() {
	case "", config.SnapshotBackendMemory:
		return NewMemory(), nopCloser{}, nil
	case config.SnapshotBackendRedis:
		client, err := NewRedisClient(cfg.GetRedisURL(), tlsInsecure)
		if err != nil {
			return nil, nil, err
		}
		return NewRedis(client), client, nil
	case config.SnapshotBackendBadger:
		store, err := OpenBadger(cfg.GetSnapshotBadgerPath())
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.GetSnapshotBackend())
	}
}
