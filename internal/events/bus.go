package events

import (
	platformevents "leadscout_backend/platform/events"
	"leadscout_backend/platform/logger"
)

type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus returns the bus shared by cmd/api and cmd/worker.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
