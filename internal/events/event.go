// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadscout_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadsImported is published after a reconciliation run, including partial
// runs that stopped on an error.
type LeadsImported struct {
	BaseEvent
	OwnerID string `json:"ownerId"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  bool   `json:"failed"`
}

func (e LeadsImported) EventName() string { return "leads.imported" }

// LeadStageChanged is published after a pipeline transition is persisted.
type LeadStageChanged struct {
	BaseEvent
	LeadID  uuid.UUID `json:"leadId"`
	OwnerID string    `json:"ownerId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
}

func (e LeadStageChanged) EventName() string { return "leads.stage_changed" }

// LeadsReassigned is published after the administrative bulk reassignment.
type LeadsReassigned struct {
	BaseEvent
	TargetOwner string `json:"targetOwner"`
	Count       int64  `json:"count"`
}

func (e LeadsReassigned) EventName() string { return "leads.reassigned" }
