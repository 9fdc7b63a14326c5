package service

import (
	"context"
	"errors"
	"strings"

	"leadscout_backend/internal/events"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/logger"

	"github.com/google/uuid"
)

// Pipeline persists status changes approved by the domain state machine.
// It is the only code path that writes a lead's status.
type Pipeline struct {
	store    LeadStore
	pipeline *domain.Pipeline
	bus      events.Bus
	log      *logger.Logger
}

// NewPipeline creates the pipeline service.
func NewPipeline(store LeadStore, pipeline *domain.Pipeline, bus events.Bus, log *logger.Logger) *Pipeline {
	return &Pipeline{store: store, pipeline: pipeline, bus: bus, log: log}
}

// Stages returns the configured status catalog.
func (p *Pipeline) Stages() []domain.Stage {
	return p.pipeline.Catalog().Stages()
}

// Transition moves the actor's lead to status to.
func (p *Pipeline) Transition(ctx context.Context, actor string, leadID uuid.UUID, to string) (domain.Lead, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return domain.Lead{}, apperr.Validation("status is required").WithOp("pipeline.Transition")
	}

	lead, err := p.store.GetLead(ctx, leadID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Lead{}, apperr.NotFound("lead not found").WithOp("pipeline.Transition")
	}
	if err != nil {
		return domain.Lead{}, err
	}
	if lead.OwnerID != actor {
		return domain.Lead{}, apperr.Forbidden("lead belongs to another owner").WithOp("pipeline.Transition")
	}

	next, err := p.pipeline.Apply(lead, to)
	if err != nil {
		return domain.Lead{}, err
	}

	persisted, err := p.store.UpdateLeadStatus(ctx, lead.ID, lead.Status, next.Status)
	if errors.Is(err, repository.ErrStaleStatus) {
		return domain.Lead{}, apperr.InvalidTransition(lead.Status, to).WithOp("pipeline.Transition")
	}
	if err != nil {
		return domain.Lead{}, err
	}

	p.log.WithContext(ctx).Info("lead stage changed", "leadId", lead.ID, "from", lead.Status, "to", persisted.Status)
	p.bus.Publish(ctx, events.LeadStageChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OwnerID:   lead.OwnerID,
		From:      lead.Status,
		To:        persisted.Status,
	})
	return persisted, nil
}

// RegisterActivityRecorder writes a lead_activity row for every persisted stage change.
func RegisterActivityRecorder(bus events.Bus, activity repository.ActivityLogger) {
	bus.Subscribe(events.LeadStageChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		changed, ok := event.(events.LeadStageChanged)
		if !ok {
			return nil
		}
		return activity.AddActivity(ctx, changed.LeadID, changed.OwnerID, "stage_changed", map[string]interface{}{
			"from":    changed.From,
			"to":      changed.To,
			"eventId": changed.EventID().String(),
		})
	}))
}
