package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/events"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/phone"
)

// ReconcileResult tallies one reconciliation run. On failure it reflects
// exactly the writes that succeeded before the error.
type ReconcileResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Merger reconciles discovered businesses into an owner's lead set.
type Merger struct {
	store         LeadStore
	catalog       *domain.StatusCatalog
	bus           events.Bus
	log           *logger.Logger
	defaultRegion string
}

// NewMerger creates a merger. defaultRegion is the phone region used when a
// reconcile call does not name one.
func NewMerger(store LeadStore, catalog *domain.StatusCatalog, bus events.Bus, log *logger.Logger, defaultRegion string) *Merger {
	return &Merger{
		store:         store,
		catalog:       catalog,
		bus:           bus,
		log:           log,
		defaultRegion: defaultRegion,
	}
}

// Reconcile merges candidates into owner's leads using the default phone region.
func (m *Merger) Reconcile(ctx context.Context, candidates []business.Result, owner string) (ReconcileResult, error) {
	return m.ReconcileInRegion(ctx, candidates, owner, m.defaultRegion)
}

// ReconcileInRegion merges candidates into owner's leads. For each candidate:
// no existing lead creates one in the initial stage, one existing lead gets its
// business fields refreshed (status and owner untouched), and more than one is
// a data integrity error that stops the run. Each candidate is its own unit of
// work; earlier writes are not rolled back when a later candidate fails.
func (m *Merger) ReconcileInRegion(ctx context.Context, candidates []business.Result, owner, region string) (ReconcileResult, error) {
	var result ReconcileResult

	owner = strings.TrimSpace(owner)
	if owner == "" {
		return result, apperr.Validation("owner is required").WithOp("merger.Reconcile")
	}
	if region == "" {
		region = m.defaultRegion
	}

	log := m.log.WithContext(ctx).WithOwner(owner)
	seen := make(map[string]struct{}, len(candidates))

	for _, candidate := range candidates {
		externalID := strings.TrimSpace(candidate.ExternalID)
		if !candidate.Importable() {
			result.Skipped++
			continue
		}
		if _, dup := seen[externalID]; dup {
			result.Skipped++
			continue
		}
		seen[externalID] = struct{}{}

		fields := domain.FieldsFromResult(candidate)
		if fields.Phone != nil {
			normalized := phone.NormalizeE164(*fields.Phone, region)
			fields.Phone = &normalized
		}

		outcome, err := m.reconcileOne(ctx, owner, externalID, fields)
		if err != nil {
			if apperr.Is(err, apperr.KindDataIntegrity) {
				log.Error("duplicate leads detected during reconciliation", "externalId", externalID, "error", err)
			} else if apperr.Is(err, apperr.KindStoreUnavailable) {
				log.DatabaseError("reconcile lead", err)
			}
			m.publish(ctx, owner, result, true)
			return result, fmt.Errorf("reconcile candidate %q: %w", externalID, err)
		}

		switch outcome {
		case outcomeCreated:
			result.Created++
		case outcomeUpdated:
			result.Updated++
		default:
			result.Skipped++
		}
	}

	log.Info("leads reconciled", "created", result.Created, "updated", result.Updated, "skipped", result.Skipped)
	m.publish(ctx, owner, result, false)
	return result, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCreated
	outcomeUpdated
)

func (m *Merger) reconcileOne(ctx context.Context, owner, externalID string, fields domain.BusinessFields) (outcome, error) {
	existing, found, err := m.lookup(ctx, owner, externalID)
	if err != nil {
		return outcomeSkipped, err
	}

	if found {
		if existing.Fields().Equal(fields) {
			return outcomeSkipped, nil
		}
		if _, err := m.store.UpdateLead(ctx, existing.ID, fields); err != nil {
			return outcomeSkipped, err
		}
		return outcomeUpdated, nil
	}

	_, err = m.store.CreateLead(ctx, repository.CreateLeadParams{
		OwnerID:    owner,
		ExternalID: externalID,
		Status:     m.catalog.Initial(),
		Fields:     fields,
	})
	if err == nil {
		return outcomeCreated, nil
	}
	if !errors.Is(err, repository.ErrDuplicateLead) {
		return outcomeSkipped, err
	}

	// Lost a create race against a concurrent reconcile; the row exists now.
	existing, found, err = m.lookup(ctx, owner, externalID)
	if err != nil {
		return outcomeSkipped, err
	}
	if !found {
		return outcomeSkipped, apperr.DataIntegrity(fmt.Sprintf(
			"lead for owner %q and external id %q rejected as duplicate but not found", owner, externalID))
	}
	if _, err := m.store.UpdateLead(ctx, existing.ID, fields); err != nil {
		return outcomeSkipped, err
	}
	return outcomeUpdated, nil
}

func (m *Merger) lookup(ctx context.Context, owner, externalID string) (domain.Lead, bool, error) {
	leads, err := m.store.FindLeads(ctx, repository.LeadFilter{OwnerID: owner, ExternalID: externalID})
	if err != nil {
		return domain.Lead{}, false, err
	}
	switch len(leads) {
	case 0:
		return domain.Lead{}, false, nil
	case 1:
		return leads[0], true, nil
	default:
		return domain.Lead{}, false, apperr.DataIntegrity(fmt.Sprintf(
			"%d leads found for owner %q and external id %q", len(leads), owner, externalID)).
			WithDetails(map[string]string{"ownerId": owner, "externalId": externalID})
	}
}

func (m *Merger) publish(ctx context.Context, owner string, result ReconcileResult, failed bool) {
	m.bus.Publish(ctx, events.LeadsImported{
		BaseEvent: events.NewBaseEvent(),
		OwnerID:   owner,
		Created:   result.Created,
		Updated:   result.Updated,
		Skipped:   result.Skipped,
		Failed:    failed,
	})
}

// ReassignAll hands every lead in the store to targetOwner and returns the
// number of rows matched. Re-running it reports the same count.
// This is an explicit administrative operation; reconciliation never calls it.
func (m *Merger) ReassignAll(ctx context.Context, targetOwner string) (int64, error) {
	targetOwner = strings.TrimSpace(targetOwner)
	if targetOwner == "" {
		return 0, apperr.Validation("target owner is required").WithOp("merger.ReassignAll")
	}

	count, err := m.store.UpdateManyLeads(ctx, repository.LeadFilter{}, repository.BulkUpdateParams{OwnerID: &targetOwner})
	if err != nil {
		return 0, err
	}

	m.log.WithContext(ctx).Info("leads reassigned", "targetOwner", targetOwner, "count", count)
	m.bus.Publish(ctx, events.LeadsReassigned{
		BaseEvent:   events.NewBaseEvent(),
		TargetOwner: targetOwner,
		Count:       count,
	})
	return count, nil
}

// ReassignAllToEmail resolves email to a user and reassigns every lead to it.
// It returns the resolved owner key with the count.
func (m *Merger) ReassignAllToEmail(ctx context.Context, email string) (string, int64, error) {
	if strings.TrimSpace(email) == "" {
		return "", 0, apperr.Validation("email is required").WithOp("merger.ReassignAllToEmail")
	}

	user, err := m.store.FindUniqueUser(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", 0, apperr.NotFound("no user with that email").WithOp("merger.ReassignAllToEmail")
	}
	if err != nil {
		return "", 0, err
	}

	count, err := m.ReassignAll(ctx, user.ID)
	if err != nil {
		return "", 0, err
	}
	return user.ID, count, nil
}
