// Package service holds the lead use cases: reconciliation of discovered
// businesses, administrative reassignment and pipeline transitions.
package service

import (
	"context"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// LeadStore is the store accessor the lead services compose.
type LeadStore interface {
	FindLeads(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error)
	GetLead(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	CreateLead(ctx context.Context, params repository.CreateLeadParams) (domain.Lead, error)
	UpdateLead(ctx context.Context, id uuid.UUID, fields domain.BusinessFields) (domain.Lead, error)
	UpdateManyLeads(ctx context.Context, filter repository.LeadFilter, params repository.BulkUpdateParams) (int64, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, from, to string) (domain.Lead, error)
	FindUniqueUser(ctx context.Context, email string) (repository.User, error)
}
