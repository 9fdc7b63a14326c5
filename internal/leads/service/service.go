package service

import (
	"context"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/platform/apperr"
)

// ListParams filters an owner's leads.
type ListParams struct {
	Status   string
	Industry string
}

// Service answers read-side queries for the caller's leads.
type Service struct {
	store   LeadStore
	catalog *domain.StatusCatalog
}

// New creates the read-side lead service.
func New(store LeadStore, catalog *domain.StatusCatalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// List returns owner's leads, optionally filtered by status and industry.
func (s *Service) List(ctx context.Context, owner string, params ListParams) ([]domain.Lead, error) {
	if owner == "" {
		return nil, apperr.Validation("owner is required")
	}
	filter := repository.LeadFilter{OwnerID: owner, Status: params.Status}
	if params.Status != "" && !s.catalog.IsKnown(params.Status) {
		return nil, apperr.Validation("unknown status").WithDetails(map[string]string{"status": params.Status})
	}
	if params.Industry != "" {
		industry, err := business.ParseIndustry(params.Industry)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		filter.Industry = industry
	}
	return s.store.FindLeads(ctx, filter)
}
