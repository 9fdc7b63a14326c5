package service

import (
	"context"
	"errors"
	"strings"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/geocode"
	leadservice "leadscout_backend/internal/leads/service"
	"leadscout_backend/internal/search/places"
	"leadscout_backend/internal/snapshot"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/logger"
)

// LocationResolver resolves the search area.
type LocationResolver interface {
	Resolve(ctx context.Context, city, country string) (geocode.Location, error)
}

// PlacesSearcher is the business-search provider.
type PlacesSearcher interface {
	SearchNearby(ctx context.Context, req places.NearbyRequest) ([]places.Place, error)
}

// Slot is one client's snapshot cache.
type Slot interface {
	Save(ctx context.Context, search snapshot.Search) (snapshot.CachedSearch, error)
	Load(ctx context.Context) (snapshot.CachedSearch, bool, error)
	Clear(ctx context.Context) error
}

// SlotProvider hands out per-client slots.
type SlotProvider interface {
	ForClient(clientID string) Slot
}

// LeadImporter reconciles results into the caller's leads.
type LeadImporter interface {
	ReconcileInRegion(ctx context.Context, candidates []business.Result, owner, region string) (leadservice.ReconcileResult, error)
}

// Params are the validated inputs of a search.
type Params struct {
	City     string
	Country  string
	Industry string
}

// Outcome is a completed search: where it ran and what was saved.
type Outcome struct {
	Location geocode.Location
	Snapshot snapshot.CachedSearch
}

var ErrSearchDisabled = errors.New("business search is not configured")

type Service struct {
	resolver      LocationResolver
	places        PlacesSearcher
	slots         SlotProvider
	importer      LeadImporter
	defaultRadius float64
	log           *logger.Logger
}

// New creates the search service. searcher may be nil when no Places API key
// is configured; Search then fails with ErrSearchDisabled.
func New(resolver LocationResolver, searcher PlacesSearcher, slots SlotProvider, importer LeadImporter, defaultRadius float64, log *logger.Logger) *Service {
	return &Service{
		resolver:      resolver,
		places:        searcher,
		slots:         slots,
		importer:      importer,
		defaultRadius: defaultRadius,
		log:           log,
	}
}

// Enabled reports whether a business-search provider is configured.
func (s *Service) Enabled() bool {
	return s.places != nil
}

// Search resolves the area, queries the provider and saves the result as the
// owner's last search.
func (s *Service) Search(ctx context.Context, owner string, params Params) (Outcome, error) {
	if !s.Enabled() {
		return Outcome{}, ErrSearchDisabled
	}
	if strings.TrimSpace(owner) == "" {
		return Outcome{}, apperr.Validation("owner is required").WithOp("search.Search")
	}

	industry, err := business.ParseIndustry(params.Industry)
	if err != nil {
		return Outcome{}, apperr.Validation(err.Error()).WithOp("search.Search")
	}

	location, err := s.resolver.Resolve(ctx, params.City, params.Country)
	if errors.Is(err, geocode.ErrNotFound) {
		return Outcome{}, apperr.NotFound("location not found").WithOp("search.Search")
	}
	if err != nil {
		return Outcome{}, err
	}

	radius := s.defaultRadius
	if location.RadiusMeters != nil && *location.RadiusMeters > 0 {
		radius = *location.RadiusMeters
	}

	placesType, _ := industry.PlacesType()
	found, err := s.places.SearchNearby(ctx, places.NearbyRequest{
		Latitude:     location.Latitude,
		Longitude:    location.Longitude,
		RadiusMeters: radius,
		IncludedType: placesType,
	})
	if err != nil {
		s.log.Error("business search failed", "city", location.City, "industry", industry, "error", err)
		return Outcome{}, apperr.ResolutionFailed("business search provider unavailable", err).WithOp("search.Search")
	}

	results := make([]business.Result, 0, len(found))
	for _, p := range found {
		results = append(results, places.ToResult(p, industry))
	}

	saved, err := s.slots.ForClient(owner).Save(ctx, snapshot.Search{
		Results:  results,
		Industry: industry,
		City:     location.City,
		Country:  strings.ToLower(location.CountryCode),
	})
	if err != nil {
		return Outcome{}, err
	}

	s.log.Info("business search completed", "city", location.City, "industry", industry, "results", len(results))
	return Outcome{Location: location, Snapshot: saved}, nil
}

// Last returns the owner's saved search.
func (s *Service) Last(ctx context.Context, owner string) (snapshot.CachedSearch, bool, error) {
	return s.slots.ForClient(owner).Load(ctx)
}

// ClearLast forgets the owner's saved search.
func (s *Service) ClearLast(ctx context.Context, owner string) error {
	return s.slots.ForClient(owner).Clear(ctx)
}

// ImportLast reconciles the owner's saved search into their leads, using the
// search country as the phone region.
func (s *Service) ImportLast(ctx context.Context, owner string) (leadservice.ReconcileResult, error) {
	cached, ok, err := s.Last(ctx, owner)
	if err != nil {
		return leadservice.ReconcileResult{}, err
	}
	if !ok {
		return leadservice.ReconcileResult{}, apperr.NotFound("no saved search").WithOp("search.ImportLast")
	}
	return s.importer.ReconcileInRegion(ctx, cached.Results, owner, cached.Country)
}

// SnapshotSlots adapts snapshot.Slots to SlotProvider.
type SnapshotSlots struct {
	*snapshot.Slots
}

func (s SnapshotSlots) ForClient(clientID string) Slot {
	return s.Slots.ForClient(clientID)
}
