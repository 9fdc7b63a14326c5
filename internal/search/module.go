// Package search wires business discovery: geocode the area, query the
// places provider and keep the result as the caller's last search.
package search

import (
	"leadscout_backend/internal/business"
	apphttp "leadscout_backend/internal/http"
	"leadscout_backend/internal/search/handler"
	"leadscout_backend/internal/search/places"
	"leadscout_backend/internal/search/service"
	"leadscout_backend/internal/snapshot"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

func NewModule(
	cfg config.PlacesConfig,
	resolver service.LocationResolver,
	slots *snapshot.Slots,
	importer service.LeadImporter,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	var searcher service.PlacesSearcher
	if cfg.IsPlacesEnabled() {
		searcher = places.NewClient(cfg.GetPlacesAPIKey(),
			places.WithBaseURL(cfg.GetPlacesBaseURL()),
			places.WithMaxResults(cfg.GetPlacesMaxResults()),
		)
	} else {
		log.Warn("GOOGLE_PLACES_API_KEY not set; business search disabled")
	}

	svc := service.New(resolver, searcher, service.SnapshotSlots{Slots: slots}, importer, cfg.GetSearchDefaultRadiusMeters(), log)
	return &Module{handler: handler.New(svc, val, PhotoLinker(cfg)), svc: svc}
}

// PhotoLinker returns the photo URL builder for stored photo names, or nil
// when no Places key is configured.
func PhotoLinker(cfg config.PlacesConfig) business.PhotoLinker {
	if !cfg.IsPlacesEnabled() {
		return nil
	}
	return places.NewPhotoLinker(cfg.GetPlacesBaseURL(), cfg.GetPlacesAPIKey())
}

func (m *Module) Name() string {
	return "search"
}

// Service returns the search service.
func (m *Module) Service() *service.Service {
	return m.svc
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/search")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
