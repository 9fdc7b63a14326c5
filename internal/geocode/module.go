package geocode

import (
	apphttp "leadscout_backend/internal/http"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"
)

// Module wires the geocode HTTP routes.
type Module struct {
	resolver *Resolver
	handler  *Handler
}

// NewModule builds a Nominatim-backed resolver from configuration.
func NewModule(cfg config.GeocodeConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	selector, err := SelectorByName(cfg.GetGeocodeSelector())
	if err != nil {
		return nil, err
	}

	provider := NewNominatim(cfg.GetNominatimUserAgent(), log, WithBaseURL(cfg.GetNominatimURL()))
	resolver := NewResolver(provider, cfg.GetGeocodeDefaultCountry(),
		WithSelector(selector),
		WithTimeout(cfg.GetGeocodeTimeout()),
		WithMaxRadius(cfg.GetGeocodeMaxRadiusMeters()),
	)

	return &Module{resolver: resolver, handler: NewHandler(resolver, val)}, nil
}

func (m *Module) Name() string {
	return "geocode"
}

// Resolver returns the shared resolver for the search module.
func (m *Module) Resolver() *Resolver {
	return m.resolver
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/geocode", m.handler.Lookup)
}

var _ apphttp.Module = (*Module)(nil)
