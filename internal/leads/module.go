// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"leadscout_backend/internal/business"
	"leadscout_backend/internal/events"
	apphttp "leadscout_backend/internal/http"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/handler"
	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/internal/leads/service"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	merger   *service.Merger
	pipeline *service.Pipeline
}

// Deps are the collaborators the leads module is built from.
type Deps struct {
	DB            repository.DB
	Catalog       *domain.StatusCatalog
	EventBus      events.Bus
	Validator     *validator.Validator
	Logger        *logger.Logger
	Enqueuer      handler.ImportEnqueuer
	Photos        business.PhotoLinker
	DefaultRegion string
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(deps Deps) *Module {
	repo := repository.New(deps.DB)

	merger := service.NewMerger(repo, deps.Catalog, deps.EventBus, deps.Logger, deps.DefaultRegion)
	pipeline := service.NewPipeline(repo, domain.NewPipeline(deps.Catalog), deps.EventBus, deps.Logger)
	lister := service.New(repo, deps.Catalog)

	service.RegisterActivityRecorder(deps.EventBus, repo)

	return &Module{
		handler:  handler.New(merger, pipeline, lister, deps.Enqueuer, deps.Validator).WithPhotos(deps.Photos),
		merger:   merger,
		pipeline: pipeline,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Merger returns the reconciliation service for other modules and the worker.
func (m *Module) Merger() *service.Merger {
	return m.merger
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
	m.handler.RegisterPipelineRoutes(ctx.Protected.Group("/pipeline"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
