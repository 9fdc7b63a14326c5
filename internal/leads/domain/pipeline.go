package domain

import (
	"slices"

	"leadscout_backend/platform/apperr"
)

// Pipeline decides which status changes are allowed for a catalog.
// Terminal stages are absorbing. A stage listing allowedNext may only move
// to those stages; otherwise it may move to any other stage.
type Pipeline struct {
	catalog *StatusCatalog
}

// NewPipeline creates a pipeline over catalog.
func NewPipeline(catalog *StatusCatalog) *Pipeline {
	return &Pipeline{catalog: catalog}
}

// Catalog returns the catalog the pipeline enforces.
func (p *Pipeline) Catalog() *StatusCatalog {
	return p.catalog
}

// CanTransition reports whether a lead in from may move to to.
func (p *Pipeline) CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	current, ok := p.catalog.Lookup(from)
	if !ok || !p.catalog.IsKnown(to) {
		return false
	}
	if current.Terminal {
		return false
	}
	if len(current.AllowedNext) > 0 {
		return slices.Contains(current.AllowedNext, to)
	}
	return true
}

// Apply returns a copy of lead moved to status to. The input is never modified.
func (p *Pipeline) Apply(lead Lead, to string) (Lead, error) {
	if !p.CanTransition(lead.Status, to) {
		return lead, apperr.InvalidTransition(lead.Status, to).WithOp("pipeline.Apply")
	}
	next := lead
	next.Status = to
	return next, nil
}
