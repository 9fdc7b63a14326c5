package handler

import (
	"context"
	"errors"
	"net/http"

	"leadscout_backend/internal/business"
	leadservice "leadscout_backend/internal/leads/service"
	"leadscout_backend/internal/search/service"
	"leadscout_backend/internal/search/transport"
	"leadscout_backend/internal/snapshot"
	"leadscout_backend/platform/httpkit"
	"leadscout_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgNoSavedSearch    = "no saved search"
)

// Searcher is the slice of the search service the handler drives.
type Searcher interface {
	Enabled() bool
	Search(ctx context.Context, owner string, params service.Params) (service.Outcome, error)
	Last(ctx context.Context, owner string) (snapshot.CachedSearch, bool, error)
	ClearLast(ctx context.Context, owner string) error
	ImportLast(ctx context.Context, owner string) (leadservice.ReconcileResult, error)
}

type Handler struct {
	svc    Searcher
	val    *validator.Validator
	photos business.PhotoLinker
}

// New creates the search handler. photos may be nil, in which case results
// carry no photo URLs.
func New(svc Searcher, val *validator.Validator, photos business.PhotoLinker) *Handler {
	return &Handler{svc: svc, val: val, photos: photos}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Search)
	rg.GET("/last", h.GetLast)
	rg.DELETE("/last", h.ClearLast)
	rg.POST("/last/import", h.ImportLast)
}

func (h *Handler) Search(c *gin.Context) {
	if !h.svc.Enabled() {
		httpkit.Error(c, http.StatusServiceUnavailable, service.ErrSearchDisabled.Error(), nil)
		return
	}

	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	outcome, err := h.svc.Search(c.Request.Context(), identity.UserID(), service.Params{
		City:     req.City,
		Country:  req.Country,
		Industry: req.Industry,
	})
	if errors.Is(err, service.ErrSearchDisabled) {
		httpkit.Error(c, http.StatusServiceUnavailable, err.Error(), nil)
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SearchResponse{
		Location:  outcome.Location,
		Industry:  outcome.Snapshot.Industry,
		Results:   business.LinkPhotos(outcome.Snapshot.Results, h.photos),
		Total:     len(outcome.Snapshot.Results),
		Timestamp: outcome.Snapshot.Timestamp,
	})
}

func (h *Handler) GetLast(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	cached, ok, err := h.svc.Last(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	if !ok {
		httpkit.Error(c, http.StatusNotFound, msgNoSavedSearch, nil)
		return
	}

	httpkit.OK(c, transport.LastSearchResponse{
		City:      cached.City,
		Country:   cached.Country,
		Industry:  cached.Industry,
		Results:   business.LinkPhotos(cached.Results, h.photos),
		Total:     len(cached.Results),
		Timestamp: cached.Timestamp,
	})
}

func (h *Handler) ClearLast(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.svc.ClearLast(c.Request.Context(), identity.UserID())) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ImportLast(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ImportLast(c.Request.Context(), identity.UserID())
	partial := transport.ImportLastResponse{Created: result.Created, Updated: result.Updated, Skipped: result.Skipped}
	if err != nil {
		httpkit.HandleErrorWithDetails(c, err, gin.H{"partial": partial})
		return
	}

	httpkit.OK(c, partial)
}
