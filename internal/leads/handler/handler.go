package handler

import (
	"context"
	"net/http"
	"strconv"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/service"
	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/httpkit"
	"leadscout_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgAsyncUnavailable = "background import is not configured"
)

// Reconciler merges candidates into leads and performs bulk reassignment.
type Reconciler interface {
	ReconcileInRegion(ctx context.Context, candidates []business.Result, owner, region string) (service.ReconcileResult, error)
	ReassignAll(ctx context.Context, targetOwner string) (int64, error)
	ReassignAllToEmail(ctx context.Context, email string) (string, int64, error)
}

// Transitioner applies pipeline transitions.
type Transitioner interface {
	Transition(ctx context.Context, actor string, leadID uuid.UUID, to string) (domain.Lead, error)
	Stages() []domain.Stage
}

// Lister lists an owner's leads.
type Lister interface {
	List(ctx context.Context, owner string, params service.ListParams) ([]domain.Lead, error)
}

// ImportEnqueuer hands a reconcile job to the background worker.
type ImportEnqueuer interface {
	EnqueueReconcile(ctx context.Context, owner string, candidates []business.Result, region string) (string, error)
}

type Handler struct {
	merger   Reconciler
	pipeline Transitioner
	lister   Lister
	enqueuer ImportEnqueuer
	val      *validator.Validator
	photos   business.PhotoLinker
}

// New creates the leads handler. enqueuer may be nil when no worker queue is configured.
func New(merger Reconciler, pipeline Transitioner, lister Lister, enqueuer ImportEnqueuer, val *validator.Validator) *Handler {
	return &Handler{merger: merger, pipeline: pipeline, lister: lister, enqueuer: enqueuer, val: val}
}

// WithPhotos sets the builder used to render photo URLs in lead responses.
func (h *Handler) WithPhotos(photos business.PhotoLinker) *Handler {
	h.photos = photos
	return h
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("/import", h.Import)
	rg.PATCH("/:id/status", h.UpdateStatus)
}

func (h *Handler) RegisterPipelineRoutes(rg *gin.RouterGroup) {
	rg.GET("/stages", h.ListStages)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/reassign", h.Reassign)
}

func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var query transport.ListLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	leads, err := h.lister.List(c.Request.Context(), identity.UserID(), service.ListParams{
		Status:   query.Status,
		Industry: query.Industry,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadListResponse(leads, h.photos))
}

func (h *Handler) Import(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ImportLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	async, _ := strconv.ParseBool(c.DefaultQuery("async", "false"))
	if async {
		h.enqueueImport(c, identity.UserID(), req.Candidates, req.Country)
		return
	}

	result, err := h.merger.ReconcileInRegion(c.Request.Context(), req.Candidates, identity.UserID(), req.Country)
	if err != nil {
		httpkit.HandleErrorWithDetails(c, err, transport.ImportFailureDetails{Partial: transport.ToReconcileResponse(result)})
		return
	}

	httpkit.OK(c, transport.ToReconcileResponse(result))
}

func (h *Handler) enqueueImport(c *gin.Context, owner string, candidates []business.Result, country string) {
	if h.enqueuer == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, msgAsyncUnavailable, nil)
		return
	}

	taskID, err := h.enqueuer.EnqueueReconcile(c.Request.Context(), owner, candidates, country)
	if err != nil {
		httpkit.HandleError(c, apperr.StoreUnavailable("enqueue import", err))
		return
	}

	httpkit.JSON(c, http.StatusAccepted, transport.ImportQueuedResponse{TaskID: taskID, Queued: len(candidates)})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.pipeline.Transition(c.Request.Context(), identity.UserID(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead, h.photos))
}

func (h *Handler) ListStages(c *gin.Context) {
	httpkit.OK(c, transport.ToStageResponses(h.pipeline.Stages()))
}

func (h *Handler) Reassign(c *gin.Context) {
	var req transport.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var (
		target = req.TargetOwner
		count  int64
		err    error
	)
	if target != "" {
		count, err = h.merger.ReassignAll(c.Request.Context(), target)
	} else {
		target, count, err = h.merger.ReassignAllToEmail(c.Request.Context(), req.Email)
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ReassignResponse{TargetOwner: target, Count: count})
}
