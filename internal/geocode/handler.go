package geocode

import (
	"context"
	"errors"
	"net/http"

	"leadscout_backend/platform/httpkit"
	"leadscout_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// LocationResolver is what the handler needs from a Resolver.
type LocationResolver interface {
	Resolve(ctx context.Context, city, country string) (Location, error)
}

// Handler exposes the geocode endpoint.
type Handler struct {
	resolver LocationResolver
	val      *validator.Validator
}

func NewHandler(resolver LocationResolver, val *validator.Validator) *Handler {
	return &Handler{resolver: resolver, val: val}
}

// Lookup handles GET /api/v1/geocode?city=...&country=...
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'city' is required and 'country' must be a two-letter code", nil)
		return
	}

	location, err := h.resolver.Resolve(c.Request.Context(), req.City, req.Country)
	if errors.Is(err, ErrNotFound) {
		httpkit.Error(c, http.StatusNotFound, ErrNotFound.Error(), nil)
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, location)
}
