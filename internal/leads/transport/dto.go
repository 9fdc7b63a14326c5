package transport

import (
	"time"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/service"

	"github.com/google/uuid"
)

// ImportLeadsRequest carries candidates to reconcile into the caller's leads.
type ImportLeadsRequest struct {
	Candidates []business.Result `json:"candidates" validate:"required,min=1,max=500"`
	// Country is the phone region for national numbers; defaults to the configured country.
	Country string `json:"country" validate:"countrycode"`
}

// UpdateStatusRequest moves a lead to another pipeline stage.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReassignRequest names the new owner either directly or by email.
type ReassignRequest struct {
	TargetOwner string `json:"targetOwner" validate:"required_without=Email"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// ListLeadsQuery filters GET /leads.
type ListLeadsQuery struct {
	Status   string `form:"status"`
	Industry string `form:"industry"`
}

type LeadResponse struct {
	ID          uuid.UUID         `json:"id"`
	OwnerID     string            `json:"ownerId"`
	ExternalID  string            `json:"externalId"`
	Status      string            `json:"status"`
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Industry    business.Industry `json:"industry"`
	Score       *float64          `json:"score,omitempty"`
	Rating      *float64          `json:"rating,omitempty"`
	RatingCount *int              `json:"ratingCount,omitempty"`
	Phone       *string           `json:"phone,omitempty"`
	Website     *string           `json:"website,omitempty"`
	PhotoURL    *string           `json:"photoUrl,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

type ReconcileResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ImportFailureDetails accompanies an import error with the writes that did succeed.
type ImportFailureDetails struct {
	Partial ReconcileResponse `json:"partial"`
}

type ImportQueuedResponse struct {
	TaskID string `json:"taskId"`
	Queued int    `json:"queued"`
}

type ReassignResponse struct {
	TargetOwner string `json:"targetOwner"`
	Count       int64  `json:"count"`
}

type StageResponse struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	IsTerminal  bool     `json:"isTerminal"`
	AllowedNext []string `json:"allowedNext,omitempty"`
}

// ToLeadResponse renders a lead. photos builds the photo URL from the stored
// resource name; nil leaves it out.
func ToLeadResponse(lead domain.Lead, photos business.PhotoLinker) LeadResponse {
	resp := LeadResponse{
		ID:          lead.ID,
		OwnerID:     lead.OwnerID,
		ExternalID:  lead.ExternalID,
		Status:      lead.Status,
		Name:        lead.Name,
		Address:     lead.Address,
		Industry:    lead.Industry,
		Score:       lead.Score,
		Rating:      lead.Rating,
		RatingCount: lead.RatingCount,
		Phone:       lead.Phone,
		Website:     lead.Website,
		CreatedAt:   lead.CreatedAt,
		UpdatedAt:   lead.UpdatedAt,
	}
	if photos != nil && lead.PhotoName != nil {
		resp.PhotoURL = photos.PhotoURL(*lead.PhotoName)
	}
	return resp
}

func ToLeadListResponse(leads []domain.Lead, photos business.PhotoLinker) LeadListResponse {
	items := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, ToLeadResponse(lead, photos))
	}
	return LeadListResponse{Items: items, Total: len(items)}
}

func ToReconcileResponse(result service.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{Created: result.Created, Updated: result.Updated, Skipped: result.Skipped}
}

func ToStageResponses(stages []domain.Stage) []StageResponse {
	out := make([]StageResponse, 0, len(stages))
	for _, stage := range stages {
		out = append(out, StageResponse{
			ID:          stage.ID,
			Label:       stage.Label,
			IsTerminal:  stage.Terminal,
			AllowedNext: stage.AllowedNext,
		})
	}
	return out
}
