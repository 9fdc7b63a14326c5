package repository

import (
	"context"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LeadFilter narrows FindLeads and UpdateManyLeads. Empty fields do not filter;
// the zero value matches every lead.
type LeadFilter struct {
	OwnerID    string
	ExternalID string
	Status     string
	Industry   business.Industry
}

// CreateLeadParams are the columns written when a lead is first created.
type CreateLeadParams struct {
	OwnerID    string
	ExternalID string
	Status     string
	Fields     domain.BusinessFields
}

// BulkUpdateParams are the columns UpdateManyLeads may change.
type BulkUpdateParams struct {
	OwnerID *string
}

// User is the minimal view of an account owned by the auth collaborator.
type User struct {
	ID    string
	Email string
}

// =====================================
// Segregated Interfaces (Interface Segregation Principle)
// =====================================

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetLead(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	FindLeads(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
}

// LeadWriter provides write operations for reconciliation.
type LeadWriter interface {
	CreateLead(ctx context.Context, params CreateLeadParams) (domain.Lead, error)
	UpdateLead(ctx context.Context, id uuid.UUID, fields domain.BusinessFields) (domain.Lead, error)
	UpdateManyLeads(ctx context.Context, filter LeadFilter, params BulkUpdateParams) (int64, error)
}

// StatusWriter persists pipeline transitions.
type StatusWriter interface {
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, from, to string) (domain.Lead, error)
}

// UserReader resolves user accounts.
type UserReader interface {
	FindUniqueUser(ctx context.Context, email string) (User, error)
}

// ActivityLogger records activity/audit trail on leads.
type ActivityLogger interface {
	AddActivity(ctx context.Context, leadID uuid.UUID, actorID string, action string, meta map[string]interface{}) error
}

// LeadRepository composes every lead store operation.
type LeadRepository interface {
	LeadReader
	LeadWriter
	StatusWriter
	UserReader
	ActivityLogger
}

var _ LeadRepository = (*Repository)(nil)
