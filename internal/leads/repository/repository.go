package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"leadscout_backend/internal/business"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lead does not exist.
	ErrNotFound = errors.New("lead not found")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateLead is returned when (owner_id, external_id) already exists.
	ErrDuplicateLead = errors.New("lead already exists for owner and external id")
	// ErrStaleStatus is returned when the stored status no longer matches the expected one.
	ErrStaleStatus = errors.New("lead status changed concurrently")
)

const uniqueViolationCode = "23505"

const leadColumns = `id, owner_id, external_id, status, name, address, industry,
	score, rating, rating_count, phone, website, photo_name, created_at, updated_at`

// Repository is the pgx-backed lead store.
type Repository struct {
	db DB
}

// New creates a repository over a pool (or anything pool-shaped).
func New(db DB) *Repository {
	return &Repository{db: db}
}

// IsUniqueViolation reports whether err is a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func storeErr(op string, err error) error {
	return apperr.StoreUnavailable("lead store unavailable", err).WithOp(op)
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	var industry string
	err := row.Scan(
		&lead.ID, &lead.OwnerID, &lead.ExternalID, &lead.Status, &lead.Name, &lead.Address, &industry,
		&lead.Score, &lead.Rating, &lead.RatingCount, &lead.Phone, &lead.Website, &lead.PhotoName,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	lead.Industry = business.Industry(industry)
	return lead, nil
}

// whereClause renders the filter as SQL, numbering placeholders from offset+1.
func (f LeadFilter) whereClause(offset int) (string, []any) {
	var conditions []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, offset+len(args)))
	}

	if f.OwnerID != "" {
		add("owner_id", f.OwnerID)
	}
	if f.ExternalID != "" {
		add("external_id", f.ExternalID)
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	if f.Industry != "" {
		add("industry", string(f.Industry))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// FindLeads returns every lead matching filter, oldest first.
func (r *Repository) FindLeads(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	where, args := filter.whereClause(0)
	rows, err := r.db.Query(ctx, "SELECT "+leadColumns+" FROM leads"+where+" ORDER BY created_at ASC, id ASC", args...)
	if err != nil {
		return nil, storeErr("repository.FindLeads", err)
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, storeErr("repository.FindLeads", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("repository.FindLeads", err)
	}

	return leads, nil
}

// GetLead returns a lead by ID.
func (r *Repository) GetLead(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, "SELECT "+leadColumns+" FROM leads WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, storeErr("repository.GetLead", err)
	}
	return lead, nil
}

// CreateLead inserts a new lead. A racing insert for the same owner and
// external id yields ErrDuplicateLead.
func (r *Repository) CreateLead(ctx context.Context, params CreateLeadParams) (domain.Lead, error) {
	f := params.Fields
	lead, err := scanLead(r.db.QueryRow(ctx, `
		INSERT INTO leads (
			id, owner_id, external_id, status, name, address, industry,
			score, rating, rating_count, phone, website, photo_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+leadColumns,
		uuid.New(), params.OwnerID, params.ExternalID, params.Status, f.Name, f.Address, string(f.Industry),
		f.Score, f.Rating, f.RatingCount, f.Phone, f.Website, f.PhotoName,
	))
	if IsUniqueViolation(err) {
		return domain.Lead{}, ErrDuplicateLead
	}
	if err != nil {
		return domain.Lead{}, storeErr("repository.CreateLead", err)
	}
	return lead, nil
}

// UpdateLead overwrites the business-derived columns of a lead.
// Status and owner are never touched here.
func (r *Repository) UpdateLead(ctx context.Context, id uuid.UUID, f domain.BusinessFields) (domain.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, `
		UPDATE leads SET
			name = $2, address = $3, industry = $4, score = $5, rating = $6,
			rating_count = $7, phone = $8, website = $9, photo_name = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, f.Name, f.Address, string(f.Industry), f.Score, f.Rating,
		f.RatingCount, f.Phone, f.Website, f.PhotoName,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, storeErr("repository.UpdateLead", err)
	}
	return lead, nil
}

// UpdateManyLeads applies params to every lead matching filter and returns
// the number of rows matched.
func (r *Repository) UpdateManyLeads(ctx context.Context, filter LeadFilter, params BulkUpdateParams) (int64, error) {
	if params.OwnerID == nil {
		return 0, apperr.Validation("no columns to update")
	}

	where, args := filter.whereClause(1)
	tag, err := r.db.Exec(ctx, "UPDATE leads SET owner_id = $1, updated_at = now()"+where,
		append([]any{*params.OwnerID}, args...)...)
	if IsUniqueViolation(err) {
		return 0, apperr.DataIntegrity("reassignment would give the target owner two leads for the same business").
			WithOp("repository.UpdateManyLeads")
	}
	if err != nil {
		return 0, storeErr("repository.UpdateManyLeads", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateLeadStatus moves a lead from one status to another. The update only
// applies while the stored status still equals from; otherwise ErrStaleStatus.
func (r *Repository) UpdateLeadStatus(ctx context.Context, id uuid.UUID, from, to string) (domain.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, `
		UPDATE leads SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+leadColumns,
		id, from, to,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrStaleStatus
	}
	if err != nil {
		return domain.Lead{}, storeErr("repository.UpdateLeadStatus", err)
	}
	return lead, nil
}

// FindUniqueUser looks up a user by email, case-insensitively.
func (r *Repository) FindUniqueUser(ctx context.Context, email string) (User, error) {
	var user User
	err := r.db.QueryRow(ctx, `SELECT id, email FROM users WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email)).Scan(&user.ID, &user.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, storeErr("repository.FindUniqueUser", err)
	}
	return user, nil
}

// AddActivity appends an audit row for a lead.
func (r *Repository) AddActivity(ctx context.Context, leadID uuid.UUID, actorID string, action string, meta map[string]interface{}) error {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal activity meta: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO lead_activity (id, lead_id, actor_id, action, meta)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), leadID, actorID, action, payload)
	if err != nil {
		return storeErr("repository.AddActivity", err)
	}
	return nil
}
