// Package domain holds the lead entity and the pipeline state machine.
package domain

import (
	"time"

	"leadscout_backend/internal/business"

	"github.com/google/uuid"
)

// Lead is a discovered business promoted into one owner's pipeline.
// (OwnerID, ExternalID) is unique across the store.
type Lead struct {
	ID          uuid.UUID
	OwnerID     string
	ExternalID  string
	Status      string
	Name        string
	Address     string
	Industry    business.Industry
	Score       *float64
	Rating      *float64
	RatingCount *int
	Phone       *string
	Website     *string
	PhotoName   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BusinessFields are the candidate-derived attributes that reconciliation
// may overwrite. Status and owner are intentionally absent.
type BusinessFields struct {
	Name        string
	Address     string
	Industry    business.Industry
	Score       *float64
	Rating      *float64
	RatingCount *int
	Phone       *string
	Website     *string
	PhotoName   *string
}

// Fields returns the business-derived attributes of the lead.
func (l Lead) Fields() BusinessFields {
	return BusinessFields{
		Name:        l.Name,
		Address:     l.Address,
		Industry:    l.Industry,
		Score:       l.Score,
		Rating:      l.Rating,
		RatingCount: l.RatingCount,
		Phone:       l.Phone,
		Website:     l.Website,
		PhotoName:   l.PhotoName,
	}
}

// FieldsFromResult copies the business-derived attributes of a candidate.
func FieldsFromResult(r business.Result) BusinessFields {
	industry := r.Industry
	if !industry.Valid() {
		industry = business.IndustryOther
	}
	return BusinessFields{
		Name:        r.Name,
		Address:     r.Address,
		Industry:    industry,
		Score:       r.Score,
		Rating:      r.Rating,
		RatingCount: r.RatingCount,
		Phone:       r.Phone,
		Website:     r.Website,
		PhotoName:   r.PhotoName,
	}
}

// Equal reports whether two field sets would produce the same stored row.
func (f BusinessFields) Equal(other BusinessFields) bool {
	return f.Name == other.Name &&
		f.Address == other.Address &&
		f.Industry == other.Industry &&
		equalPtr(f.Score, other.Score) &&
		equalPtr(f.Rating, other.Rating) &&
		equalPtr(f.RatingCount, other.RatingCount) &&
		equalPtr(f.Phone, other.Phone) &&
		equalPtr(f.Website, other.Website) &&
		equalPtr(f.PhotoName, other.PhotoName)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
