package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// fakeStore is an in-memory LeadStore that enforces (owner, external id) uniqueness.
type fakeStore struct {
	mu    sync.Mutex
	leads map[uuid.UUID]domain.Lead
	users map[string]repository.User

	findErr     error
	createErr   error
	failCreates int // fail creates after this many successes when createErr is set
	creates     int
	updates     int
	// raceOnCreate inserts the row right before a create, simulating a concurrent reconcile.
	raceOnCreate bool
	activity     []string
	now          time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		leads: make(map[uuid.UUID]domain.Lead),
		users: make(map[string]repository.User),
		now:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeStore) matches(lead domain.Lead, filter repository.LeadFilter) bool {
	return (filter.OwnerID == "" || lead.OwnerID == filter.OwnerID) &&
		(filter.ExternalID == "" || lead.ExternalID == filter.ExternalID) &&
		(filter.Status == "" || lead.Status == filter.Status) &&
		(filter.Industry == "" || lead.Industry == filter.Industry)
}

func (f *fakeStore) FindLeads(_ context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]domain.Lead, 0)
	for _, lead := range f.leads {
		if f.matches(lead, filter) {
			out = append(out, lead)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) GetLead(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeStore) insert(params repository.CreateLeadParams) domain.Lead {
	now := f.tick()
	fields := params.Fields
	lead := domain.Lead{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		ExternalID:  params.ExternalID,
		Status:      params.Status,
		Name:        fields.Name,
		Address:     fields.Address,
		Industry:    fields.Industry,
		Score:       fields.Score,
		Rating:      fields.Rating,
		RatingCount: fields.RatingCount,
		Phone:       fields.Phone,
		Website:     fields.Website,
		PhotoName:   fields.PhotoName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.leads[lead.ID] = lead
	return lead
}

func (f *fakeStore) CreateLead(_ context.Context, params repository.CreateLeadParams) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil && f.creates >= f.failCreates {
		return domain.Lead{}, f.createErr
	}
	if f.raceOnCreate {
		f.raceOnCreate = false
		racing := params
		racing.Status = "contacted"
		f.insert(racing)
	}
	for _, lead := range f.leads {
		if lead.OwnerID == params.OwnerID && lead.ExternalID == params.ExternalID {
			return domain.Lead{}, repository.ErrDuplicateLead
		}
	}
	f.creates++
	return f.insert(params), nil
}

func (f *fakeStore) UpdateLead(_ context.Context, id uuid.UUID, fields domain.BusinessFields) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	lead.Name = fields.Name
	lead.Address = fields.Address
	lead.Industry = fields.Industry
	lead.Score = fields.Score
	lead.Rating = fields.Rating
	lead.RatingCount = fields.RatingCount
	lead.Phone = fields.Phone
	lead.Website = fields.Website
	lead.PhotoName = fields.PhotoName
	lead.UpdatedAt = f.tick()
	f.leads[id] = lead
	f.updates++
	return lead, nil
}

func (f *fakeStore) UpdateManyLeads(_ context.Context, filter repository.LeadFilter, params repository.BulkUpdateParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for id, lead := range f.leads {
		if !f.matches(lead, filter) {
			continue
		}
		if params.OwnerID != nil {
			lead.OwnerID = *params.OwnerID
		}
		f.leads[id] = lead
		count++
	}
	return count, nil
}

func (f *fakeStore) UpdateLeadStatus(_ context.Context, id uuid.UUID, from, to string) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok || lead.Status != from {
		return domain.Lead{}, repository.ErrStaleStatus
	}
	lead.Status = to
	lead.UpdatedAt = f.tick()
	f.leads[id] = lead
	return lead, nil
}

func (f *fakeStore) FindUniqueUser(_ context.Context, email string) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) AddActivity(_ context.Context, leadID uuid.UUID, actorID, action string, _ map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activity = append(f.activity, leadID.String()+":"+actorID+":"+action)
	return nil
}

// seed inserts a lead bypassing uniqueness, to model external invariant violations.
func (f *fakeStore) seed(owner, externalID, status, name string) domain.Lead {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(repository.CreateLeadParams{
		OwnerID:    owner,
		ExternalID: externalID,
		Status:     status,
		Fields:     domain.BusinessFields{Name: name, Industry: "other"},
	})
}

// duplicatePair reports the first duplicated (owner, external id) pair, if any.
func (f *fakeStore) duplicatePair() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]struct{})
	for _, lead := range f.leads {
		key := lead.OwnerID + "/" + lead.ExternalID
		if _, dup := seen[key]; dup {
			return key, true
		}
		seen[key] = struct{}{}
	}
	return "", false
}
