package board

import (
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// ItemStore owns the deal records, keyed by deal ID.
// It knows nothing about placement; see ColumnStore.
type ItemStore struct {
	deals map[types.DealID]*models.Deal
	newID func() types.DealID
	now   func() time.Time
}

// NewItemStore creates an empty store that assigns uuid identifiers
func NewItemStore() *ItemStore {
	return &ItemStore{
		deals: make(map[types.DealID]*models.Deal),
		newID: func() types.DealID { return types.DealID(uuid.NewString()) },
		now:   time.Now,
	}
}

// Create stores a new deal with a freshly generated ID and returns a copy of it.
// Field validation is the caller's job.
func (s *ItemStore) Create(fields models.DealFields) models.Deal {
	id := s.newID()
	for s.Has(id) {
		id = s.newID()
	}

	now := s.now().UTC()
	deal := &models.Deal{
		ID:              id,
		Title:           fields.Title,
		Company:         fields.Company,
		Contact:         fields.Contact,
		ContactInitials: fields.ContactInitials,
		Amount:          fields.Amount,
		Due:             fields.Due,
		Owner:           fields.Owner,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.deals[id] = deal
	return *deal
}

// Update merges the patch into an existing deal and returns the result
func (s *ItemStore) Update(id types.DealID, patch models.DealPatch) (models.Deal, error) {
	deal, ok := s.deals[id]
	if !ok {
		return models.Deal{}, models.DealNotFound(id)
	}
	patch.Apply(deal)
	deal.UpdatedAt = s.now().UTC()
	return *deal, nil
}

// Delete removes a deal record
func (s *ItemStore) Delete(id types.DealID) error {
	if _, ok := s.deals[id]; !ok {
		return models.DealNotFound(id)
	}
	delete(s.deals, id)
	return nil
}

// Get returns a copy of the deal with the given ID
func (s *ItemStore) Get(id types.DealID) (models.Deal, error) {
	deal, ok := s.deals[id]
	if !ok {
		return models.Deal{}, models.DealNotFound(id)
	}
	return *deal, nil
}

// Has reports whether a deal with the given ID exists
func (s *ItemStore) Has(id types.DealID) bool {
	_, ok := s.deals[id]
	return ok
}

// Len returns the number of stored deals
func (s *ItemStore) Len() int {
	return len(s.deals)
}

// put stores a deal as-is, keeping its ID and timestamps. Used when loading.
func (s *ItemStore) put(deal models.Deal) {
	d := deal
	s.deals[d.ID] = &d
}

// all returns copies of every deal keyed by ID
func (s *ItemStore) all() map[types.DealID]models.Deal {
	out := make(map[types.DealID]models.Deal, len(s.deals))
	for id, d := range s.deals {
		out[id] = *d
	}
	return out
}
