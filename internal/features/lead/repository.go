package lead

import (
	"context"
	"errors"
	"sync"
)

var ErrLeadNotFound = errors.New("lead not found")

// LeadRepository defines access to the lead collection
type LeadRepository interface {
	Insert(ctx context.Context, l *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindAll(ctx context.Context) ([]Lead, error)
	// Mutate applies fn to the stored record under the write lock. All
	// read-modify-write sequences go through here; a copy-out/write-back
	// update could overwrite an SLA transition that landed in between.
	Mutate(ctx context.Context, id string, fn func(l *Lead) error) error
	Delete(ctx context.Context, id string) error
	// UpdateSLAStatus atomically swaps the SLA state and returns the state
	// it replaced, so callers can act on the transition itself.
	UpdateSLAStatus(ctx context.Context, id string, status SLAStatus) (SLAStatus, error)
}

// InMemoryLeadRepository owns the lead collection behind a single mutex.
// The mutex serializes SLA sweep writes with user-driven mutations, which
// is what the breach-notification guarantee relies on.
type InMemoryLeadRepository struct {
	mu    sync.RWMutex
	leads []Lead
}

func NewLeadRepository() LeadRepository {
	return &InMemoryLeadRepository{}
}

func (r *InMemoryLeadRepository) Insert(ctx context.Context, l *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Newest first, matching the feed ordering everywhere else
	r.leads = append([]Lead{*l}, r.leads...)
	return nil
}

func (r *InMemoryLeadRepository) FindByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.leads {
		if r.leads[i].ID.Hex() == id {
			l := r.leads[i]
			return &l, nil
		}
	}
	return nil, ErrLeadNotFound
}

func (r *InMemoryLeadRepository) FindAll(ctx context.Context) ([]Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}

func (r *InMemoryLeadRepository) Mutate(ctx context.Context, id string, fn func(l *Lead) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.leads {
		if r.leads[i].ID.Hex() == id {
			return fn(&r.leads[i])
		}
	}
	return ErrLeadNotFound
}

func (r *InMemoryLeadRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.leads {
		if r.leads[i].ID.Hex() == id {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			return nil
		}
	}
	return ErrLeadNotFound
}

func (r *InMemoryLeadRepository) UpdateSLAStatus(ctx context.Context, id string, status SLAStatus) (SLAStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.leads {
		if r.leads[i].ID.Hex() == id {
			previous := r.leads[i].SLAStatus
			r.leads[i].SLAStatus = status
			return previous, nil
		}
	}
	return "", ErrLeadNotFound
}
