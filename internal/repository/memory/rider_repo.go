package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hashir13-debug/bites-tracking/internal/model"
	"github.com/hashir13-debug/bites-tracking/internal/repository"
)

// RiderRepository keeps riders in a map keyed by code
type RiderRepository struct {
	mu     sync.RWMutex
	nextID int
	riders map[string]*model.Rider // keyed by code
}

// NewRiderRepository creates an empty rider store
func NewRiderRepository() *RiderRepository {
	return &RiderRepository{
		nextID: 1,
		riders: make(map[string]*model.Rider),
	}
}

var _ repository.RiderRepository = (*RiderRepository)(nil)

// Create stores a new rider, returning ErrDuplicate if the code is taken
func (r *RiderRepository) Create(ctx context.Context, rider *model.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.riders[rider.Code]; exists {
		return repository.ErrDuplicate
	}
	rider.ID = r.nextID
	r.nextID++
	stored := *rider
	r.riders[rider.Code] = &stored
	return nil
}

// FindByCode returns a copy of the rider, or nil if the code is unknown
func (r *RiderRepository) FindByCode(ctx context.Context, code string) (*model.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rider, exists := r.riders[code]
	if !exists {
		return nil, nil
	}
	found := *rider
	return &found, nil
}

// FindAll returns every rider ordered by id
func (r *RiderRepository) FindAll(ctx context.Context) ([]model.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	riders := make([]model.Rider, 0, len(r.riders))
	for _, rd := range r.riders {
		riders = append(riders, *rd)
	}
	sort.Slice(riders, func(i, j int) bool { return riders[i].ID < riders[j].ID })
	return riders, nil
}

// SetOnRoute marks a rider on route and reports whether the code existed
func (r *RiderRepository) SetOnRoute(ctx context.Context, code, aTime string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rider, exists := r.riders[code]
	if !exists {
		return false, nil
	}
	rider.Status = model.RiderStatusOnRoute
	rider.ATime = aTime
	return true, nil
}

// UpdateStatus applies a status report if the stored last click is not after notAfter
func (r *RiderRepository) UpdateStatus(ctx context.Context, rider *model.Rider, notAfter time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.riders[rider.Code]
	if !exists || stored.LastClickAt.After(notAfter) {
		return false, nil
	}
	stored.Status = rider.Status
	stored.DeviceInfo = rider.DeviceInfo
	stored.RTime = rider.RTime
	stored.LastClickAt = rider.LastClickAt
	return true, nil
}

// Delete removes a rider. Deleting a missing code is not an error.
func (r *RiderRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.riders, code)
	return nil
}
