package vendors

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores vendors in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Vendor
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Vendor)}
}

// Create stores the vendor.
func (r *MemoryRepo) Create(ctx context.Context, vendor Vendor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[vendor.ID] = vendor
	return nil
}

// GetByID returns a vendor by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, vendorID string) (Vendor, error) {
	if err := ctx.Err(); err != nil {
		return Vendor{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	vendor, ok := r.byID[vendorID]
	if !ok {
		return Vendor{}, ErrNotFound
	}
	return vendor, nil
}

// List returns all vendors ordered newest-first.
func (r *MemoryRepo) List(ctx context.Context) ([]Vendor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Vendor, 0, len(r.byID))
	for _, vendor := range r.byID {
		out = append(out, vendor)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateRisk sets the denormalized risk fields on the vendor.
func (r *MemoryRepo) UpdateRisk(ctx context.Context, vendorID string, riskScore int, riskLevel string, assessedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	vendor, ok := r.byID[vendorID]
	if !ok {
		return ErrNotFound
	}
	score := riskScore
	vendor.RiskScore = &score
	vendor.RiskLevel = riskLevel
	assessed := assessedAt
	vendor.LastAssessed = &assessed
	r.byID[vendorID] = vendor
	return nil
}
