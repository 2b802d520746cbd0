package analysis

import (
	"context"
	"sync"
)

// MemoryAssessmentRepo is an in-memory AssessmentRepo used when no database
// is configured and in tests.
type MemoryAssessmentRepo struct {
	mu       sync.RWMutex
	byVendor map[string][]ComprehensiveResult
}

func NewMemoryAssessmentRepo() *MemoryAssessmentRepo {
	return &MemoryAssessmentRepo{byVendor: make(map[string][]ComprehensiveResult)}
}

func (r *MemoryAssessmentRepo) Save(_ context.Context, res ComprehensiveResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byVendor[res.VendorID] = append(r.byVendor[res.VendorID], res)
	return nil
}

func (r *MemoryAssessmentRepo) LatestByVendor(_ context.Context, vendorID string) (ComprehensiveResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.byVendor[vendorID]
	if len(history) == 0 {
		return ComprehensiveResult{}, ErrAssessmentNotFound
	}
	return history[len(history)-1], nil
}
