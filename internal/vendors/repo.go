package vendors

import (
	"context"
	"time"
)

// Repo defines persistence operations for vendors.
type Repo interface {
	Create(ctx context.Context, vendor Vendor) error
	GetByID(ctx context.Context, vendorID string) (Vendor, error)
	List(ctx context.Context) ([]Vendor, error)
	UpdateRisk(ctx context.Context, vendorID string, riskScore int, riskLevel string, assessedAt time.Time) error
}
