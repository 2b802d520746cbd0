package vendors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for vendors.
type Service struct {
	Repo Repo
}

// Create validates and stores a new vendor record.
func (s *Service) Create(ctx context.Context, vendor Vendor) (Vendor, error) {
	vendor.Name = strings.TrimSpace(vendor.Name)
	if vendor.Name == "" {
		return Vendor{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if vendor.Criticality == "" {
		vendor.Criticality = CriticalityLow
	}
	switch vendor.Criticality {
	case CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical:
	default:
		return Vendor{}, fmt.Errorf("%w: unknown criticality %q", ErrInvalidInput, vendor.Criticality)
	}
	if vendor.DataSensitivity == "" {
		vendor.DataSensitivity = "Public"
	}

	vendor.ID = uuid.NewString()
	vendor.CreatedAt = time.Now().UTC()

	if err := s.Repo.Create(ctx, vendor); err != nil {
		return Vendor{}, err
	}
	return vendor, nil
}

// Get returns a vendor by ID.
func (s *Service) Get(ctx context.Context, vendorID string) (Vendor, error) {
	if vendorID == "" {
		return Vendor{}, fmt.Errorf("%w: vendorID is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, vendorID)
}

// List returns all vendors.
func (s *Service) List(ctx context.Context) ([]Vendor, error) {
	return s.Repo.List(ctx)
}
