package analysis

import (
	"context"
	"errors"
)

// ErrAssessmentNotFound is returned when a vendor has no stored
// comprehensive assessment.
var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentRepo persists comprehensive assessments. Assessments are
// immutable; re-running an analysis appends a new record and LatestByVendor
// returns the newest one.
type AssessmentRepo interface {
	Save(ctx context.Context, res ComprehensiveResult) error
	LatestByVendor(ctx context.Context, vendorID string) (ComprehensiveResult, error)
}
