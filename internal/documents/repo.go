package documents

import (
	"context"
	"time"
)

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, documentID string) (Document, error)
	ListByVendor(ctx context.Context, vendorID string) ([]Document, error)
	UpdateExtraction(ctx context.Context, documentID, extractedTextKey string, extractedAt time.Time) error
	UpdateStatus(ctx context.Context, documentID, status string) error
	UpdateAnalysis(ctx context.Context, documentID, status string, riskScore int, riskLevel string, findings, recommendations []string) error
	Delete(ctx context.Context, documentID string) error
}
