package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"tprm-backend/internal/shared/storage/object"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, vendorID, fileName, documentType string, r io.Reader) (Document, error) {
	if vendorID == "" || fileName == "" {
		return Document{}, fmt.Errorf("%w: vendorID and fileName are required", ErrInvalidInput)
	}
	if documentType == "" {
		documentType = TypeGeneral
	}
	if !KnownType(documentType) {
		return Document{}, fmt.Errorf("%w: unknown document type %q", ErrInvalidInput, documentType)
	}

	var sniff [512]byte
	n, err := io.ReadFull(r, sniff[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if err := validateUpload(fileName, sniff[:n]); err != nil {
		return Document{}, err
	}
	r = io.MultiReader(bytes.NewReader(sniff[:n]), r)

	storageKey, size, mimeType, err := s.Store.Save(ctx, vendorID, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:             uuid.NewString(),
		VendorID:       vendorID,
		FileName:       fileName,
		DocumentType:   documentType,
		MimeType:       mimeType,
		SizeBytes:      size,
		StorageKey:     storageKey,
		AnalysisStatus: StatusNotAnalyzed,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, fmt.Errorf("%w: documentID is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, documentID)
}

// ListByVendor returns documents owned by a vendor.
func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]Document, error) {
	if vendorID == "" {
		return nil, fmt.Errorf("%w: vendorID is required", ErrInvalidInput)
	}
	return s.Repo.ListByVendor(ctx, vendorID)
}

// Delete removes a document record. The stored object is left in place for audit.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: documentID is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, documentID)
}
