package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id, vendor_id, file_name, document_type, mime_type, size_bytes,
    storage_provider, storage_key, analysis_status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	docType := doc.DocumentType
	if docType == "" {
		docType = TypeGeneral
	}
	storageProvider := doc.StorageProvider
	if storageProvider == "" {
		storageProvider = "local"
	}
	status := doc.AnalysisStatus
	if status == "" {
		status = StatusNotAnalyzed
	}

	var storageKey sql.NullString
	if doc.StorageKey != "" {
		storageKey = sql.NullString{String: doc.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.VendorID,
		doc.FileName,
		docType,
		doc.MimeType,
		doc.SizeBytes,
		storageProvider,
		storageKey,
		status,
		doc.CreatedAt,
	)
	return err
}

// GetByID returns a document by its ID.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT id, vendor_id, file_name, document_type, mime_type, size_bytes,
       storage_provider, storage_key, extracted_text_key, extracted_at,
       analysis_status, risk_score, risk_level, findings, recommendations, created_at
FROM documents
WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, query, documentID)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

// ListByVendor returns documents for a vendor ordered newest-first.
func (r *PGRepo) ListByVendor(ctx context.Context, vendorID string) ([]Document, error) {
	const query = `
SELECT id, vendor_id, file_name, document_type, mime_type, size_bytes,
       storage_provider, storage_key, extracted_text_key, extracted_at,
       analysis_status, risk_score, risk_level, findings, recommendations, created_at
FROM documents
WHERE vendor_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateExtraction records the derived extracted-text key.
func (r *PGRepo) UpdateExtraction(ctx context.Context, documentID, extractedTextKey string, extractedAt time.Time) error {
	const query = `
UPDATE documents SET extracted_text_key = $2, extracted_at = $3 WHERE id = $1`
	return execExpectingRow(ctx, r.DB, query, documentID, extractedTextKey, extractedAt)
}

// UpdateStatus sets the analysis status.
func (r *PGRepo) UpdateStatus(ctx context.Context, documentID, status string) error {
	const query = `
UPDATE documents SET analysis_status = $2 WHERE id = $1`
	return execExpectingRow(ctx, r.DB, query, documentID, status)
}

// UpdateAnalysis writes the denormalized analysis fields.
func (r *PGRepo) UpdateAnalysis(ctx context.Context, documentID, status string, riskScore int, riskLevel string, findings, recommendations []string) error {
	const query = `
UPDATE documents
SET analysis_status = $2, risk_score = $3, risk_level = $4, findings = $5, recommendations = $6
WHERE id = $1`

	findingsJSON, err := marshalJSONB(findings)
	if err != nil {
		return err
	}
	recsJSON, err := marshalJSONB(recommendations)
	if err != nil {
		return err
	}
	return execExpectingRow(ctx, r.DB, query, documentID, status, riskScore, riskLevel, findingsJSON, recsJSON)
}

// Delete removes a document record.
func (r *PGRepo) Delete(ctx context.Context, documentID string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	return execExpectingRow(ctx, r.DB, query, documentID)
}

func execExpectingRow(ctx context.Context, db *sql.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalJSONB(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var (
		doc           Document
		storageKey    sql.NullString
		extractedKey  sql.NullString
		extractedAt   sql.NullTime
		riskScore     sql.NullInt64
		riskLevel     sql.NullString
		findingsRaw   []byte
		recommendsRaw []byte
	)
	err := row.Scan(
		&doc.ID,
		&doc.VendorID,
		&doc.FileName,
		&doc.DocumentType,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageProvider,
		&storageKey,
		&extractedKey,
		&extractedAt,
		&doc.AnalysisStatus,
		&riskScore,
		&riskLevel,
		&findingsRaw,
		&recommendsRaw,
		&doc.CreatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	doc.StorageKey = storageKey.String
	doc.ExtractedTextKey = extractedKey.String
	if extractedAt.Valid {
		at := extractedAt.Time
		doc.ExtractedAt = &at
	}
	if riskScore.Valid {
		score := int(riskScore.Int64)
		doc.RiskScore = &score
	}
	doc.RiskLevel = riskLevel.String
	if len(findingsRaw) > 0 {
		if err := json.Unmarshal(findingsRaw, &doc.Findings); err != nil {
			return Document{}, err
		}
	}
	if len(recommendsRaw) > 0 {
		if err := json.Unmarshal(recommendsRaw, &doc.Recommendations); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}
