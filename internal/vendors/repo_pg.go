package vendors

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new vendor.
func (r *PGRepo) Create(ctx context.Context, vendor Vendor) error {
	const query = `
INSERT INTO vendors (
    id, name, website, description, criticality, spend, data_sensitivity, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	criticality := vendor.Criticality
	if criticality == "" {
		criticality = CriticalityLow
	}
	sensitivity := vendor.DataSensitivity
	if sensitivity == "" {
		sensitivity = "Public"
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		vendor.ID,
		vendor.Name,
		nullString(vendor.Website),
		nullString(vendor.Description),
		criticality,
		vendor.Spend,
		sensitivity,
		vendor.CreatedAt,
	)
	return err
}

// GetByID returns a vendor by its ID.
func (r *PGRepo) GetByID(ctx context.Context, vendorID string) (Vendor, error) {
	const query = `
SELECT id, name, website, description, criticality, spend, data_sensitivity,
       risk_score, risk_level, last_assessed, created_at
FROM vendors
WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, query, vendorID)
	vendor, err := scanVendor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Vendor{}, ErrNotFound
	}
	return vendor, err
}

// List returns all vendors ordered newest-first.
func (r *PGRepo) List(ctx context.Context) ([]Vendor, error) {
	const query = `
SELECT id, name, website, description, criticality, spend, data_sensitivity,
       risk_score, risk_level, last_assessed, created_at
FROM vendors
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, vendor)
	}
	return out, rows.Err()
}

// UpdateRisk sets the denormalized risk fields on the vendor.
func (r *PGRepo) UpdateRisk(ctx context.Context, vendorID string, riskScore int, riskLevel string, assessedAt time.Time) error {
	const query = `
UPDATE vendors SET risk_score = $2, risk_level = $3, last_assessed = $4 WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, vendorID, riskScore, riskLevel, assessedAt)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVendor(row rowScanner) (Vendor, error) {
	var (
		vendor       Vendor
		website      sql.NullString
		description  sql.NullString
		riskScore    sql.NullInt64
		riskLevel    sql.NullString
		lastAssessed sql.NullTime
	)
	err := row.Scan(
		&vendor.ID,
		&vendor.Name,
		&website,
		&description,
		&vendor.Criticality,
		&vendor.Spend,
		&vendor.DataSensitivity,
		&riskScore,
		&riskLevel,
		&lastAssessed,
		&vendor.CreatedAt,
	)
	if err != nil {
		return Vendor{}, err
	}
	vendor.Website = website.String
	vendor.Description = description.String
	if riskScore.Valid {
		score := int(riskScore.Int64)
		vendor.RiskScore = &score
	}
	vendor.RiskLevel = riskLevel.String
	if lastAssessed.Valid {
		assessed := lastAssessed.Time
		vendor.LastAssessed = &assessed
	}
	return vendor, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
