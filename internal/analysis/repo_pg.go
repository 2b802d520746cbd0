package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGAssessmentRepo implements AssessmentRepo using Postgres.
type PGAssessmentRepo struct {
	DB *sql.DB
}

func (r *PGAssessmentRepo) Save(ctx context.Context, res ComprehensiveResult) error {
	const query = `
INSERT INTO comprehensive_assessments (
    id, vendor_id, vendor_name, overall_risk_score, overall_risk_level,
    decision, decision_justification, documents_analyzed,
    consolidated_findings, cross_document_insights, contradictions,
    recommendations, degraded, processing_time_ms, analysis_date
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	findings, err := marshalList(res.ConsolidatedFindings)
	if err != nil {
		return err
	}
	insights, err := marshalList(res.CrossDocumentInsights)
	if err != nil {
		return err
	}
	contradictions, err := marshalList(res.Contradictions)
	if err != nil {
		return err
	}
	recommendations, err := marshalList(res.Recommendations)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.VendorID,
		res.VendorName,
		res.OverallRiskScore,
		string(res.OverallRiskLevel),
		string(res.Decision),
		res.DecisionJustification,
		res.DocumentsAnalyzed,
		findings,
		insights,
		contradictions,
		recommendations,
		res.Degraded,
		float64(res.ProcessingTime.Milliseconds()),
		res.AnalysisDate,
	)
	return err
}

func (r *PGAssessmentRepo) LatestByVendor(ctx context.Context, vendorID string) (ComprehensiveResult, error) {
	const query = `
SELECT id, vendor_id, vendor_name, overall_risk_score, overall_risk_level,
       decision, decision_justification, documents_analyzed,
       consolidated_findings, cross_document_insights, contradictions,
       recommendations, degraded, processing_time_ms, analysis_date
FROM comprehensive_assessments
WHERE vendor_id = $1
ORDER BY analysis_date DESC
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, vendorID)

	var (
		res               ComprehensiveResult
		level             string
		decision          string
		findingsRaw       []byte
		insightsRaw       []byte
		contradictionsRaw []byte
		recsRaw           []byte
		processingMs      float64
	)
	err := row.Scan(
		&res.ID,
		&res.VendorID,
		&res.VendorName,
		&res.OverallRiskScore,
		&level,
		&decision,
		&res.DecisionJustification,
		&res.DocumentsAnalyzed,
		&findingsRaw,
		&insightsRaw,
		&contradictionsRaw,
		&recsRaw,
		&res.Degraded,
		&processingMs,
		&res.AnalysisDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ComprehensiveResult{}, ErrAssessmentNotFound
	}
	if err != nil {
		return ComprehensiveResult{}, err
	}

	res.OverallRiskLevel = RiskLevel(level)
	res.Decision = Decision(decision)
	res.ProcessingTime = time.Duration(processingMs) * time.Millisecond
	if err := unmarshalList(findingsRaw, &res.ConsolidatedFindings); err != nil {
		return ComprehensiveResult{}, err
	}
	if err := unmarshalList(insightsRaw, &res.CrossDocumentInsights); err != nil {
		return ComprehensiveResult{}, err
	}
	if err := unmarshalList(contradictionsRaw, &res.Contradictions); err != nil {
		return ComprehensiveResult{}, err
	}
	if err := unmarshalList(recsRaw, &res.Recommendations); err != nil {
		return ComprehensiveResult{}, err
	}
	return res, nil
}

func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func unmarshalList(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal(raw, dst)
}
