package analysis

import "time"

// RiskLevel buckets a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Risk level thresholds: Low < 40, Medium 40-70 inclusive, High > 70.
// This is the single source of truth; callers must never bucket scores themselves.
const (
	mediumLowerBound = 40
	highLowerBound   = 71
)

// RiskLevelForScore derives the level for a score already clamped to [0,100].
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score < mediumLowerBound:
		return RiskLow
	case score < highLowerBound:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Decision is the Go/Conditional/No-Go verdict for a vendor.
type Decision string

const (
	DecisionGo          Decision = "Go"
	DecisionConditional Decision = "Conditional"
	DecisionNoGo        Decision = "No-Go"
)

// Result is the bounded outcome of a single-document analysis.
// Immutable once produced; re-analysis creates a new Result.
type Result struct {
	RiskScore       int       `json:"riskScore"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Findings        []string  `json:"findings"`
	Recommendations []string  `json:"recommendations"`
	Degraded        bool      `json:"degraded,omitempty"`
}

// ComprehensiveResult is the cross-document verdict for a vendor. Serialized
// outward through ComprehensiveResponse.
type ComprehensiveResult struct {
	ID                    string
	VendorID              string
	VendorName            string
	OverallRiskScore      int
	OverallRiskLevel      RiskLevel
	Decision              Decision
	DecisionJustification string
	DocumentsAnalyzed     int
	ConsolidatedFindings  []string
	CrossDocumentInsights []string
	Contradictions        []string
	Recommendations       []string
	Degraded              bool
	AnalysisDate          time.Time
	ProcessingTime        time.Duration
}

// Bounds caps the size of fields flowing into and out of the model.
type Bounds struct {
	MaxInputChars         int
	MaxListItems          int
	MaxItemChars          int
	MaxJustificationChars int
}

// DefaultBounds are the per-document bounds.
func DefaultBounds() Bounds {
	return Bounds{
		MaxInputChars:         100000,
		MaxListItems:          100,
		MaxItemChars:          500,
		MaxJustificationChars: 2000,
	}
}

// ComprehensiveBounds are the stricter aggregate bounds used on the second
// validation pass.
func ComprehensiveBounds() Bounds {
	return Bounds{
		MaxInputChars:         100000,
		MaxListItems:          50,
		MaxItemChars:          500,
		MaxJustificationChars: 2000,
	}
}
