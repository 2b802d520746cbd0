package vendors

import "time"

// Vendor represents a third-party vendor under assessment.
type Vendor struct {
	ID              string
	Name            string
	Website         string
	Description     string
	Criticality     string
	Spend           float64
	DataSensitivity string
	RiskScore       *int
	RiskLevel       string
	LastAssessed    *time.Time
	CreatedAt       time.Time
}

// Criticality values accepted on vendor records.
const (
	CriticalityLow      = "Low"
	CriticalityMedium   = "Medium"
	CriticalityHigh     = "High"
	CriticalityCritical = "Critical"
)
