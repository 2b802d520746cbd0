package documents

import "time"

// Analysis status values for a document.
const (
	StatusNotAnalyzed = "Not Analyzed"
	StatusAnalyzing   = "Analyzing"
	StatusCompleted   = "Completed"
	StatusFailed      = "Failed"
)

// Document types accepted on upload. General is the catch-all.
const (
	TypeSOC2       = "SOC2"
	TypePentest    = "Pentest"
	TypeCompliance = "Compliance"
	TypeISO27001   = "ISO27001"
	TypeContract   = "Contract"
	TypeGeneral    = "General"
)

// Document represents an uploaded document owned by a vendor.
type Document struct {
	ID               string
	VendorID         string
	FileName         string
	DocumentType     string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	AnalysisStatus   string
	RiskScore        *int
	RiskLevel        string
	Findings         []string
	Recommendations  []string
	CreatedAt        time.Time
}

// KnownType reports whether the declared document type is one of the accepted values.
func KnownType(t string) bool {
	switch t {
	case TypeSOC2, TypePentest, TypeCompliance, TypeISO27001, TypeContract, TypeGeneral:
		return true
	}
	return false
}
