package analysis

import (
	"time"

	"tprm-backend/internal/documents"
)

// DocumentAnalysisResponse is the outward-facing result of a single-document
// analysis.
type DocumentAnalysisResponse struct {
	DocumentID      string   `json:"documentId"`
	VendorID        string   `json:"vendorId"`
	FileName        string   `json:"fileName"`
	DocumentType    string   `json:"documentType"`
	AnalysisStatus  string   `json:"analysisStatus"`
	RiskScore       *int     `json:"riskScore,omitempty"`
	RiskLevel       string   `json:"riskLevel,omitempty"`
	Findings        []string `json:"findings"`
	Recommendations []string `json:"recommendations"`
}

func toDocumentAnalysisResponse(doc documents.Document) DocumentAnalysisResponse {
	return DocumentAnalysisResponse{
		DocumentID:      doc.ID,
		VendorID:        doc.VendorID,
		FileName:        doc.FileName,
		DocumentType:    doc.DocumentType,
		AnalysisStatus:  doc.AnalysisStatus,
		RiskScore:       doc.RiskScore,
		RiskLevel:       doc.RiskLevel,
		Findings:        doc.Findings,
		Recommendations: doc.Recommendations,
	}
}

// ComprehensiveResponse is the outward-facing representation of a
// comprehensive assessment.
type ComprehensiveResponse struct {
	AssessmentID          string    `json:"assessmentId"`
	VendorID              string    `json:"vendorId"`
	VendorName            string    `json:"vendorName"`
	OverallRiskScore      int       `json:"overallRiskScore"`
	OverallRiskLevel      string    `json:"overallRiskLevel"`
	Decision              string    `json:"decision"`
	DecisionJustification string    `json:"decisionJustification"`
	DocumentsAnalyzed     int       `json:"documentsAnalyzed"`
	ConsolidatedFindings  []string  `json:"consolidatedFindings"`
	CrossDocumentInsights []string  `json:"crossDocumentInsights"`
	Contradictions        []string  `json:"contradictions"`
	Recommendations       []string  `json:"recommendations"`
	Degraded              bool      `json:"degraded"`
	AnalysisDate          time.Time `json:"analysisDate"`
	ProcessingTimeMs      int64     `json:"processingTimeMs"`
}

func toComprehensiveResponse(res ComprehensiveResult) ComprehensiveResponse {
	return ComprehensiveResponse{
		AssessmentID:          res.ID,
		VendorID:              res.VendorID,
		VendorName:            res.VendorName,
		OverallRiskScore:      res.OverallRiskScore,
		OverallRiskLevel:      string(res.OverallRiskLevel),
		Decision:              string(res.Decision),
		DecisionJustification: res.DecisionJustification,
		DocumentsAnalyzed:     res.DocumentsAnalyzed,
		ConsolidatedFindings:  res.ConsolidatedFindings,
		CrossDocumentInsights: res.CrossDocumentInsights,
		Contradictions:        res.Contradictions,
		Recommendations:       res.Recommendations,
		Degraded:              res.Degraded,
		AnalysisDate:          res.AnalysisDate,
		ProcessingTimeMs:      res.ProcessingTime.Milliseconds(),
	}
}
