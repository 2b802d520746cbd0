package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID      string    `json:"documentId"`
	VendorID        string    `json:"vendorId"`
	FileName        string    `json:"fileName"`
	DocumentType    string    `json:"documentType"`
	MimeType        string    `json:"mimeType"`
	SizeBytes       int64     `json:"sizeBytes"`
	AnalysisStatus  string    `json:"analysisStatus"`
	RiskScore       *int      `json:"riskScore,omitempty"`
	RiskLevel       string    `json:"riskLevel,omitempty"`
	Findings        []string  `json:"findings,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	UploadedAt      time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:      doc.ID,
		VendorID:        doc.VendorID,
		FileName:        doc.FileName,
		DocumentType:    doc.DocumentType,
		MimeType:        doc.MimeType,
		SizeBytes:       doc.SizeBytes,
		AnalysisStatus:  doc.AnalysisStatus,
		RiskScore:       doc.RiskScore,
		RiskLevel:       doc.RiskLevel,
		Findings:        doc.Findings,
		Recommendations: doc.Recommendations,
		UploadedAt:      doc.CreatedAt,
	}
}
