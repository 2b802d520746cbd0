package analysis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"tprm-backend/internal/documents"
	"tprm-backend/internal/extract"
	"tprm-backend/internal/shared/storage/object"
	"tprm-backend/internal/shared/telemetry"
	"tprm-backend/internal/vendors"
)

// Service orchestrates document and vendor-level risk analysis: loading
// extracted text, running the pipeline, and persisting results and status
// transitions.
type Service struct {
	Docs        documents.Repo
	Vendors     vendors.Repo
	Assessments AssessmentRepo
	Store       object.ObjectStore
	Analyzer    *Analyzer
	Synthesizer *Synthesizer
}

// AnalyzeText runs the single-document pipeline over raw text that has no
// stored document behind it. Nothing is persisted.
func (s *Service) AnalyzeText(ctx context.Context, documentType, text string) (Result, error) {
	if documentType == "" {
		documentType = documents.TypeGeneral
	}
	if !documents.KnownType(documentType) {
		return Result{}, fmt.Errorf("%w: unknown document type %q", documents.ErrInvalidInput, documentType)
	}
	return s.Analyzer.Analyze(ctx, documentType, text)
}

// AnalyzeDocument runs the single-document pipeline synchronously and
// persists the outcome on the document record.
func (s *Service) AnalyzeDocument(ctx context.Context, documentID string) (documents.Document, error) {
	doc, err := s.Docs.GetByID(ctx, documentID)
	if err != nil {
		return documents.Document{}, err
	}

	if err := s.Docs.UpdateStatus(ctx, doc.ID, documents.StatusAnalyzing); err != nil {
		return documents.Document{}, err
	}

	text, err := s.loadText(ctx, &doc)
	if err != nil {
		s.markFailed(ctx, doc.ID)
		return documents.Document{}, err
	}

	result, err := s.Analyzer.Analyze(ctx, doc.DocumentType, text)
	if err != nil {
		s.markFailed(ctx, doc.ID)
		return documents.Document{}, err
	}

	if err := s.Docs.UpdateAnalysis(ctx, doc.ID, documents.StatusCompleted,
		result.RiskScore, string(result.RiskLevel), result.Findings, result.Recommendations); err != nil {
		s.markFailed(ctx, doc.ID)
		return documents.Document{}, err
	}
	return s.Docs.GetByID(ctx, doc.ID)
}

// AnalyzeAll runs a comprehensive assessment for a vendor. Documents that
// already completed an individual analysis are reused; the rest are analyzed
// as part of the synthesis. The resulting assessment is persisted and the
// vendor's risk summary is updated.
func (s *Service) AnalyzeAll(ctx context.Context, vendorID string) (ComprehensiveResult, error) {
	vendor, err := s.Vendors.GetByID(ctx, vendorID)
	if err != nil {
		return ComprehensiveResult{}, err
	}

	docs, err := s.Docs.ListByVendor(ctx, vendorID)
	if err != nil {
		return ComprehensiveResult{}, err
	}
	if len(docs) == 0 {
		return ComprehensiveResult{}, ErrNoDocuments
	}

	inputs := make([]SynthesisDocument, 0, len(docs))
	included := make([]documents.Document, 0, len(docs))
	var pending []string
	for i := range docs {
		doc := docs[i]
		text, err := s.loadText(ctx, &doc)
		if err != nil {
			telemetry.Warn("document excluded from comprehensive analysis", map[string]any{
				"documentId": doc.ID,
				"error":      err.Error(),
			})
			s.markFailed(ctx, doc.ID)
			continue
		}
		input := SynthesisDocument{
			FileName: doc.FileName,
			DocType:  doc.DocumentType,
			Content:  text,
		}
		if prior := priorResult(doc); prior != nil {
			input.Prior = prior
		} else {
			if err := s.Docs.UpdateStatus(ctx, doc.ID, documents.StatusAnalyzing); err != nil {
				return ComprehensiveResult{}, err
			}
			pending = append(pending, doc.ID)
		}
		inputs = append(inputs, input)
		included = append(included, doc)
	}
	if len(inputs) == 0 {
		return ComprehensiveResult{}, ErrNoDocuments
	}

	comprehensive, perDoc, err := s.Synthesizer.Synthesize(ctx, vendor.Name, inputs)
	if err != nil {
		for _, id := range pending {
			s.markFailed(ctx, id)
		}
		return ComprehensiveResult{}, err
	}

	for i, doc := range included {
		if inputs[i].Prior != nil {
			continue
		}
		res := perDoc[i]
		if err := s.Docs.UpdateAnalysis(ctx, doc.ID, documents.StatusCompleted,
			res.RiskScore, string(res.RiskLevel), res.Findings, res.Recommendations); err != nil {
			s.markFailed(ctx, doc.ID)
			return ComprehensiveResult{}, err
		}
	}

	comprehensive.ID = uuid.NewString()
	comprehensive.VendorID = vendorID
	if err := s.Assessments.Save(ctx, comprehensive); err != nil {
		return ComprehensiveResult{}, err
	}
	if err := s.Vendors.UpdateRisk(ctx, vendorID,
		comprehensive.OverallRiskScore, string(comprehensive.OverallRiskLevel), comprehensive.AnalysisDate); err != nil {
		return ComprehensiveResult{}, err
	}
	return comprehensive, nil
}

// GetComprehensive returns the most recent stored assessment for a vendor.
func (s *Service) GetComprehensive(ctx context.Context, vendorID string) (ComprehensiveResult, error) {
	if _, err := s.Vendors.GetByID(ctx, vendorID); err != nil {
		return ComprehensiveResult{}, err
	}
	return s.Assessments.LatestByVendor(ctx, vendorID)
}

// loadText returns the document's extracted text, extracting and persisting
// the derived copy on first use.
func (s *Service) loadText(ctx context.Context, doc *documents.Document) (string, error) {
	if doc.ExtractedTextKey != "" {
		body, err := s.Store.Open(ctx, doc.ExtractedTextKey)
		if err == nil {
			defer body.Close()
			raw, err := io.ReadAll(body)
			if err == nil {
				return string(raw), nil
			}
		}
		telemetry.Warn("stored extracted text unreadable, re-extracting", map[string]any{
			"documentId": doc.ID,
		})
	}

	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return "", err
	}
	extractedKey := doc.StorageKey + ".extracted.txt"
	now := time.Now().UTC()
	if err := s.Docs.UpdateExtraction(ctx, doc.ID, extractedKey, now); err != nil {
		return "", err
	}
	doc.ExtractedTextKey = extractedKey
	doc.ExtractedAt = &now
	return text, nil
}

func (s *Service) markFailed(ctx context.Context, documentID string) {
	if err := s.Docs.UpdateStatus(ctx, documentID, documents.StatusFailed); err != nil {
		telemetry.Error("failed to mark document failed", map[string]any{
			"documentId": documentID,
			"error":      err.Error(),
		})
	}
}

// priorResult rebuilds an individual analysis result from a document record
// that already completed one.
func priorResult(doc documents.Document) *Result {
	if doc.AnalysisStatus != documents.StatusCompleted || doc.RiskScore == nil {
		return nil
	}
	return &Result{
		RiskScore:       *doc.RiskScore,
		RiskLevel:       RiskLevelForScore(*doc.RiskScore),
		Findings:        doc.Findings,
		Recommendations: doc.Recommendations,
	}
}
