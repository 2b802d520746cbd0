package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"tprm-backend/internal/llm"
	"tprm-backend/internal/shared/metrics"
	"tprm-backend/internal/shared/telemetry"
)

// SynthesisDocument is one vendor document entering a comprehensive
// assessment. Prior carries an already-completed individual analysis so the
// synthesizer only analyzes documents that still need it.
type SynthesisDocument struct {
	FileName string
	DocType  string
	Content  string
	Prior    *Result
}

// Synthesizer produces a vendor-level assessment from every document's
// individual analysis plus a cross-document synthesis call.
type Synthesizer struct {
	client       llm.Client
	analyzer     *Analyzer
	maxDocs      int
	excerptChars int
}

func NewSynthesizer(client llm.Client, analyzer *Analyzer, maxDocs, excerptChars int) *Synthesizer {
	return &Synthesizer{
		client:       client,
		analyzer:     analyzer,
		maxDocs:      maxDocs,
		excerptChars: excerptChars,
	}
}

// Synthesize analyzes any documents lacking a prior result concurrently, then
// runs the cross-document synthesis. The returned slice holds the
// per-document results in input order so callers can persist them. The
// decision policy is applied to whatever the model proposes; the policy
// verdict wins.
func (s *Synthesizer) Synthesize(ctx context.Context, vendorName string, docs []SynthesisDocument) (ComprehensiveResult, []Result, error) {
	if len(docs) == 0 {
		return ComprehensiveResult{}, nil, ErrNoDocuments
	}
	if len(docs) > s.maxDocs {
		return ComprehensiveResult{}, nil, ErrTooManyDocuments
	}

	metrics.IncSynthesisStarted()
	start := time.Now()

	perDoc := make([]Result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		if doc.Prior != nil {
			perDoc[i] = *doc.Prior
			continue
		}
		g.Go(func() error {
			res, err := s.analyzer.Analyze(gctx, doc.DocType, doc.Content)
			if err != nil {
				return err
			}
			perDoc[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.IncSynthesisFailed()
		return ComprehensiveResult{}, nil, err
	}

	summaries := make([]DocumentSummary, len(docs))
	for i, doc := range docs {
		summaries[i] = DocumentSummary{
			FileName: doc.FileName,
			DocType:  doc.DocType,
			Result:   perDoc[i],
			Excerpt:  Excerpt(doc.Content, s.excerptChars),
		}
	}

	comprehensive := s.synthesize(ctx, vendorName, summaries, perDoc)
	comprehensive.VendorName = vendorName
	comprehensive.DocumentsAnalyzed = len(docs)
	comprehensive.AnalysisDate = time.Now().UTC()
	comprehensive.ProcessingTime = time.Since(start)

	if comprehensive.Degraded {
		metrics.IncSynthesisDegraded()
	} else {
		metrics.IncSynthesisCompleted()
	}
	metrics.ObserveSynthesisDurationMs(float64(time.Since(start).Milliseconds()))
	return comprehensive, perDoc, nil
}

func (s *Synthesizer) synthesize(ctx context.Context, vendorName string, summaries []DocumentSummary, perDoc []Result) ComprehensiveResult {
	raw, err := completeWithRetry(ctx, s.client, SynthesisPrompt(vendorName, summaries))
	if err != nil {
		telemetry.Warn("synthesis provider unavailable, returning degraded assessment", map[string]any{
			"vendor": vendorName,
			"error":  err.Error(),
		})
		return degradedComprehensive(perDoc, "synthesis provider unreachable")
	}

	result, err := ValidateComprehensive(raw, ComprehensiveBounds())
	if err != nil {
		telemetry.Warn("synthesis output unusable, returning degraded assessment", map[string]any{
			"vendor": vendorName,
			"error":  err.Error(),
		})
		return degradedComprehensive(perDoc, "synthesis output could not be interpreted")
	}

	hasCritical := HasCriticalFindings(result.ConsolidatedFindings)
	verdict := Decide(result.OverallRiskScore, hasCritical)
	if verdict != result.Decision {
		telemetry.Info("decision policy overrode model verdict", map[string]any{
			"vendor":   vendorName,
			"proposed": string(result.Decision),
			"applied":  string(verdict),
		})
	}
	result.Decision = verdict
	if result.DecisionJustification == "" {
		result.DecisionJustification = policyJustification(result.OverallRiskScore, hasCritical, verdict)
	}
	return result
}

func policyJustification(score int, hasCritical bool, verdict Decision) string {
	switch {
	case hasCritical:
		return "One or more unmitigated critical findings require a No-Go under the onboarding policy."
	case verdict == DecisionNoGo:
		return "The overall risk score exceeds the acceptable threshold for onboarding."
	case verdict == DecisionGo:
		return "The overall risk score is within the acceptable range and no critical findings are open."
	default:
		return "The overall risk score warrants onboarding only with compensating conditions in place."
	}
}
