package analysis

import (
	"context"
	"errors"
	"time"

	"tprm-backend/internal/llm"
	"tprm-backend/internal/shared/metrics"
	"tprm-backend/internal/shared/telemetry"
)

// Analyzer runs the single-document risk pipeline: normalize, prompt, call
// the provider with a bounded retry, validate, and degrade rather than fail
// when the provider or its output is unusable.
type Analyzer struct {
	client llm.Client
	bounds Bounds
}

func NewAnalyzer(client llm.Client, bounds Bounds) *Analyzer {
	return &Analyzer{client: client, bounds: bounds}
}

// Analyze assesses one document's extracted text. It rejects documents that
// carry prompt-injection content before any provider call; every other
// failure mode yields a degraded but schema-valid Result.
func (a *Analyzer) Analyze(ctx context.Context, docType, content string) (Result, error) {
	metrics.IncAnalysisStarted()
	start := time.Now()

	normalized, truncated, err := Normalize(content, a.bounds.MaxInputChars)
	if err != nil {
		if errors.Is(err, ErrInjectionDetected) {
			metrics.IncInjectionRejected()
			telemetry.Error("document rejected for injection content", map[string]any{
				"excerpt": AuditExcerpt(content),
			})
		}
		metrics.IncAnalysisFailed()
		return Result{}, err
	}
	if truncated {
		telemetry.Info("document truncated before analysis", map[string]any{
			"maxChars": a.bounds.MaxInputChars,
		})
	}

	raw, err := completeWithRetry(ctx, a.client, DocumentPrompt(docType, normalized))
	if err != nil {
		metrics.IncAnalysisDegraded()
		telemetry.Warn("analysis provider unavailable, returning degraded result", map[string]any{
			"error": err.Error(),
		})
		return degradedResult("analysis provider unreachable"), nil
	}

	result, err := ValidateResult(raw, a.bounds)
	if err != nil {
		metrics.IncAnalysisDegraded()
		telemetry.Warn("analysis output unusable, returning degraded result", map[string]any{
			"error": err.Error(),
		})
		return degradedResult("analysis output could not be interpreted"), nil
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
	return result, nil
}
