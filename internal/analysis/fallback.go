package analysis

import (
	"context"
	"errors"
	"time"

	"tprm-backend/internal/llm"
)

const (
	retryAttempts = 1
	retryBackoff  = 300 * time.Millisecond
)

// retryable reports whether a provider error is worth one more attempt.
// Rate limits and timeouts are transient; missing credentials and auth
// failures are not.
func retryable(err error) bool {
	if errors.Is(err, llm.ErrUnavailable) {
		return false
	}
	if errors.Is(err, llm.ErrRateLimited) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return true
}

// completeWithRetry calls the provider, retrying once after a short backoff
// when the failure looks transient.
func completeWithRetry(ctx context.Context, client llm.Client, prompt string) (string, error) {
	out, err := client.Complete(ctx, prompt)
	if err == nil {
		return out, nil
	}
	if !retryable(err) {
		return "", err
	}
	for attempt := 0; attempt < retryAttempts; attempt++ {
		select {
		case <-time.After(retryBackoff):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		out, err = client.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
	}
	return "", err
}

// degradedResult is the schema-valid stand-in returned when a single-document
// analysis cannot be completed.
func degradedResult(reason string) Result {
	return Result{
		RiskScore: defaultRiskScore,
		RiskLevel: RiskLevelForScore(defaultRiskScore),
		Findings: []string{
			"Automated analysis unavailable: " + reason,
		},
		Recommendations: []string{
			"Re-run the analysis once the analysis provider is reachable",
			"Review this document manually in the interim",
		},
		Degraded: true,
	}
}

// degradedComprehensive builds a fallback aggregate from the per-document
// results already in hand: mean score, policy decision, no cross-document
// fields.
func degradedComprehensive(perDoc []Result, reason string) ComprehensiveResult {
	score := meanScore(perDoc)
	findings := make([]string, 0, len(perDoc))
	for _, r := range perDoc {
		findings = append(findings, r.Findings...)
	}
	bounded := boundedList(findings, ComprehensiveBounds())

	return ComprehensiveResult{
		OverallRiskScore:      score,
		OverallRiskLevel:      RiskLevelForScore(score),
		Decision:              Decide(score, HasCriticalFindings(bounded)),
		DecisionJustification: "Cross-document synthesis unavailable (" + reason + "); score is the mean of per-document analyses and the decision follows the standard policy thresholds.",
		ConsolidatedFindings:  bounded,
		CrossDocumentInsights: []string{},
		Contradictions:        []string{},
		Recommendations: []string{
			"Re-run the comprehensive analysis once the analysis provider is reachable",
		},
		Degraded: true,
	}
}

func meanScore(perDoc []Result) int {
	if len(perDoc) == 0 {
		return defaultRiskScore
	}
	total := 0
	for _, r := range perDoc {
		total += r.RiskScore
	}
	return total / len(perDoc)
}
