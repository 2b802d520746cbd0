package analysis

import (
	"context"
	"errors"
	"testing"

	"tprm-backend/internal/llm"
)

type scriptedLLM struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *scriptedLLM) Complete(_ context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var resp string
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

func TestCompleteWithRetryRecoversFromTransientError(t *testing.T) {
	client := &scriptedLLM{
		responses: []string{"", `{"risk_score": 10}`},
		errs:      []error{llm.ErrRateLimited, nil},
	}
	out, err := completeWithRetry(context.Background(), client, "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"risk_score": 10}` {
		t.Fatalf("out = %q", out)
	}
	if client.calls != 2 {
		t.Fatalf("calls = %d, want 2", client.calls)
	}
}

func TestCompleteWithRetryDoesNotRetryUnconfigured(t *testing.T) {
	client := &scriptedLLM{errs: []error{llm.ErrUnavailable, llm.ErrUnavailable}}
	_, err := completeWithRetry(context.Background(), client, "prompt")
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on missing credentials)", client.calls)
	}
}

func TestCompleteWithRetryGivesUpAfterOneRetry(t *testing.T) {
	failure := errors.New("upstream 500")
	client := &scriptedLLM{errs: []error{failure, failure, failure}}
	_, err := completeWithRetry(context.Background(), client, "prompt")
	if !errors.Is(err, failure) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("calls = %d, want 2", client.calls)
	}
}

func TestDegradedResultShape(t *testing.T) {
	res := degradedResult("analysis provider unreachable")
	if !res.Degraded {
		t.Fatal("expected Degraded flag")
	}
	if res.RiskScore != defaultRiskScore || res.RiskLevel != RiskMedium {
		t.Fatalf("score/level = %d/%s, want %d/Medium", res.RiskScore, res.RiskLevel, defaultRiskScore)
	}
	if len(res.Findings) == 0 || len(res.Recommendations) == 0 {
		t.Fatal("degraded result must still carry findings and recommendations")
	}
}

func TestDegradedComprehensiveUsesMeanScore(t *testing.T) {
	perDoc := []Result{
		{RiskScore: 20, Findings: []string{"minor gap"}},
		{RiskScore: 80, Findings: []string{"major gap"}},
	}
	res := degradedComprehensive(perDoc, "synthesis provider unreachable")
	if !res.Degraded {
		t.Fatal("expected Degraded flag")
	}
	if res.OverallRiskScore != 50 {
		t.Fatalf("score = %d, want 50", res.OverallRiskScore)
	}
	if res.OverallRiskLevel != RiskMedium {
		t.Fatalf("level = %s, want Medium", res.OverallRiskLevel)
	}
	if res.Decision != DecisionGo {
		t.Fatalf("decision = %s, want Go for score 50 with no critical findings", res.Decision)
	}
	if len(res.Contradictions) != 0 || len(res.CrossDocumentInsights) != 0 {
		t.Fatal("degraded aggregate must not fabricate cross-document fields")
	}
	if len(res.ConsolidatedFindings) != 2 {
		t.Fatalf("findings = %+v", res.ConsolidatedFindings)
	}
}

func TestDegradedComprehensiveCriticalFindingForcesNoGo(t *testing.T) {
	perDoc := []Result{{RiskScore: 10, Findings: []string{"CRITICAL: unpatched remote code execution"}}}
	res := degradedComprehensive(perDoc, "synthesis provider unreachable")
	if res.Decision != DecisionNoGo {
		t.Fatalf("decision = %s, want No-Go", res.Decision)
	}
}
