package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// defaultRiskScore is substituted when the model omits the score or returns
// something non-numeric. Documented default: 50/Medium.
const defaultRiskScore = 50

// ValidateResult clamps and filters raw model output into a schema-valid
// Result. It never fails on malformed well-known fields; it returns
// ErrUnrecoverableOutput only when the top-level output is not parseable as
// structured data at all. Validation is idempotent on clean input.
func ValidateResult(raw string, b Bounds) (Result, error) {
	fields, err := parseObject(raw)
	if err != nil {
		return Result{}, err
	}

	score := clampScore(pick(fields, "risk_score", "riskScore"))
	return Result{
		RiskScore:       score,
		RiskLevel:       RiskLevelForScore(score),
		Findings:        boundedList(pick(fields, "findings"), b),
		Recommendations: boundedList(pick(fields, "recommendations"), b),
	}, nil
}

// ValidateComprehensive clamps and filters raw model output into the
// model-owned fields of a ComprehensiveResult. Caller-owned fields (vendor
// identity, document count, timing) are filled by the synthesizer.
func ValidateComprehensive(raw string, b Bounds) (ComprehensiveResult, error) {
	fields, err := parseObject(raw)
	if err != nil {
		return ComprehensiveResult{}, err
	}

	score := clampScore(pick(fields, "overall_risk_score", "overallRiskScore"))
	justification := boundedString(pick(fields, "decision_justification", "decisionJustification"), b.MaxJustificationChars)

	return ComprehensiveResult{
		OverallRiskScore:      score,
		OverallRiskLevel:      RiskLevelForScore(score),
		Decision:              parseDecision(pick(fields, "decision")),
		DecisionJustification: justification,
		ConsolidatedFindings:  boundedList(pick(fields, "consolidated_findings", "consolidatedFindings"), b),
		CrossDocumentInsights: boundedList(pick(fields, "cross_document_insights", "crossDocumentInsights"), b),
		Contradictions:        boundedList(pick(fields, "contradictions"), b),
		Recommendations:       boundedList(pick(fields, "recommendations"), b),
	}, nil
}

func parseObject(raw string) (map[string]any, error) {
	cleaned := stripCodeFences(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil, fmt.Errorf("%w: empty output", ErrUnrecoverableOutput)
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecoverableOutput, err)
	}
	return fields, nil
}

// stripCodeFences is the single repair attempt applied to model output that
// arrives wrapped in markdown.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

func pick(fields map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			return v
		}
	}
	return nil
}

func clampScore(v any) int {
	score, ok := numericValue(v)
	if !ok {
		return defaultRiskScore
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func numericValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(math.Round(n)), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(math.Round(f)), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return int(math.Round(f)), true
	default:
		return 0, false
	}
}

func parseDecision(v any) Decision {
	s, _ := v.(string)
	switch strings.TrimSpace(s) {
	case string(DecisionGo):
		return DecisionGo
	case string(DecisionConditional):
		return DecisionConditional
	case string(DecisionNoGo):
		return DecisionNoGo
	default:
		// The decision policy re-derives the verdict afterwards; empty means
		// the model proposed nothing usable.
		return ""
	}
}

// boundedList coerces a model-provided list into a bounded []string, dropping
// non-string items and items that echo injection deny-list content.
func boundedList(v any, b Bounds) []string {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			items = make([]any, len(typed))
			for i, s := range typed {
				items[i] = s
			}
		} else {
			return []string{}
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if len(out) >= b.MaxListItems {
			break
		}
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if matchInjection(s) != "" {
			continue
		}
		out = append(out, boundedString(s, b.MaxItemChars))
	}
	return out
}

func boundedString(v any, maxChars int) string {
	s, _ := v.(string)
	return truncateUTF8(strings.TrimSpace(s), maxChars)
}
