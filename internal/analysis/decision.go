package analysis

import "strings"

// criticalMarker is the prefix the synthesis prompt instructs the model to put
// on unmitigated critical findings so the decision policy can detect them
// deterministically.
const criticalMarker = "CRITICAL:"

// Decide applies the onboarding decision policy. It is pure and authoritative:
// whatever verdict the model proposed is discarded in favor of this one.
//
//	Go          score < 40, or score < 60 with no critical findings
//	No-Go       any critical finding, or score > 70
//	Conditional everything in between
func Decide(score int, hasCritical bool) Decision {
	if hasCritical {
		return DecisionNoGo
	}
	if score > 70 {
		return DecisionNoGo
	}
	if score < 60 {
		return DecisionGo
	}
	return DecisionConditional
}

// HasCriticalFindings reports whether any consolidated finding carries the
// critical marker.
func HasCriticalFindings(findings []string) bool {
	for _, f := range findings {
		if strings.HasPrefix(strings.TrimSpace(f), criticalMarker) {
			return true
		}
	}
	return false
}
