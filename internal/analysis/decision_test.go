package analysis

import "testing"

func TestDecide(t *testing.T) {
	cases := []struct {
		name        string
		score       int
		hasCritical bool
		want        Decision
	}{
		{"low score", 25, false, DecisionGo},
		{"upper go bound", 59, false, DecisionGo},
		{"conditional lower bound", 60, false, DecisionConditional},
		{"conditional upper bound", 70, false, DecisionConditional},
		{"high score", 71, false, DecisionNoGo},
		{"critical overrides low score", 10, true, DecisionNoGo},
		{"critical overrides conditional", 65, true, DecisionNoGo},
		{"critical and high", 90, true, DecisionNoGo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.score, tc.hasCritical); got != tc.want {
				t.Fatalf("Decide(%d, %v) = %s, want %s", tc.score, tc.hasCritical, got, tc.want)
			}
		})
	}
}

func TestHasCriticalFindings(t *testing.T) {
	if HasCriticalFindings([]string{"MFA is not enforced", "logging is partial"}) {
		t.Fatal("no marker, expected false")
	}
	if !HasCriticalFindings([]string{"MFA is not enforced", "CRITICAL: production data is shared with subcontractors without encryption"}) {
		t.Fatal("marker present, expected true")
	}
	if !HasCriticalFindings([]string{"  CRITICAL: unpatched remote code execution in internet-facing service"}) {
		t.Fatal("leading whitespace should not hide the marker")
	}
}
