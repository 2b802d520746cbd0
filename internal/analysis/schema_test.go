package analysis

import "testing"

func TestRiskLevelForScoreBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLow},
		{39, RiskLow},
		{40, RiskMedium},
		{55, RiskMedium},
		{70, RiskMedium},
		{71, RiskHigh},
		{100, RiskHigh},
	}
	for _, tc := range cases {
		if got := RiskLevelForScore(tc.score); got != tc.want {
			t.Errorf("RiskLevelForScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
