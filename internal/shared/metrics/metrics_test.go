package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesAllSeries(t *testing.T) {
	IncAnalysisStarted()
	IncAnalysisCompleted()
	IncInjectionRejected()
	ObserveAnalysisDurationMs(420)
	ObserveSynthesisDurationMs(1500)

	out := Render()
	for _, name := range []string{
		"analysis_started_total",
		"analysis_completed_total",
		"analysis_failed_total",
		"analysis_degraded_total",
		"synthesis_started_total",
		"synthesis_completed_total",
		"synthesis_failed_total",
		"synthesis_degraded_total",
		"injection_rejected_total",
		"analysis_duration_ms_bucket",
		"analysis_duration_ms_sum",
		"analysis_duration_ms_count",
		"synthesis_duration_ms_bucket",
		"synthesis_duration_ms_count",
	} {
		if !strings.Contains(out, name) {
			t.Errorf("render output missing %s", name)
		}
	}
	if !strings.Contains(out, `le="+Inf"`) {
		t.Error("histogram missing +Inf bucket")
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100, 1000})
	h.Observe(5)
	h.Observe(50)
	h.Observe(5000)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count = %d, want 3", snap.count)
	}
	// Raw per-bucket counts; rendering accumulates them.
	if snap.counts[0] != 1 || snap.counts[1] != 1 || snap.counts[2] != 0 {
		t.Fatalf("bucket counts = %v", snap.counts)
	}
	if snap.sum != 5055 {
		t.Fatalf("sum = %v", snap.sum)
	}
}
