package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisStartedTotal   atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	analysisDegradedTotal  atomic.Uint64

	synthesisStartedTotal   atomic.Uint64
	synthesisCompletedTotal atomic.Uint64
	synthesisFailedTotal    atomic.Uint64
	synthesisDegradedTotal  atomic.Uint64

	injectionRejectedTotal atomic.Uint64

	analysisDuration  = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
	synthesisDuration = newHistogram([]float64{500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Add(1)
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncAnalysisDegraded increments the degraded-result counter.
func IncAnalysisDegraded() {
	analysisDegradedTotal.Add(1)
}

// IncSynthesisStarted increments the synthesis started counter.
func IncSynthesisStarted() {
	synthesisStartedTotal.Add(1)
}

// IncSynthesisCompleted increments the synthesis completed counter.
func IncSynthesisCompleted() {
	synthesisCompletedTotal.Add(1)
}

// IncSynthesisFailed increments the synthesis failed counter.
func IncSynthesisFailed() {
	synthesisFailedTotal.Add(1)
}

// IncSynthesisDegraded increments the degraded-synthesis counter.
func IncSynthesisDegraded() {
	synthesisDegradedTotal.Add(1)
}

// IncInjectionRejected increments the rejected-input counter.
func IncInjectionRejected() {
	injectionRejectedTotal.Add(1)
}

// ObserveAnalysisDurationMs records a single-document analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// ObserveSynthesisDurationMs records a comprehensive synthesis duration in milliseconds.
func ObserveSynthesisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	synthesisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analysis_started_total", "Total document analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "analysis_completed_total", "Total document analyses completed", analysisCompletedTotal.Load())
	writeCounter(&buf, "analysis_failed_total", "Total document analyses failed", analysisFailedTotal.Load())
	writeCounter(&buf, "analysis_degraded_total", "Total document analyses served from fallback", analysisDegradedTotal.Load())
	writeCounter(&buf, "synthesis_started_total", "Total comprehensive syntheses started", synthesisStartedTotal.Load())
	writeCounter(&buf, "synthesis_completed_total", "Total comprehensive syntheses completed", synthesisCompletedTotal.Load())
	writeCounter(&buf, "synthesis_failed_total", "Total comprehensive syntheses failed", synthesisFailedTotal.Load())
	writeCounter(&buf, "synthesis_degraded_total", "Total comprehensive syntheses served from fallback", synthesisDegradedTotal.Load())
	writeCounter(&buf, "injection_rejected_total", "Total inputs rejected by the prompt guard", injectionRejectedTotal.Load())
	writeHistogram(&buf, "analysis_duration_ms", "Document analysis duration in milliseconds", analysisDuration.Snapshot())
	writeHistogram(&buf, "synthesis_duration_ms", "Comprehensive synthesis duration in milliseconds", synthesisDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
