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
	reviewStartedTotal   atomic.Uint64
	reviewCompletedTotal atomic.Uint64
	reviewFailedTotal    atomic.Uint64
	ocrPassTotal         atomic.Uint64
	degradedTotal        atomic.Uint64

	reviewDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncReviewStarted increments the started counter.
func IncReviewStarted() {
	reviewStartedTotal.Add(1)
}

// IncReviewCompleted increments the completed counter.
func IncReviewCompleted() {
	reviewCompletedTotal.Add(1)
}

// IncReviewFailed increments the failed counter.
func IncReviewFailed() {
	reviewFailedTotal.Add(1)
}

// IncOCRPass counts a rasterize-and-recognize pass over a scanned PDF.
func IncOCRPass() {
	ocrPassTotal.Add(1)
}

// IncCapabilityDegraded counts an analyzer falling back to its unavailable result.
func IncCapabilityDegraded() {
	degradedTotal.Add(1)
}

// ObserveReviewDurationMs records a pipeline duration in milliseconds.
func ObserveReviewDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	reviewDuration.Observe(value)
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
	writeCounter(&buf, "review_started_total", "Total resume reviews started", reviewStartedTotal.Load())
	writeCounter(&buf, "review_completed_total", "Total resume reviews completed", reviewCompletedTotal.Load())
	writeCounter(&buf, "review_failed_total", "Total resume reviews failed", reviewFailedTotal.Load())
	writeCounter(&buf, "ocr_pass_total", "Total OCR passes over scanned PDFs", ocrPassTotal.Load())
	writeCounter(&buf, "capability_degraded_total", "Total analyzer degradations to unavailable results", degradedTotal.Load())
	writeHistogram(&buf, "review_duration_ms", "Review pipeline duration in milliseconds", reviewDuration.Snapshot())
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
