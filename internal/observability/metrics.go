package observability

import (
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds sampling metrics for registered covergroups.
// Labels are covergroup type IDs.
type Metrics struct {
	sampleDuration *HistogramVec
	samplesTotal   *CounterVec
	sampleErrors   *CounterVec
	typeCoverage   *GaugeVec
	instances      *AtomicGauge
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics() *Metrics {
	return &Metrics{
		sampleDuration: NewHistogramVec(),
		samplesTotal:   NewCounterVec(),
		sampleErrors:   NewCounterVec(),
		typeCoverage:   NewGaugeVec(),
		instances:      NewAtomicGauge(),
	}
}

func (m *Metrics) SampleDuration() *HistogramVec { return m.sampleDuration }
func (m *Metrics) SamplesTotal() *CounterVec     { return m.samplesTotal }
func (m *Metrics) SampleErrors() *CounterVec     { return m.sampleErrors }
func (m *Metrics) TypeCoverage() *GaugeVec       { return m.typeCoverage }
func (m *Metrics) Instances() *AtomicGauge       { return m.instances }

// Snapshot returns a snapshot of all metrics for reporting.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	return &MetricsSnapshot{
		SampleDuration: m.sampleDuration.Snapshot(),
		SamplesTotal:   m.samplesTotal.Snapshot(),
		SampleErrors:   m.sampleErrors.Snapshot(),
		TypeCoverage:   m.typeCoverage.Snapshot(),
		Instances:      m.instances.Get(),
	}
}

// MetricsSnapshot holds a point-in-time snapshot of all metrics.
type MetricsSnapshot struct {
	SampleDuration map[string]HistogramSnapshot `json:"sample_duration"`
	SamplesTotal   map[string]int64             `json:"samples_total"`
	SampleErrors   map[string]int64             `json:"sample_errors"`
	TypeCoverage   map[string]float64           `json:"type_coverage"`
	Instances      int64                        `json:"instances"`
}

// Histogram tracks the distribution of duration measurements.
// Thread-safe for concurrent observations.
type Histogram struct {
	mu     sync.RWMutex
	values []float64 // microseconds, ring of the most recent observations
	next   int
	total  int
}

// HistogramWindow is the number of recent observations a Histogram keeps.
const HistogramWindow = 1024

// NewHistogram creates a new histogram.
func NewHistogram() *Histogram {
	return newHistogramWindow(HistogramWindow)
}

func newHistogramWindow(n int) *Histogram {
	return &Histogram{
		values: make([]float64, 0, n),
	}
}

// Observe records a duration measurement. Once the window is full the
// oldest observation is overwritten.
func (h *Histogram) Observe(d time.Duration) {
	micros := float64(d.Microseconds())
	h.mu.Lock()
	if len(h.values) < cap(h.values) {
		h.values = append(h.values, micros)
	} else {
		h.values[h.next] = micros
	}
	h.next = (h.next + 1) % cap(h.values)
	h.total++
	h.mu.Unlock()
}

// Snapshot returns a point-in-time snapshot with percentiles calculated.
// Count is the total number of observations; the other statistics cover
// the retained window.
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.RLock()
	sorted := make([]float64, len(h.values))
	copy(sorted, h.values)
	total := h.total
	h.mu.RUnlock()

	if len(sorted) == 0 {
		return HistogramSnapshot{}
	}
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	return HistogramSnapshot{
		Count: total,
		Mean:  time.Duration(mean) * time.Microsecond,
		P50:   time.Duration(percentile(sorted, 0.50)) * time.Microsecond,
		P99:   time.Duration(percentile(sorted, 0.99)) * time.Microsecond,
		Max:   time.Duration(sorted[len(sorted)-1]) * time.Microsecond,
	}
}

// HistogramSnapshot holds calculated statistics for a histogram.
type HistogramSnapshot struct {
	Count int           `json:"count"`
	Mean  time.Duration `json:"mean"`
	P50   time.Duration `json:"p50"`
	P99   time.Duration `json:"p99"`
	Max   time.Duration `json:"max"`
}

// percentile interpolates the p-th percentile from sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// HistogramVec is a collection of histograms keyed by label.
type HistogramVec struct {
	mu         sync.RWMutex
	histograms map[string]*Histogram
}

// NewHistogramVec creates a new histogram vector.
func NewHistogramVec() *HistogramVec {
	return &HistogramVec{histograms: make(map[string]*Histogram)}
}

// WithLabels returns the histogram for the given label, creating it if needed.
func (hv *HistogramVec) WithLabels(labels string) *Histogram {
	hv.mu.RLock()
	h, ok := hv.histograms[labels]
	hv.mu.RUnlock()
	if ok {
		return h
	}

	hv.mu.Lock()
	defer hv.mu.Unlock()
	if h, ok := hv.histograms[labels]; ok {
		return h
	}
	h = NewHistogram()
	hv.histograms[labels] = h
	return h
}

// Snapshot returns snapshots of all histograms.
func (hv *HistogramVec) Snapshot() map[string]HistogramSnapshot {
	hv.mu.RLock()
	defer hv.mu.RUnlock()

	out := make(map[string]HistogramSnapshot, len(hv.histograms))
	for label, h := range hv.histograms {
		out[label] = h.Snapshot()
	}
	return out
}

// Counter is a monotonically increasing counter.
type Counter struct {
	value atomic.Int64
}

// Inc increments the counter by 1.
func (c *Counter) Inc() { c.value.Add(1) }

// Get returns the current value.
func (c *Counter) Get() int64 { return c.value.Load() }

// CounterVec is a collection of counters keyed by label.
type CounterVec struct {
	mu       sync.RWMutex
	counters map[string]*Counter
}

// NewCounterVec creates a new counter vector.
func NewCounterVec() *CounterVec {
	return &CounterVec{counters: make(map[string]*Counter)}
}

// WithLabels returns the counter for the given label, creating it if needed.
func (cv *CounterVec) WithLabels(labels string) *Counter {
	cv.mu.RLock()
	c, ok := cv.counters[labels]
	cv.mu.RUnlock()
	if ok {
		return c
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()
	if c, ok := cv.counters[labels]; ok {
		return c
	}
	c = &Counter{}
	cv.counters[labels] = c
	return c
}

// Snapshot returns the current values of all counters.
func (cv *CounterVec) Snapshot() map[string]int64 {
	cv.mu.RLock()
	defer cv.mu.RUnlock()

	out := make(map[string]int64, len(cv.counters))
	for label, c := range cv.counters {
		out[label] = c.Get()
	}
	return out
}

// AtomicGauge is a gauge that can be set and read atomically.
type AtomicGauge struct {
	value atomic.Int64
}

// NewAtomicGauge creates a new atomic gauge.
func NewAtomicGauge() *AtomicGauge {
	return &AtomicGauge{}
}

func (g *AtomicGauge) Set(val int64) { g.value.Store(val) }
func (g *AtomicGauge) Inc()          { g.value.Add(1) }
func (g *AtomicGauge) Get() int64    { return g.value.Load() }

// GaugeVec is a collection of float gauges keyed by label.
type GaugeVec struct {
	mu     sync.RWMutex
	gauges map[string]float64
}

// NewGaugeVec creates a new gauge vector.
func NewGaugeVec() *GaugeVec {
	return &GaugeVec{gauges: make(map[string]float64)}
}

// Set sets the gauge for the given label.
func (gv *GaugeVec) Set(labels string, value float64) {
	gv.mu.Lock()
	gv.gauges[labels] = value
	gv.mu.Unlock()
}

// Snapshot returns the current values of all gauges.
func (gv *GaugeVec) Snapshot() map[string]float64 {
	gv.mu.RLock()
	defer gv.mu.RUnlock()

	out := make(map[string]float64, len(gv.gauges))
	for label, value := range gv.gauges {
		out[label] = value
	}
	return out
}

// WriteText writes a human-readable summary, with labels sorted.
func (m *Metrics) WriteText(w io.Writer) error {
	s := m.Snapshot()

	if _, err := fmt.Fprintf(w, "# Covergroup Sampling Metrics\n\nInstances: %d\n", s.Instances); err != nil {
		return err
	}
	for _, label := range sortedKeys(s.SamplesTotal) {
		h := s.SampleDuration[label]
		_, err := fmt.Fprintf(w, "%s: samples=%d errors=%d coverage=%.2f%% mean=%v p99=%v\n",
			label, s.SamplesTotal[label], s.SampleErrors[label], s.TypeCoverage[label], h.Mean, h.P99)
		if err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
