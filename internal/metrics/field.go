package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/isocontour/internal/sim"
)

// FieldMean averages the per-frame mean of the finite field samples.
type FieldMean struct {
	name    string
	sum     float64
	samples int
	buf     []float64
}

func NewFieldMean() *FieldMean {
	return &FieldMean{name: "field_mean"}
}

func (m *FieldMean) Name() string { return m.name }

func (m *FieldMean) Observe(f sim.Frame) {
	m.buf = finite(m.buf[:0], f.Values)
	if len(m.buf) == 0 {
		return
	}
	m.sum += stat.Mean(m.buf, nil)
	m.samples++
}

func (m *FieldMean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *FieldMean) Reset() {
	m.sum = 0
	m.samples = 0
}

// FieldSpread reports the standard deviation of the finite samples in the
// most recent frame.
type FieldSpread struct {
	name  string
	value float64
	buf   []float64
}

func NewFieldSpread() *FieldSpread {
	return &FieldSpread{name: "field_stddev"}
}

func (m *FieldSpread) Name() string { return m.name }

func (m *FieldSpread) Observe(f sim.Frame) {
	m.buf = finite(m.buf[:0], f.Values)
	if len(m.buf) < 2 {
		m.value = 0
		return
	}
	m.value = stat.StdDev(m.buf, nil)
}

func (m *FieldSpread) Value() float64 { return m.value }
func (m *FieldSpread) Reset()         { m.value = 0 }

// FieldPeak tracks the largest finite sample seen across frames.
type FieldPeak struct {
	name string
	peak float64
	seen bool
	buf  []float64
}

func NewFieldPeak() *FieldPeak {
	return &FieldPeak{name: "field_peak"}
}

func (m *FieldPeak) Name() string { return m.name }

func (m *FieldPeak) Observe(f sim.Frame) {
	m.buf = finite(m.buf[:0], f.Values)
	if len(m.buf) == 0 {
		return
	}
	v := floats.Max(m.buf)
	if !m.seen || v > m.peak {
		m.peak = v
		m.seen = true
	}
}

func (m *FieldPeak) Value() float64 { return m.peak }

func (m *FieldPeak) Reset() {
	m.peak = 0
	m.seen = false
}

// finite appends the samples that are neither NaN nor infinite; a particle
// centre landing on a lattice node yields +Inf when no distance floor is set.
func finite(dst, values []float64) []float64 {
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			dst = append(dst, v)
		}
	}
	return dst
}
