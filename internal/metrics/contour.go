package metrics

import (
	"math"

	"github.com/san-kum/isocontour/internal/sim"
)

// Segments reports the mean number of contour segments per frame.
type Segments struct {
	name    string
	total   int
	samples int
}

func NewSegments() *Segments {
	return &Segments{name: "segments"}
}

func (s *Segments) Name() string { return s.name }

func (s *Segments) Observe(f sim.Frame) {
	s.total += f.Segments
	s.samples++
}

func (s *Segments) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.total) / float64(s.samples)
}

func (s *Segments) Reset() {
	s.total = 0
	s.samples = 0
}

// PeakLength tracks the longest contour seen.
type PeakLength struct {
	name string
	peak float64
}

func NewPeakLength() *PeakLength {
	return &PeakLength{name: "peak_length"}
}

func (p *PeakLength) Name() string { return p.name }

func (p *PeakLength) Observe(f sim.Frame) {
	p.peak = math.Max(p.peak, f.Length)
}

func (p *PeakLength) Value() float64 { return p.peak }
func (p *PeakLength) Reset()         { p.peak = 0 }
