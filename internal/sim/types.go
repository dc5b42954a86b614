package sim

import (
	"log/slog"

	"github.com/san-kum/isocontour/internal/geom"
)

// Frame is the outcome of one tick. Points belongs to the frame; Values is
// the grid's sample buffer and is only valid until the next Step.
type Frame struct {
	Step     int
	Time     float64
	Points   []geom.Position
	Segments int
	Length   float64
	Values   []float64
	Energy   float64
}

// Stats is the per-frame summary kept in a Result.
type Stats struct {
	Step     int
	Time     float64
	Segments int
	Length   float64
	Energy   float64
}

func (f Frame) Stats() Stats {
	return Stats{Step: f.Step, Time: f.Time, Segments: f.Segments, Length: f.Length, Energy: f.Energy}
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Result struct {
	Frames     []Stats
	Contour    []geom.Position
	Metrics    map[string]float64
	StepsTaken int
}

// Times returns the frame timestamps.
func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Time
	}
	return out
}

// Series returns one per-frame quantity by name: "segments", "length" or
// "energy". Unknown names yield nil.
func (r *Result) Series(name string) []float64 {
	var pick func(Stats) float64
	switch name {
	case "segments":
		pick = func(s Stats) float64 { return float64(s.Segments) }
	case "length":
		pick = func(s Stats) float64 { return s.Length }
	case "energy":
		pick = func(s Stats) float64 { return s.Energy }
	default:
		return nil
	}
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = pick(f)
	}
	return out
}

type Option func(*Simulation)

// WithLogger routes the simulation's logs to l instead of slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetric(m Metric) Option {
	return func(s *Simulation) { s.AddMetric(m) }
}

func WithObserver(o Observer) Option {
	return func(s *Simulation) { s.AddObserver(o) }
}
