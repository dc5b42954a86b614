package field

import (
	"math"

	"github.com/san-kum/isocontour/internal/geom"
)

// Source evaluates a scalar field at every point of pts, writing the results
// into dst. dst and pts have the same length. t is a time-like parameter that
// sources without a time axis ignore.
type Source interface {
	Sample(dst []float64, pts []geom.Position, t float64)
}

// Analytic is a closed-form field of position only.
type Analytic func(p geom.Position) float64

func (f Analytic) Sample(dst []float64, pts []geom.Position, _ float64) {
	for i, p := range pts {
		dst[i] = f(p)
	}
}

// AnalyticTimed is a closed-form field of position and time.
type AnalyticTimed func(p geom.Position, t float64) float64

func (f AnalyticTimed) Sample(dst []float64, pts []geom.Position, t float64) {
	for i, p := range pts {
		dst[i] = f(p, t)
	}
}

// Waves returns the drifting interference pattern
// |cos(16/w·(x+200+10t)) + sin(16/h·(y-75))| / 2 over a w×h domain.
func Waves(w, h float64) AnalyticTimed {
	const period = 16.0
	return func(p geom.Position, t float64) float64 {
		return math.Abs(math.Cos(period/w*(p.X+200+10*t))+math.Sin(period/h*(p.Y-75))) / 2
	}
}

// Constant returns a field that is v everywhere.
func Constant(v float64) Analytic {
	return func(geom.Position) float64 { return v }
}
