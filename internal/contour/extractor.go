package contour

import (
	"github.com/san-kum/isocontour/internal/geom"
	"github.com/san-kum/isocontour/internal/grid"
)

// Extractor marches a grid and keeps the most recent contour.
type Extractor struct {
	grid     *grid.Grid
	isolevel float64
	interp   bool
	points   []geom.Position
}

// New binds an extractor to g and runs an initial pass.
func New(isolevel float64, interp bool, g *grid.Grid) *Extractor {
	e := &Extractor{grid: g, isolevel: isolevel, interp: interp}
	e.March()
	return e
}

func (e *Extractor) Isolevel() float64        { return e.isolevel }
func (e *Extractor) SetIsolevel(iso float64)  { e.isolevel = iso }
func (e *Extractor) Interpolated() bool       { return e.interp }
func (e *Extractor) SetInterpolated(on bool)  { e.interp = on }
func (e *Extractor) Grid() *grid.Grid         { return e.grid }
func (e *Extractor) Points() []geom.Position  { return e.points }
func (e *Extractor) Segments() []geom.Segment { return geom.Pairs(e.points) }
func (e *Extractor) Coords() []float64        { return geom.Flatten(e.points) }
func (e *Extractor) SegmentCount() int        { return len(e.points) / 2 }
func (e *Extractor) Clear()                   { e.points = nil }

// March discards the previous contour and rebuilds it from the grid's
// current samples.
func (e *Extractor) March() {
	e.points = Extract(e.grid, e.isolevel, e.interp)
}

// Length returns the summed length of all segments.
func (e *Extractor) Length() float64 {
	total := 0.0
	for _, s := range e.Segments() {
		total += s.Length()
	}
	return total
}

// Extract runs one marching pass over g and returns the segment endpoints.
// Cells are visited row by row; within a row the corner state of one cell
// seeds the next so each sample is classified once per row pair.
func Extract(g *grid.Grid, isolevel float64, interp bool) []geom.Position {
	m := marcher{
		pts:      g.Positions(),
		vals:     g.Values(),
		isolevel: isolevel,
		interp:   interp,
	}
	res := g.Resolution()
	out := make([]geom.Position, 0, 4*res)

	for yi := 0; yi < res-1; yi++ {
		row := yi * res
		s := State{V0: m.active(row), V3: m.active(row + res)}

		for xi := 0; xi < res-1; xi++ {
			nw := row + xi
			sw := nw + res
			s.V1 = m.active(nw + 1)
			s.V2 = m.active(sw + 1)

			if s.HasEdge() {
				out = m.emit(out, s, Cell{NW: nw, NE: nw + 1, SE: sw + 1, SW: sw})
			}
			s = s.next()
		}
	}
	return out
}

type marcher struct {
	pts      []geom.Position
	vals     []float64
	isolevel float64
	interp   bool
}

func (m *marcher) active(i int) bool {
	return m.vals[i] >= m.isolevel
}

func (m *marcher) emit(out []geom.Position, s State, c Cell) []geom.Position {
	for _, edge := range caseEdges[s.Case()] {
		out = append(out, m.vertex(edge, s, c))
	}
	return out
}

// vertex places the crossing on one edge. Top and bottom edges vary x at the
// active corner's y; left and right edges vary y at the active corner's x.
func (m *marcher) vertex(edge Edge, s State, c Cell) geom.Position {
	switch edge {
	case Top:
		a, i := pick(s.V0, c.NW, c.NE)
		return geom.Pos(m.along(a, i, m.pts[a].X, m.pts[i].X), m.pts[a].Y)
	case Bottom:
		a, i := pick(s.V2, c.SE, c.SW)
		return geom.Pos(m.along(a, i, m.pts[a].X, m.pts[i].X), m.pts[a].Y)
	case Right:
		a, i := pick(s.V1, c.NE, c.SE)
		return geom.Pos(m.pts[a].X, m.along(a, i, m.pts[a].Y, m.pts[i].Y))
	default:
		a, i := pick(s.V0, c.NW, c.SW)
		return geom.Pos(m.pts[a].X, m.along(a, i, m.pts[a].Y, m.pts[i].Y))
	}
}

// along returns the crossing coordinate between the active corner a and the
// inactive corner i, given their coordinates on the varying axis.
func (m *marcher) along(a, i int, ca, ci float64) float64 {
	if !m.interp {
		return (ca + ci) / 2
	}
	return Lerp(ca, ci, Weight(m.isolevel, m.vals[a], m.vals[i]))
}

// pick orders two corner indices as (active, inactive) given whether the
// first one is active.
func pick(firstActive bool, first, second int) (int, int) {
	if firstActive {
		return first, second
	}
	return second, first
}
