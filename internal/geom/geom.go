// Package geom holds the 2D value types shared by the sampling lattice and the
// contour extractor.
package geom

import "gonum.org/v1/gonum/spatial/r2"

// Position is a coordinate in domain units. It is used both for lattice
// points and for contour vertices.
type Position = r2.Vec

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y float64) Position {
	return Position{X: x, Y: y}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Position) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Segment is one piece of a contour. Segments carry no orientation.
type Segment struct {
	A, B Position
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return Dist(s.A, s.B)
}

// Pairs groups a flat list of endpoints into segments. A trailing unpaired
// point is ignored.
func Pairs(pts []Position) []Segment {
	segs := make([]Segment, 0, len(pts)/2)
	for i := 0; i+1 < len(pts); i += 2 {
		segs = append(segs, Segment{A: pts[i], B: pts[i+1]})
	}
	return segs
}

// Flatten returns the coordinates of pts as [x0, y0, x1, y1, ...].
func Flatten(pts []Position) []float64 {
	out := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of pts. ok is false when pts
// is empty.
func Bounds(pts []Position) (min, max Position, ok bool) {
	if len(pts) == 0 {
		return Position{}, Position{}, false
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, true
}
