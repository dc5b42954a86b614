// Package grid samples a scalar field onto a fixed square lattice of points
// over a rectangular domain.
package grid

import (
	"errors"
	"fmt"

	"github.com/san-kum/isocontour/internal/field"
	"github.com/san-kum/isocontour/internal/geom"
)

var (
	// ErrResolution indicates a lattice too coarse to form a single cell.
	ErrResolution = fmt.Errorf("%w: resolution must be at least 2", field.ErrInvalidConfig)

	// ErrDomain indicates a non-positive domain width or height.
	ErrDomain = fmt.Errorf("%w: domain must have positive width and height", field.ErrInvalidConfig)

	// ErrIndex indicates a lattice index outside the grid.
	ErrIndex = errors.New("grid: index out of range")
)

// Grid holds resolution² lattice positions in row-major order and one sample
// per position. Positions never change after construction; samples are
// rewritten in place by Refresh.
type Grid struct {
	width, height float64
	resolution    int
	dx, dy        float64
	positions     []geom.Position
	values        []float64
}

// New lays out the lattice and samples src at t = 0.
//
// The horizontal step is width/(resolution-1). The vertical step divides
// height by resolution/(width/height) - 1 rows, so the lattice keeps
// square-ish cells on non-square domains.
func New(width, height float64, resolution int, src field.Source) (*Grid, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrResolution, resolution)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (got %gx%g)", ErrDomain, width, height)
	}
	ry := int(float64(resolution) / (width / height))
	if ry < 2 {
		return nil, fmt.Errorf("%w (aspect ratio %g leaves %d rows)", ErrResolution, width/height, ry)
	}

	g := &Grid{
		width:      width,
		height:     height,
		resolution: resolution,
		dx:         width / float64(resolution-1),
		dy:         height / float64(ry-1),
		positions:  make([]geom.Position, 0, resolution*resolution),
		values:     make([]float64, resolution*resolution),
	}
	for yi := 0; yi < resolution; yi++ {
		for xi := 0; xi < resolution; xi++ {
			g.positions = append(g.positions, geom.Pos(float64(xi)*g.dx, float64(yi)*g.dy))
		}
	}

	if src != nil {
		g.Refresh(src, 0)
	}
	return g, nil
}

// NewAnalytic samples a position-only function.
func NewAnalytic(width, height float64, resolution int, fn func(geom.Position) float64) (*Grid, error) {
	return New(width, height, resolution, field.Analytic(fn))
}

// NewTimed samples a time-dependent function at t = 0.
func NewTimed(width, height float64, resolution int, fn func(geom.Position, float64) float64) (*Grid, error) {
	return New(width, height, resolution, field.AnalyticTimed(fn))
}

// NewParticles samples the influence of the initial particle set.
func NewParticles(width, height float64, resolution int, pf *field.ParticleField) (*Grid, error) {
	return New(width, height, resolution, pf)
}

// Refresh re-evaluates every sample from src at time t.
func (g *Grid) Refresh(src field.Source, t float64) {
	src.Sample(g.values, g.positions, t)
}

func (g *Grid) Resolution() int              { return g.resolution }
func (g *Grid) Size() int                    { return g.resolution * g.resolution }
func (g *Grid) Width() float64               { return g.width }
func (g *Grid) Height() float64              { return g.height }
func (g *Grid) Spacing() (dx, dy float64)    { return g.dx, g.dy }
func (g *Grid) Positions() []geom.Position   { return g.positions }
func (g *Grid) Values() []float64            { return g.values }
func (g *Grid) Position(i int) geom.Position { return g.positions[i] }
func (g *Grid) Value(i int) float64          { return g.values[i] }

// Index returns the flat index of lattice node (xi, yi).
func (g *Grid) Index(xi, yi int) int {
	return yi*g.resolution + xi
}

// SetValue overwrites a single sample.
func (g *Grid) SetValue(idx int, v float64) error {
	if idx < 0 || idx >= len(g.values) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndex, idx, len(g.values))
	}
	g.values[idx] = v
	return nil
}

// Fill sets every sample to v.
func (g *Grid) Fill(v float64) {
	for i := range g.values {
		g.values[i] = v
	}
}
