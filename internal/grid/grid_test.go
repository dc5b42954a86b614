package grid

import (
	"testing"

	"github.com/san-kum/isocontour/internal/field"
	"github.com/san-kum/isocontour/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Cardinality(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		resolution    int
	}{
		{"minimal", 1, 1, 2},
		{"square", 768, 768, 150},
		{"wide", 200, 100, 10},
		{"tall", 100, 200, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.width, tt.height, tt.resolution, field.Constant(0))
			require.NoError(t, err)

			n := tt.resolution * tt.resolution
			assert.Len(t, g.Positions(), n)
			assert.Len(t, g.Values(), n)
			assert.Equal(t, n, g.Size())
		})
	}
}

func TestNew_RowMajorOrder(t *testing.T) {
	g, err := New(30, 30, 4, field.Constant(0))
	require.NoError(t, err)

	pts := g.Positions()
	res := g.Resolution()
	for yi := 0; yi < res; yi++ {
		for xi := 0; xi < res; xi++ {
			p := pts[g.Index(xi, yi)]
			if xi > 0 {
				prev := pts[g.Index(xi-1, yi)]
				assert.Greater(t, p.X, prev.X)
				assert.Equal(t, prev.Y, p.Y)
			}
			if yi > 0 {
				below := pts[g.Index(xi, yi-1)]
				assert.Greater(t, p.Y, below.Y)
				assert.Equal(t, below.X, p.X)
			}
		}
	}
	assert.Equal(t, geom.Pos(30, 30), pts[len(pts)-1])
}

func TestNew_AspectRatioSpacing(t *testing.T) {
	g, err := New(200, 100, 11, field.Constant(0))
	require.NoError(t, err)

	dx, dy := g.Spacing()
	assert.InDelta(t, 20.0, dx, 1e-12)
	// 11 / 2 = 5 effective rows -> 100 / 4
	assert.InDelta(t, 25.0, dy, 1e-12)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		resolution    int
		want          error
	}{
		{"resolution zero", 10, 10, 0, ErrResolution},
		{"resolution one", 10, 10, 1, ErrResolution},
		{"zero width", 0, 10, 4, ErrDomain},
		{"negative height", 10, -1, 4, ErrDomain},
		{"degenerate aspect", 1000, 1, 4, ErrResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height, tt.resolution, field.Constant(0))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, field.ErrInvalidConfig)
		})
	}
}

func TestRefresh_InPlace(t *testing.T) {
	g, err := NewTimed(10, 10, 3, func(p geom.Position, t float64) float64 { return p.X + t })
	require.NoError(t, err)

	before := g.Values()
	assert.Equal(t, 0.0, before[0])

	g.Refresh(field.AnalyticTimed(func(p geom.Position, t float64) float64 { return p.X + t }), 2)

	after := g.Values()
	assert.Equal(t, 2.0, after[0])
	assert.Equal(t, 12.0, after[2])
	assert.Same(t, &before[0], &after[0], "samples must be rewritten in place")
}

func TestNewAnalytic(t *testing.T) {
	g, err := NewAnalytic(4, 4, 3, func(p geom.Position) float64 { return p.Y })
	require.NoError(t, err)

	assert.Equal(t, 4.0, g.Value(g.Index(1, 2)))
}

func TestNewParticles(t *testing.T) {
	pf := field.NewParticleField([]field.Particle{
		field.NewParticle(2, geom.Pos(5, 5), geom.Pos(0, 0)),
	})
	g, err := NewParticles(10, 10, 3, pf)
	require.NoError(t, err)

	// corner (0,0) is 5√2 away
	assert.InDelta(t, 2/(5*1.4142135623730951), g.Value(0), 1e-12)
}

func TestSetValue(t *testing.T) {
	g, err := New(1, 1, 2, nil)
	require.NoError(t, err)

	require.NoError(t, g.SetValue(3, 0.7))
	assert.Equal(t, 0.7, g.Value(3))

	assert.ErrorIs(t, g.SetValue(4, 1), ErrIndex)
	assert.ErrorIs(t, g.SetValue(-1, 1), ErrIndex)
}

func TestFill(t *testing.T) {
	g, err := New(1, 1, 3, nil)
	require.NoError(t, err)

	g.Fill(0.25)
	for i, v := range g.Values() {
		assert.Equal(t, 0.25, v, "index %d", i)
	}
}
