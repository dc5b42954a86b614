package field

import (
	"math"
	"testing"

	"github.com/san-kum/isocontour/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticle_ReflectsAtLeftWall(t *testing.T) {
	const eps = 1e-3
	p := NewParticle(10, geom.Pos(10-eps, 50), geom.Pos(-5, 0))

	p.Evolve(100, 100, 0.1)

	assert.Greater(t, p.Velocity.X, 0.0, "x velocity should flip positive")
	assert.GreaterOrEqual(t, p.Position.X, 0.0)
	assert.InDelta(t, 10-eps+0.5, p.Position.X, 1e-12)
}

func TestParticle_ReflectsAtTopWall(t *testing.T) {
	p := NewParticle(5, geom.Pos(50, 97), geom.Pos(0, 3))

	p.Evolve(100, 100, 1)

	assert.Equal(t, -3.0, p.Velocity.Y)
	assert.Equal(t, 94.0, p.Position.Y)
}

func TestParticle_NoReflectionInside(t *testing.T) {
	p := NewParticle(5, geom.Pos(50, 50), geom.Pos(2, -3))

	p.Evolve(100, 100, 0.5)

	assert.Equal(t, geom.Pos(2, -3), p.Velocity)
	assert.Equal(t, geom.Pos(51, 48.5), p.Position)
}

func TestParticle_InwardMotionNotFlipped(t *testing.T) {
	p := NewParticle(10, geom.Pos(5, 50), geom.Pos(4, 0))

	p.ApplyBoundary(100, 100)

	assert.Equal(t, 4.0, p.Velocity.X)
}

func TestParticleField_Influence(t *testing.T) {
	pf := NewParticleField([]Particle{
		NewParticle(2, geom.Pos(0, 0), geom.Pos(0, 0)),
		NewParticle(3, geom.Pos(10, 0), geom.Pos(0, 0)),
	})

	got := pf.Influence(geom.Pos(5, 0))
	assert.InDelta(t, 2.0/5+3.0/5, got, 1e-12)
}

func TestParticleField_Singularity(t *testing.T) {
	pf := NewParticleField([]Particle{NewParticle(1, geom.Pos(3, 3), geom.Pos(0, 0))})

	assert.True(t, math.IsInf(pf.Influence(geom.Pos(3, 3)), 1))

	pf.MinDistance = 0.5
	assert.InDelta(t, 2.0, pf.Influence(geom.Pos(3, 3)), 1e-12)
}

func TestParticleField_SampleMatchesSerial(t *testing.T) {
	pf := NewParticleField([]Particle{
		NewParticle(4, geom.Pos(20, 30), geom.Pos(0, 0)),
		NewParticle(7, geom.Pos(70, 10), geom.Pos(0, 0)),
	})
	pf.Workers = 4

	pts := make([]geom.Position, 0, 64*64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			pts = append(pts, geom.Pos(float64(x)+0.5, float64(y)+0.25))
		}
	}
	dst := make([]float64, len(pts))
	pf.Sample(dst, pts, 0)

	for i, p := range pts {
		require.InDelta(t, pf.Influence(p), dst[i], 1e-12, "index %d", i)
	}
}

func TestParticleField_Evolve(t *testing.T) {
	pf := NewParticleField([]Particle{
		NewParticle(1, geom.Pos(5, 5), geom.Pos(1, 2)),
		NewParticle(1, geom.Pos(8, 8), geom.Pos(-1, 0)),
	})

	pf.Evolve(10, 10, 1)

	assert.Equal(t, geom.Pos(6, 7), pf.Particles[0].Position)
	assert.Equal(t, geom.Pos(7, 8), pf.Particles[1].Position)
}

func TestParallelFor_CoversRange(t *testing.T) {
	hits := make([]int, 5000)
	ParallelFor(len(hits), 100, 8, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i]++
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}
