package field

import (
	"math"

	"github.com/san-kum/isocontour/internal/geom"
)

// Particle is a disc moving inside a [0, width] × [0, height] domain.
type Particle struct {
	Radius   float64
	Position geom.Position
	Velocity geom.Position
}

func NewParticle(radius float64, pos, vel geom.Position) Particle {
	return Particle{Radius: radius, Position: pos, Velocity: vel}
}

// UpdatePosition advances the particle by one explicit Euler step.
func (p *Particle) UpdatePosition(dt float64) {
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
}

// ApplyBoundary reflects the velocity on any axis where the disc pokes out
// of the domain while still heading outward.
func (p *Particle) ApplyBoundary(width, height float64) {
	x, y, r := p.Position.X, p.Position.Y, p.Radius

	if (x-r < 0 && p.Velocity.X < 0) || (x+r > width && p.Velocity.X > 0) {
		p.Velocity.X = -p.Velocity.X
	}
	if (y-r < 0 && p.Velocity.Y < 0) || (y+r > height && p.Velocity.Y > 0) {
		p.Velocity.Y = -p.Velocity.Y
	}
}

// Evolve applies the boundary condition and then moves the particle, so a
// particle that would leave the domain this step turns around before moving.
func (p *Particle) Evolve(width, height, dt float64) {
	p.ApplyBoundary(width, height)
	p.UpdatePosition(dt)
}

// ParticleField sums radius/distance over all particles at each sample
// point. With MinDistance == 0 a sample landing exactly on a particle centre
// yields +Inf.
type ParticleField struct {
	Particles   []Particle
	MinDistance float64
	Workers     int
}

func NewParticleField(particles []Particle) *ParticleField {
	return &ParticleField{Particles: particles}
}

// Evolve steps every particle once.
func (f *ParticleField) Evolve(width, height, dt float64) {
	for i := range f.Particles {
		f.Particles[i].Evolve(width, height, dt)
	}
}

// minChunk keeps small lattices on the calling goroutine.
const minChunk = 1024

func (f *ParticleField) Sample(dst []float64, pts []geom.Position, _ float64) {
	ParallelFor(len(pts), minChunk, f.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f.Influence(pts[i])
		}
	})
}

// Influence returns the field value at a single point.
func (f *ParticleField) Influence(at geom.Position) float64 {
	sum := 0.0
	for _, p := range f.Particles {
		d := geom.Dist(at, p.Position)
		if d < f.MinDistance {
			d = f.MinDistance
		}
		sum += p.Radius / d
	}
	return sum
}

// Energy returns the total kinetic energy of the particle set, taking each
// particle's mass as its disc area.
func (f *ParticleField) Energy() float64 {
	e := 0.0
	for _, p := range f.Particles {
		m := math.Pi * p.Radius * p.Radius
		e += 0.5 * m * (p.Velocity.X*p.Velocity.X + p.Velocity.Y*p.Velocity.Y)
	}
	return e
}
