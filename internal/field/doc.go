// Package field provides scalar field generators that can be sampled onto a
// lattice of 2D points.
//
// Every generator satisfies [Source]:
//
//   - [Analytic]: closed-form function of position
//   - [AnalyticTimed]: closed-form function of position and time
//   - [ParticleField]: inverse-distance influence of moving particles ("metaballs")
//   - [NoiseField]: gradient noise over a coarse lattice with a rolling z axis
//   - [SimplexField]: OpenSimplex noise with time as the third axis
//
// # Example
//
//	pf := field.NewParticleField(particles)
//	g, _ := grid.New(768, 768, 150, pf)
//	for {
//		pf.Evolve(768, 768, dt)
//		g.Refresh(pf, t)
//	}
//
// # Thread Safety
//
// Generators are owned by a single driver. [ParticleField] fans the
// summation out over workers internally but joins before returning.
package field
