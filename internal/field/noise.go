package field

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/isocontour/internal/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// GradientMode selects how lattice gradients are drawn.
type GradientMode int

const (
	// Sphere draws uniformly distributed unit vectors.
	Sphere GradientMode = iota
	// Palette draws from the 12 cube-edge directions.
	Palette
)

func (m GradientMode) String() string {
	switch m {
	case Palette:
		return "palette"
	default:
		return "sphere"
	}
}

// ParseGradientMode maps "sphere" and "palette" to their modes.
func ParseGradientMode(s string) (GradientMode, error) {
	switch s {
	case "", "sphere":
		return Sphere, nil
	case "palette":
		return Palette, nil
	}
	return Sphere, fmt.Errorf("%w: gradient mode %q", ErrInvalidConfig, s)
}

var palette = [12]r3.Vec{
	{X: 1, Y: 1, Z: 0}, {X: -1, Y: 1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: -1, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: 1}, {X: -1, Y: 0, Z: 1}, {X: 1, Y: 0, Z: -1}, {X: -1, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: 1}, {X: 0, Y: -1, Z: 1}, {X: 0, Y: 1, Z: -1}, {X: 0, Y: -1, Z: -1},
}

// GradientNoise is coherent noise over a coarse lattice spanning the domain.
// It keeps two z-layers of gradients; z in [0,1) blends from the lower layer
// to the upper one, and AdvanceLayer rolls the pair forward.
type GradientNoise struct {
	res    int
	dx, dy float64
	mode   GradientMode
	rng    *rand.Rand
	grads  []r3.Vec
}

// NewGradientNoise builds a res×res lattice over a width×height domain. The
// lattice uses the same aspect-ratio correction as the sampling grid.
func NewGradientNoise(width, height float64, res int, mode GradientMode, rng *rand.Rand) (*GradientNoise, error) {
	if res < 2 {
		return nil, fmt.Errorf("%w: noise resolution %d < 2", ErrInvalidConfig, res)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: noise domain %gx%g", ErrInvalidConfig, width, height)
	}
	ry := int(float64(res) / (width / height))
	if ry < 2 {
		return nil, fmt.Errorf("%w: noise aspect ratio leaves %d rows", ErrInvalidConfig, ry)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	n := &GradientNoise{
		res:   res,
		dx:    width / float64(res-1),
		dy:    height / float64(ry-1),
		mode:  mode,
		rng:   rng,
		grads: make([]r3.Vec, 2*res*res),
	}
	for i := range n.grads {
		n.grads[i] = n.draw()
	}
	return n, nil
}

func (n *GradientNoise) Resolution() int    { return n.res }
func (n *GradientNoise) Mode() GradientMode { return n.mode }

// Gradient returns the gradient at lattice node (xi, yi) on layer 0 or 1.
func (n *GradientNoise) Gradient(xi, yi, layer int) r3.Vec {
	return n.grads[layer*n.res*n.res+yi*n.res+xi]
}

func (n *GradientNoise) draw() r3.Vec {
	if n.mode == Palette {
		return palette[n.rng.Intn(len(palette))]
	}
	return RandomUnit(n.rng)
}

// RandomUnit samples a unit vector uniformly on the sphere using a uniform
// height and a uniform azimuth.
func RandomUnit(rng *rand.Rand) r3.Vec {
	z := rng.Float64()*2 - 1
	theta := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return r3.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z}
}

// AdvanceLayer drops the lower layer, promotes the upper one and fills the
// upper layer with fresh gradients. Callers invoke it when their time value
// reaches 1 and then reset time to 0.
func (n *GradientNoise) AdvanceLayer() {
	size := n.res * n.res
	copy(n.grads[:size], n.grads[size:])
	for i := size; i < 2*size; i++ {
		n.grads[i] = n.draw()
	}
}

// Noise returns the noise value at xy and depth z, rescaled to [0,1].
func (n *GradientNoise) Noise(xy geom.Position, z float64) float64 {
	xi, xf := n.cell(xy.X/n.dx)
	yi, yf := n.cell(xy.Y/n.dy)
	zf := z - math.Floor(z)

	size := n.res * n.res
	i00 := xi + n.res*yi
	i10 := i00 + 1
	i01 := i00 + n.res
	i11 := i01 + 1

	u, v, w := Fade(xf), Fade(yf), Fade(zf)

	lower := Lerp(
		Lerp(
			r3.Dot(r3.Vec{X: xf, Y: yf, Z: zf}, n.grads[i00]),
			r3.Dot(r3.Vec{X: xf - 1, Y: yf, Z: zf}, n.grads[i10]),
			u),
		Lerp(
			r3.Dot(r3.Vec{X: xf, Y: yf - 1, Z: zf}, n.grads[i01]),
			r3.Dot(r3.Vec{X: xf - 1, Y: yf - 1, Z: zf}, n.grads[i11]),
			u),
		v)
	upper := Lerp(
		Lerp(
			r3.Dot(r3.Vec{X: xf, Y: yf, Z: zf - 1}, n.grads[size+i00]),
			r3.Dot(r3.Vec{X: xf - 1, Y: yf, Z: zf - 1}, n.grads[size+i10]),
			u),
		Lerp(
			r3.Dot(r3.Vec{X: xf, Y: yf - 1, Z: zf - 1}, n.grads[size+i01]),
			r3.Dot(r3.Vec{X: xf - 1, Y: yf - 1, Z: zf - 1}, n.grads[size+i11]),
			u),
		v)

	return (Lerp(lower, upper, w) + 1) / 2
}

// cell splits a lattice coordinate into a node index and the fraction within
// that cell, clamping so the index always has a right/top neighbour.
func (n *GradientNoise) cell(c float64) (int, float64) {
	i := int(math.Floor(c))
	if i < 0 {
		i = 0
	}
	if i > n.res-2 {
		i = n.res - 2
	}
	f := c - float64(i)
	return i, math.Max(0, math.Min(1, f))
}

// Fade is the quintic smoothing curve 6t⁵ − 15t⁴ + 10t³.
func Fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// NoiseField samples a GradientNoise at depth t.
type NoiseField struct {
	Noise *GradientNoise
}

func (f NoiseField) Sample(dst []float64, pts []geom.Position, t float64) {
	for i, p := range pts {
		dst[i] = f.Noise.Noise(p, t)
	}
}
