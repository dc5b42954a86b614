package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/isocontour/internal/field"
	"github.com/san-kum/isocontour/internal/geom"
)

const (
	DefaultWidth       = 768.0
	DefaultHeight      = 768.0
	DefaultResolution  = 150
	DefaultIsolevel    = 0.5
	DefaultDt          = 0.025
	DefaultSteps       = 400
	DefaultSeed        = 42
	DefaultMinDistance = 1e-6
	DefaultNoiseRes    = 8
	DefaultFeatureSize = 96.0
)

// Source names accepted in the source field.
const (
	SourceParticles = "particles"
	SourceAnalytic  = "analytic"
	SourceNoise     = "noise"
	SourceSimplex   = "simplex"
)

type Config struct {
	Source      string           `yaml:"source"`
	Width       float64          `yaml:"width"`
	Height      float64          `yaml:"height"`
	Resolution  int              `yaml:"resolution"`
	Isolevel    float64          `yaml:"isolevel"`
	Interpolate bool             `yaml:"interpolate"`
	Dt          float64          `yaml:"dt"`
	Steps       int              `yaml:"steps"`
	Seed        int64            `yaml:"seed"`
	MinDistance float64          `yaml:"min_distance"`
	Workers     int              `yaml:"workers"`
	Particles   []ParticleConfig `yaml:"particles,omitempty"`
	Noise       NoiseConfig      `yaml:"noise"`
	Simplex     SimplexConfig    `yaml:"simplex"`
}

type ParticleConfig struct {
	Radius float64 `yaml:"radius"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
}

type NoiseConfig struct {
	Resolution int    `yaml:"resolution"`
	Mode       string `yaml:"mode"`
}

type SimplexConfig struct {
	FeatureSize float64 `yaml:"feature_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Source:      SourceParticles,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Resolution:  DefaultResolution,
		Isolevel:    DefaultIsolevel,
		Interpolate: true,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		Seed:        DefaultSeed,
		MinDistance: DefaultMinDistance,
		Particles:   DemoParticles(DefaultWidth, DefaultHeight),
		Noise: NoiseConfig{
			Resolution: DefaultNoiseRes,
			Mode:       field.Sphere.String(),
		},
		Simplex: SimplexConfig{FeatureSize: DefaultFeatureSize},
	}
}

// DemoParticles returns the five-disc arrangement used by the default
// configuration, scaled to a w × h domain.
func DemoParticles(w, h float64) []ParticleConfig {
	return []ParticleConfig{
		{Radius: 10, X: w / 2, Y: h / 2, VX: 0, VY: h / 20},
		{Radius: 20, X: w / 4, Y: 3 * h / 4, VX: w / 15, VY: h / 10},
		{Radius: 25, X: 7 * w / 8, Y: h / 8, VX: -w / 50, VY: h / 10},
		{Radius: 7, X: w / 8, Y: h / 4, VX: -w / 20, VY: h / 10},
		{Radius: 15, X: 3 * w / 4, Y: h / 2, VX: w / 30, VY: -h / 10},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields every source depends on, plus the ones
// specific to the selected source.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: domain %gx%g must be positive", field.ErrInvalidConfig, c.Width, c.Height)
	case c.Resolution < 2:
		return fmt.Errorf("%w: resolution %d must be at least 2", field.ErrInvalidConfig, c.Resolution)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", field.ErrInvalidConfig, c.Dt)
	case c.Steps < 0:
		return fmt.Errorf("%w: steps must not be negative, got %d", field.ErrInvalidConfig, c.Steps)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min_distance must not be negative", field.ErrInvalidConfig)
	}

	switch c.Source {
	case SourceParticles:
		for i, p := range c.Particles {
			if p.Radius <= 0 {
				return fmt.Errorf("%w: particle %d radius must be positive", field.ErrInvalidConfig, i)
			}
		}
	case SourceAnalytic:
	case SourceNoise:
		if c.Noise.Resolution < 2 {
			return fmt.Errorf("%w: noise resolution %d must be at least 2", field.ErrInvalidConfig, c.Noise.Resolution)
		}
		if _, err := field.ParseGradientMode(c.Noise.Mode); err != nil {
			return err
		}
	case SourceSimplex:
		if c.Simplex.FeatureSize <= 0 {
			return fmt.Errorf("%w: simplex feature_size must be positive", field.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %q", field.ErrUnknownSource, c.Source)
	}
	return nil
}

// Clone returns a deep copy so presets can be overridden safely.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Particles = append([]ParticleConfig(nil), c.Particles...)
	return &cp
}

// BuildParticles converts the configured discs into field particles.
func (c *Config) BuildParticles() []field.Particle {
	ps := make([]field.Particle, len(c.Particles))
	for i, p := range c.Particles {
		ps[i] = field.NewParticle(p.Radius, geom.Pos(p.X, p.Y), geom.Pos(p.VX, p.VY))
	}
	return ps
}
