package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/isocontour/internal/config"
	"github.com/san-kum/isocontour/internal/contour"
	"github.com/san-kum/isocontour/internal/field"
	"github.com/san-kum/isocontour/internal/grid"
)

// Simulation owns one field source, the grid sampling it and the extractor
// marching that grid, and advances them in a fixed order.
type Simulation struct {
	cfg       *config.Config
	source    field.Source
	particles *field.ParticleField
	noise     *field.GradientNoise
	grid      *grid.Grid
	extractor *contour.Extractor

	step   int
	t      float64
	noiseZ float64

	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.buildSource(); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.Width, cfg.Height, cfg.Resolution, s.source)
	if err != nil {
		return nil, err
	}
	s.grid = g
	s.extractor = contour.New(cfg.Isolevel, cfg.Interpolate, g)
	return s, nil
}

func (s *Simulation) buildSource() error {
	cfg := s.cfg
	switch cfg.Source {
	case config.SourceParticles:
		pf := field.NewParticleField(cfg.BuildParticles())
		pf.MinDistance = cfg.MinDistance
		pf.Workers = cfg.Workers
		s.particles = pf
		s.source = pf
	case config.SourceAnalytic:
		s.source = field.Waves(cfg.Width, cfg.Height)
	case config.SourceNoise:
		mode, err := field.ParseGradientMode(cfg.Noise.Mode)
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(cfg.Seed))
		n, err := field.NewGradientNoise(cfg.Width, cfg.Height, cfg.Noise.Resolution, mode, rng)
		if err != nil {
			return err
		}
		s.noise = n
		s.source = field.NoiseField{Noise: n}
	case config.SourceSimplex:
		sf, err := field.NewSimplexField(cfg.Seed, cfg.Simplex.FeatureSize)
		if err != nil {
			return err
		}
		s.source = sf
	default:
		return fmt.Errorf("%w: %q", field.ErrUnknownSource, cfg.Source)
	}
	return nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Config() *config.Config          { return s.cfg }
func (s *Simulation) Grid() *grid.Grid                { return s.grid }
func (s *Simulation) Extractor() *contour.Extractor   { return s.extractor }
func (s *Simulation) Particles() *field.ParticleField { return s.particles }
func (s *Simulation) Time() float64                   { return s.t }
func (s *Simulation) StepCount() int                  { return s.step }

// SetIsolevel changes the threshold and re-marches the current samples.
func (s *Simulation) SetIsolevel(iso float64) {
	s.extractor.SetIsolevel(iso)
	s.extractor.March()
}

// SetInterpolated toggles edge interpolation and re-marches.
func (s *Simulation) SetInterpolated(on bool) {
	s.extractor.SetInterpolated(on)
	s.extractor.March()
}

// Step advances one tick: move the particles, advance time (rolling the
// noise layers when their clock reaches 1), resample the grid, march, and
// hand the frame to metrics and observers.
func (s *Simulation) Step() Frame {
	if s.particles != nil {
		s.particles.Evolve(s.cfg.Width, s.cfg.Height, s.cfg.Dt)
	}

	s.step++
	s.t += s.cfg.Dt
	if s.noise != nil {
		s.noiseZ += s.cfg.Dt
		if s.noiseZ >= 1 {
			s.noise.AdvanceLayer()
			s.noiseZ = 0
			s.logger.Debug("noise layer advanced", "step", s.step, "time", s.t)
		}
	}

	s.grid.Refresh(s.source, s.sampleTime())
	s.extractor.March()

	f := s.Frame()
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	return f
}

// sampleTime is the time coordinate handed to the source: the wrapped layer
// clock for gradient noise, elapsed time otherwise.
func (s *Simulation) sampleTime() float64 {
	if s.noise != nil {
		return s.noiseZ
	}
	return s.t
}

// Frame describes the current state without advancing it.
func (s *Simulation) Frame() Frame {
	f := Frame{
		Step:     s.step,
		Time:     s.t,
		Points:   s.extractor.Points(),
		Segments: s.extractor.SegmentCount(),
		Length:   s.extractor.Length(),
		Values:   s.grid.Values(),
	}
	if s.particles != nil {
		f.Energy = s.particles.Energy()
	}
	return f
}

// Run steps the simulation up to steps times. The returned Result always
// holds the frames completed so far; cancellation yields a *FrameError
// wrapping ErrStopped and the context's error.
func (s *Simulation) Run(ctx context.Context, steps int) (*Result, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: steps must not be negative, got %d", field.ErrInvalidConfig, steps)
	}

	result := &Result{
		Frames:  make([]Stats, 0, steps+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	start := time.Now()
	result.Frames = append(result.Frames, s.Frame().Stats())

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = &FrameError{Step: s.step, Time: s.t, Wrapped: fmt.Errorf("%w: %w", ErrStopped, ctx.Err())}
		default:
		}
		if runErr != nil {
			break
		}

		f := s.Step()
		result.Frames = append(result.Frames, f.Stats())
		result.StepsTaken++
	}

	result.Contour = s.extractor.Points()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		s.logger.Warn("run stopped", "steps", result.StepsTaken, "time", s.t, "err", runErr)
		return result, runErr
	}
	s.logger.Info("run complete",
		"source", s.cfg.Source,
		"steps", result.StepsTaken,
		"segments", s.extractor.SegmentCount(),
		"elapsed", time.Since(start),
	)
	return result, nil
}
