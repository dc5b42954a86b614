package sim

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/san-kum/isocontour/internal/config"
	"github.com/san-kum/isocontour/internal/field"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smallConfig(source string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Source = source
	cfg.Resolution = 30
	cfg.Steps = 10
	return cfg
}

type countMetric struct {
	frames int
	resets int
}

func (c *countMetric) Name() string   { return "count" }
func (c *countMetric) Observe(Frame)  { c.frames++ }
func (c *countMetric) Value() float64 { return float64(c.frames) }

func (c *countMetric) Reset() {
	c.frames = 0
	c.resets++
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := smallConfig(config.SourceParticles)
	cfg.Resolution = 1
	if _, err := New(cfg); !errors.Is(err, field.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg = smallConfig("lava")
	if _, err := New(cfg); !errors.Is(err, field.ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestNew_AllSources(t *testing.T) {
	for _, source := range []string{config.SourceParticles, config.SourceAnalytic, config.SourceNoise, config.SourceSimplex} {
		t.Run(source, func(t *testing.T) {
			s, err := New(smallConfig(source), WithLogger(quietLogger()))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if s.Grid().Size() != 30*30 {
				t.Errorf("expected 900 samples, got %d", s.Grid().Size())
			}
			f := s.Step()
			if f.Step != 1 {
				t.Errorf("expected step 1, got %d", f.Step)
			}
			if len(f.Points)%2 != 0 {
				t.Errorf("contour has odd point count %d", len(f.Points))
			}
		})
	}
}

func TestStep_EvolvesParticlesBeforeSampling(t *testing.T) {
	cfg := smallConfig(config.SourceParticles)
	cfg.MinDistance = 0
	s, err := New(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}

	before := s.Particles().Particles[0].Position
	s.Step()
	after := s.Particles().Particles[0].Position
	if after == before {
		t.Fatal("particle did not move")
	}

	// samples must reflect the moved particles
	want := s.Particles().Influence(s.Grid().Position(0))
	if got := s.Grid().Value(0); math.Abs(got-want) > 1e-12 {
		t.Errorf("grid sampled stale particles: got %v want %v", got, want)
	}
}

func TestStep_AdvancesTime(t *testing.T) {
	s, err := New(smallConfig(config.SourceAnalytic), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		s.Step()
	}
	if math.Abs(s.Time()-4*s.Config().Dt) > 1e-12 {
		t.Errorf("expected t=%v, got %v", 4*s.Config().Dt, s.Time())
	}
	if s.StepCount() != 4 {
		t.Errorf("expected 4 steps, got %d", s.StepCount())
	}
}

func TestStep_RollsNoiseLayer(t *testing.T) {
	cfg := smallConfig(config.SourceNoise)
	cfg.Dt = 0.25
	s, err := New(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}

	upper := s.noise.Gradient(1, 1, 1)
	for i := 0; i < 3; i++ {
		s.Step()
	}
	if s.noiseZ != 0.75 {
		t.Fatalf("expected layer clock 0.75, got %v", s.noiseZ)
	}
	if s.noise.Gradient(1, 1, 1) != upper {
		t.Fatal("layer advanced early")
	}

	s.Step()
	if s.noiseZ != 0 {
		t.Errorf("layer clock should reset to 0, got %v", s.noiseZ)
	}
	if s.noise.Gradient(1, 1, 0) != upper {
		t.Error("upper layer should have become the lower layer")
	}
}

func TestSetIsolevel_Remarches(t *testing.T) {
	s, err := New(smallConfig(config.SourceAnalytic), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if s.Extractor().SegmentCount() == 0 {
		t.Fatal("expected waves to cross 0.5")
	}

	s.SetIsolevel(2)
	if s.Extractor().SegmentCount() != 0 {
		t.Error("waves never reach 2, contour should be empty")
	}

	s.SetIsolevel(0.5)
	s.SetInterpolated(false)
	for _, p := range s.Extractor().Points() {
		dx, _ := s.Grid().Spacing()
		if r := math.Mod(p.X, dx/2); r > 1e-9 && dx/2-r > 1e-9 {
			t.Fatalf("midpoint mode produced off-grid x %v", p.X)
		}
	}
}

func TestRun(t *testing.T) {
	m := &countMetric{}
	var seen int
	s, err := New(smallConfig(config.SourceParticles),
		WithLogger(quietLogger()),
		WithMetric(m),
		WithObserver(ObserverFunc(func(Frame) { seen++ })),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := s.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if result.StepsTaken != 10 || seen != 10 {
		t.Errorf("expected 10 steps observed, got %d/%d", result.StepsTaken, seen)
	}
	if result.Metrics["count"] != 10 || m.resets != 1 {
		t.Errorf("metric not driven correctly: %+v", result.Metrics)
	}
	if len(result.Contour) != 2*result.Frames[10].Segments {
		t.Error("final contour does not match last frame")
	}
	if len(result.Times()) != 11 || result.Times()[0] != 0 {
		t.Errorf("unexpected times %v", result.Times())
	}
}

func TestRun_Cancelled(t *testing.T) {
	s, err := New(smallConfig(config.SourceAnalytic), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, 5)
	if !errors.Is(err, ErrStopped) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected ErrStopped wrapping context.Canceled, got %v", err)
	}
	var fe *FrameError
	if !errors.As(err, &fe) || fe.Step != 0 {
		t.Errorf("expected FrameError at step 0, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Error("expected partial result with no steps")
	}
}

func TestRun_NegativeSteps(t *testing.T) {
	s, err := New(smallConfig(config.SourceAnalytic), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(context.Background(), -1); !errors.Is(err, field.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestResult_Series(t *testing.T) {
	r := &Result{Frames: []Stats{{Segments: 3, Length: 1.5}, {Segments: 4, Length: 2}}}
	if got := r.Series("segments"); got[1] != 4 {
		t.Errorf("segments series %v", got)
	}
	if got := r.Series("length"); got[0] != 1.5 {
		t.Errorf("length series %v", got)
	}
	if r.Series("bogus") != nil {
		t.Error("unknown series should be nil")
	}
}

func TestEnsemble(t *testing.T) {
	cfg := smallConfig(config.SourceNoise)
	e := NewEnsemble(cfg, 3, 100, WithLogger(quietLogger()))

	results, err := e.Run(context.Background(), 5)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.StepsTaken != 5 {
			t.Errorf("run %d took %d steps", i, r.StepsTaken)
		}
	}
	if cfg.Seed != config.DefaultSeed {
		t.Error("ensemble must not mutate the shared config")
	}
}
