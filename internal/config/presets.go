package config

import "sort"

var Presets = map[string]map[string]*Config{
	SourceParticles: {
		"metaballs": DefaultConfig(),
		"coarse": {
			Source: SourceParticles, Width: 768, Height: 768, Resolution: 40,
			Isolevel: 0.5, Interpolate: false, Dt: 0.025, Steps: 400, Seed: DefaultSeed,
			MinDistance: DefaultMinDistance, Particles: DemoParticles(768, 768),
		},
		"crowd": {
			Source: SourceParticles, Width: 1024, Height: 512, Resolution: 200,
			Isolevel: 0.8, Interpolate: true, Dt: 0.02, Steps: 600, Seed: DefaultSeed,
			MinDistance: DefaultMinDistance,
			Particles: append(DemoParticles(512, 512), []ParticleConfig{
				{Radius: 18, X: 700, Y: 100, VX: -30, VY: 40},
				{Radius: 12, X: 900, Y: 400, VX: 25, VY: -35},
				{Radius: 30, X: 640, Y: 256, VX: 10, VY: 10},
			}...),
		},
	},
	SourceAnalytic: {
		"waves": {
			Source: SourceAnalytic, Width: 768, Height: 768, Resolution: 150,
			Isolevel: 0.5, Interpolate: true, Dt: 0.025, Steps: 400,
		},
	},
	SourceNoise: {
		"perlin": {
			Source: SourceNoise, Width: 768, Height: 768, Resolution: 150,
			Isolevel: 0.5, Interpolate: true, Dt: 0.01, Steps: 500, Seed: DefaultSeed,
			Noise: NoiseConfig{Resolution: 8, Mode: "sphere"},
		},
		"perlin-palette": {
			Source: SourceNoise, Width: 768, Height: 768, Resolution: 150,
			Isolevel: 0.5, Interpolate: true, Dt: 0.01, Steps: 500, Seed: DefaultSeed,
			Noise: NoiseConfig{Resolution: 6, Mode: "palette"},
		},
	},
	SourceSimplex: {
		"simplex": {
			Source: SourceSimplex, Width: 768, Height: 768, Resolution: 150,
			Isolevel: 0.5, Interpolate: true, Dt: 0.02, Steps: 500, Seed: DefaultSeed,
			Simplex: SimplexConfig{FeatureSize: DefaultFeatureSize},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(source, preset string) *Config {
	sourcePresets, ok := Presets[source]
	if !ok {
		return nil
	}
	cfg, ok := sourcePresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// FindPreset looks a preset up by name alone.
func FindPreset(preset string) *Config {
	for _, source := range Sources() {
		if cfg := GetPreset(source, preset); cfg != nil {
			return cfg
		}
	}
	return nil
}

func ListPresets(source string) []string {
	sourcePresets, ok := Presets[source]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sourcePresets))
	for name := range sourcePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sources lists the source names that have presets.
func Sources() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
