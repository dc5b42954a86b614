package field

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
	"github.com/san-kum/isocontour/internal/geom"
)

// SimplexField is OpenSimplex noise normalised to [0,1). Positions are
// divided by FeatureSize before evaluation and t is the third axis.
type SimplexField struct {
	noise       opensimplex.Noise
	FeatureSize float64
}

func NewSimplexField(seed int64, featureSize float64) (*SimplexField, error) {
	if featureSize <= 0 {
		return nil, fmt.Errorf("%w: simplex feature size %g", ErrInvalidConfig, featureSize)
	}
	return &SimplexField{
		noise:       opensimplex.NewNormalized(seed),
		FeatureSize: featureSize,
	}, nil
}

func (f *SimplexField) Sample(dst []float64, pts []geom.Position, t float64) {
	for i, p := range pts {
		dst[i] = f.noise.Eval3(p.X/f.FeatureSize, p.Y/f.FeatureSize, t)
	}
}
