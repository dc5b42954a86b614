package sim

import (
	"context"
	"sync"

	"github.com/san-kum/isocontour/internal/config"
)

// Ensemble runs independent copies of one configuration, each with its own
// seed, concurrently.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	opts      []Option
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, opts: opts}
}

// Run returns one Result per seed, in seed order. Metrics and observers must
// not be shared between members, so only options without shared state
// (such as WithLogger) should be passed to NewEnsemble.
func (e *Ensemble) Run(ctx context.Context, steps int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg.Clone()
			cfgCopy.Seed = e.seedStart + int64(idx)

			s, err := New(cfgCopy, e.opts...)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, steps)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
