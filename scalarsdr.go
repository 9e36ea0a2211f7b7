// Package scalarsdr estimates, by Monte-Carlo simulation, how likely two
// random sparse scalar vectors are to match under a dot-product threshold,
// and how that probability depends on dimensionality, sparsity, relative
// scale, and injected noise.
//
// A "match" is a weight-like vector Xw and an input-like vector Xi with
// Xw . Xi >= theta, where theta is half the mean self dot-product of
// weight-like vectors at the given sparsity.
//
// Basic usage:
//
//	lab := scalarsdr.New(scalarsdr.WithSeed(42), scalarsdr.WithTrials(1000))
//	grid, err := lab.MatchProbabilities(ctx, []int{64, 128, 256, -1},
//		[]int{250, 500, 1000, 1500, 2000, 2500}, 24, 1.0)
package scalarsdr

import (
	"context"
	"log/slog"
	"time"

	"scalarsdr/sim"
	"scalarsdr/sparse"
	"scalarsdr/sweep"
)

// Lab runs match-probability experiments. Each sweep is a finite batch: it
// evaluates a parameter grid, returns the result grid, and holds no state
// beyond the memoized theta estimates.
type Lab struct {
	workers     int
	trials      int
	thetaTrials int
	omegaTrials int
	seed        int64
	log         *slog.Logger
	thetas      *sim.ThetaCache
}

// New creates a Lab with the given options.
// Panics if any option value is invalid.
func New(opts ...Option) *Lab {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	lab := &Lab{
		workers:     o.workers,
		trials:      o.trials,
		thetaTrials: o.thetaTrials,
		omegaTrials: o.omegaTrials,
		seed:        o.seed,
		log:         o.log,
	}
	// The cache generator stream is kept apart from the sweep task streams
	// by a fixed offset so theta estimation never replays task draws.
	lab.thetas = sim.NewThetaCache(sparse.NewGenerator(o.seed-1), o.thetaTrials, o.log)
	return lab
}

// Theta estimates (uncached) the match threshold for sparsity k and returns
// it along with the raw self dot-products, for distribution inspection.
func (l *Lab) Theta(k int) (float64, []float64) {
	return sim.EstimateTheta(sparse.NewGenerator(l.seed-2), k, l.thetaTrials, l.log)
}

// ThetaCacheStats exposes the hit/miss counters of the memoized thresholds.
func (l *Lab) ThetaCacheStats() sim.CacheStats { return l.thetas.Stats() }

// MatchProbabilities sweeps input sparsity (rows, kValues; -1 means n/2)
// against dimensionality (cols, nValues) at a fixed weight sparsity kw and
// input scale, returning a len(kValues) x len(nValues) grid of match
// probabilities.
func (l *Lab) MatchProbabilities(ctx context.Context, kValues, nValues []int, kw int, inputScale float64) (*sweep.Grid, error) {
	l.log.Info("computing match probabilities", "kw", kw, "scale", inputScale)
	theta := l.thetas.Theta(kw)

	settings := make([]sweep.Setting, 0, len(kValues)*len(nValues))
	for ki, k := range kValues {
		for ni, n := range nValues {
			settings = append(settings, sweep.Setting{
				KW: kw, KV: k, N: n,
				Trials: l.trials, Theta: theta, Scale: inputScale,
				Index: sweep.Index{Row: ki, Col: ni},
			})
		}
	}
	return l.run(ctx, len(kValues), len(nValues), settings, sweep.MatchProbability)
}

// ScaledProbabilities sweeps input sparsity (rows, kValues) against input
// scale (cols, scales) at fixed kw and n, returning a
// len(kValues) x len(scales) grid of match probabilities.
func (l *Lab) ScaledProbabilities(ctx context.Context, kValues []int, scales []float64, kw, n int) (*sweep.Grid, error) {
	l.log.Info("computing scaled match probabilities", "kw", kw, "n", n)
	theta := l.thetas.Theta(kw)

	settings := make([]sweep.Setting, 0, len(kValues)*len(scales))
	for ki, k := range kValues {
		for si, s := range scales {
			settings = append(settings, sweep.Setting{
				KW: kw, KV: k, N: n,
				Trials: l.trials, Theta: theta, Scale: s,
				Index: sweep.Index{Row: ki, Col: si},
			})
		}
	}
	return l.run(ctx, len(kValues), len(scales), settings, sweep.MatchProbability)
}

// FalseNegativeRates sweeps the corruption fraction over noiseLevels at
// fixed kw and n, returning a 1 x len(noiseLevels) grid of false-negative
// rates.
func (l *Lab) FalseNegativeRates(ctx context.Context, noiseLevels []float64, kw, n int) (*sweep.Grid, error) {
	l.log.Info("computing false negative rates", "kw", kw, "n", n)
	theta := l.thetas.Theta(kw)

	settings := make([]sweep.Setting, 0, len(noiseLevels))
	for ni, noise := range noiseLevels {
		settings = append(settings, sweep.Setting{
			KW: kw, N: n,
			Trials: l.trials, Theta: theta, Noise: noise,
			Index: sweep.Index{Col: ni},
		})
	}
	return l.run(ctx, 1, len(noiseLevels), settings, sweep.FalseNegativeRate)
}

// OmegaProbabilities estimates, for every overlap size b from 1 to bMax, the
// probability of a match when the two vectors share exactly b active
// components. The threshold is the memoized theta for sparsity k. Index 0 of
// the result is unused and zero.
func (l *Lab) OmegaProbabilities(k, bMax int) []float64 {
	theta := l.thetas.Theta(k)
	g := sparse.NewGenerator(l.seed - 3)
	return sim.OmegaMatchProbabilities(g, float64(k), bMax, theta, l.omegaTrials)
}

func (l *Lab) run(ctx context.Context, rows, cols int, settings []sweep.Setting, eval sweep.Evaluator) (*sweep.Grid, error) {
	start := time.Now()
	outcomes, err := sweep.Run(ctx, settings, eval, sweep.Options{
		Workers:  l.workers,
		BaseSeed: l.seed,
		Logger:   l.log,
	})
	if err != nil {
		return nil, err
	}
	grid := sweep.NewGrid(rows, cols)
	grid.Scatter(outcomes)
	l.log.Info("sweep complete", "settings", len(settings), "elapsed", time.Since(start).Round(time.Millisecond))
	return grid, nil
}
