// Package sim implements the Monte-Carlo estimators at the heart of the
// simulator: the match-threshold (theta) estimate, the single-trial
// match-probability and false-negative evaluators, and the omega estimator
// for fixed-overlap match probabilities.
package sim

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"scalarsdr/sparse"
)

// DefaultThetaTrials is the number of self dot-product samples used to
// stabilize a theta estimate.
const DefaultThetaTrials = 100000

// EstimateTheta estimates the match threshold for sparsity k as half the
// mean self dot-product of nTrials freshly generated weight-like vectors.
// Generation is square (dimensionality k): only self-overlap contributes to
// a self dot-product, so the ambient dimensionality is irrelevant here.
//
// The divisor 2 is the deliberate robustness margin that lets corrupted
// copies of a vector still match it; it is part of the threshold definition,
// not a tunable.
//
// nTrials <= 0 selects DefaultThetaTrials. Returns theta along with the raw
// dot products for callers that want the distribution.
func EstimateTheta(g *sparse.Generator, k, nTrials int, log *slog.Logger) (float64, []float64) {
	if k <= 0 {
		panic("sim: sparsity must be positive")
	}
	if nTrials <= 0 {
		nTrials = DefaultThetaTrials
	}

	w := g.Batch(k, k, nTrials, sparse.Symmetric, 1.0/float64(k))
	dots := make([]float64, nTrials)
	for i := range dots {
		row := w.RawRowView(i)
		dots[i] = floats.Dot(row, row)
	}

	mean := stat.Mean(dots, nil)
	theta := mean / 2
	log.Info("theta estimate",
		"k", k,
		"trials", nTrials,
		"min", floats.Min(dots),
		"mean", mean,
		"max", floats.Max(dots),
		"theta", theta,
	)
	return theta, dots
}
