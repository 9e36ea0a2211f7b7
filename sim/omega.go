package sim

import (
	"gonum.org/v1/gonum/mat"

	"scalarsdr/sparse"
)

// DefaultOmegaTrials is the per-overlap sample count for the omega estimator.
const DefaultOmegaTrials = 100

// OmegaMatchProbabilities estimates the probability of a match when the
// weight and input vectors share exactly b active components, for every b
// from 1 to bMax. k is the range-scaling constant: weight components are
// uniform in [-1/k, 1/k] and input components in [0, 2/k].
//
// For each b it forms the full nTrials x nTrials cross dot-product matrix of
// b-dimensional dense vectors and counts entries >= theta. The returned
// slice has bMax+1 entries; index 0 is unused and stays zero (a zero-length
// dot product can never reach a positive theta).
//
// nTrials <= 0 selects DefaultOmegaTrials.
func OmegaMatchProbabilities(g *sparse.Generator, k float64, bMax int, theta float64, nTrials int) []float64 {
	if bMax < 1 {
		panic("sim: bMax must be at least 1")
	}
	if nTrials <= 0 {
		nTrials = DefaultOmegaTrials
	}

	probs := make([]float64, bMax+1)
	for b := 1; b <= bMax; b++ {
		xw := g.Batch(b, b, nTrials, sparse.Symmetric, 1.0/k)
		xi := g.Batch(b, b, nTrials, sparse.Positive, 2.0/k)

		var dot mat.Dense
		dot.Mul(xw, xi.T())

		probs[b] = float64(countAtLeast(&dot, theta)) / float64(nTrials*nTrials)
	}
	return probs
}
