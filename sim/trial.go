package sim

import (
	"gonum.org/v1/gonum/mat"

	"scalarsdr/sparse"
)

// Batch sizes for a single match trial: every trial compares
// WeightBatchSize weight-like rows against InputBatchSize input-like rows.
const (
	WeightBatchSize = 4
	InputBatchSize  = 1000

	// VariantCount is the number of noisy copies compared per
	// false-negative trial.
	VariantCount = 10
)

// TrialResult is the outcome of one batched trial.
// Fraction always equals Matched / Comparisons.
type TrialResult struct {
	Fraction    float64
	Matched     int
	Comparisons int
}

// MatchTrial generates WeightBatchSize weight-like vectors (sparsity kw,
// range 1/kw) and InputBatchSize input-like vectors (sparsity kv, range
// 2*inputScaling/kw), forms the full cross dot-product matrix, and counts
// entries at or above theta.
//
// One trial is the atomic unit of sampling: callers repeat it and pool the
// raw counts rather than averaging per-trial fractions.
func MatchTrial(g *sparse.Generator, kw, kv, n int, theta, inputScaling float64) TrialResult {
	weights := g.Batch(kw, n, WeightBatchSize, sparse.Symmetric, 1.0/float64(kw))
	inputs := g.Batch(kv, n, InputBatchSize, sparse.Positive, 2*inputScaling/float64(kw))

	var dot mat.Dense
	dot.Mul(inputs, weights.T())

	matched := countAtLeast(&dot, theta)
	total := WeightBatchSize * InputBatchSize
	return TrialResult{
		Fraction:    float64(matched) / float64(total),
		Matched:     matched,
		Comparisons: total,
	}
}

// FalseNegativeTrial generates one weight-like vector, builds VariantCount
// noisy copies of it with noisePct of the non-zero components zeroed, and
// counts how many copies still match the original at threshold theta.
//
// The false-negative rate reported by higher layers is 1 - Fraction: the
// event measured is a true match that disappears after corruption.
func FalseNegativeTrial(g *sparse.Generator, kw int, noisePct float64, n int, theta float64) TrialResult {
	w := g.Batch(kw, n, 1, sparse.Symmetric, 1.0/float64(kw))
	variants := g.NoisyVariants(w.RowView(0), kw, VariantCount, noisePct)

	var dot mat.Dense
	dot.Mul(variants, w.T())

	matched := countAtLeast(&dot, theta)
	return TrialResult{
		Fraction:    float64(matched) / float64(VariantCount),
		Matched:     matched,
		Comparisons: VariantCount,
	}
}

// countAtLeast returns the number of entries of m that are >= theta.
func countAtLeast(m *mat.Dense, theta float64) int {
	raw := m.RawMatrix()
	count := 0
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for _, v := range row {
			if v >= theta {
				count++
			}
		}
	}
	return count
}
