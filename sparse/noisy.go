package sparse

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NoisyVariants returns an (m, n) batch in which every row is a copy of src
// with round(noisePct*k) of the source's non-zero positions set to zero. The
// positions to zero are a fresh uniform subset of the source's non-zero
// index list for each variant; src itself is never mutated.
//
// Noise here is corruption-only: a zero position is never flipped to a
// non-zero value. If round(noisePct*k) exceeds the number of non-zero
// positions actually present, the count is clamped and every non-zero entry
// is zeroed.
// Panics if m <= 0.
func (g *Generator) NoisyVariants(src mat.Vector, k, m int, noisePct float64) *mat.Dense {
	if m <= 0 {
		panic("sparse: variant count must be positive")
	}

	n := src.Len()
	nz := NonzeroIndices(src)
	numToZero := int(math.Round(noisePct * float64(k)))
	if numToZero > len(nz) {
		numToZero = len(nz)
	}

	out := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		row := out.RawRowView(i)
		for j := 0; j < n; j++ {
			row[j] = src.AtVec(j)
		}
		for _, p := range g.permutation(len(nz))[:numToZero] {
			row[nz[p]] = 0
		}
	}
	return out
}
