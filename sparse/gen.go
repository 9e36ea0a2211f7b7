// Package sparse generates batches of random sparse scalar vectors.
// A batch is a gonum mat.Dense of shape (m, n); each row is an independent
// sample with exactly min(k, n) non-zero entries drawn i.i.d. uniformly from
// a symmetric or one-sided interval.
package sparse

import (
	"io"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Dist selects the value distribution for non-zero entries.
type Dist int

const (
	// Symmetric draws non-zero entries uniformly from [-bound, bound].
	// Weight-like vectors use this.
	Symmetric Dist = iota
	// Positive draws non-zero entries uniformly from [0, bound].
	// Input-like vectors (post-nonlinearity activations) use this.
	Positive
)

// Generator produces random sparse batches from an explicit, caller-owned
// random source. The same seed always yields the same sequence of batches.
// A Generator is not safe for concurrent use; give each worker its own.
type Generator struct {
	rng  *rand.Rand
	log  *slog.Logger
	perm []int // scratch permutation buffer, reused across rows
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger routes generation diagnostics (such as the dense-row warning) to l.
// Panics if l is nil; use a discard handler to silence output.
func (g *Generator) SetLogger(l *slog.Logger) {
	if l == nil {
		panic("sparse: logger must not be nil")
	}
	g.log = l
}

// Batch returns an (m, n) matrix whose rows each have exactly min(k, n)
// non-zero entries at uniformly random positions. k == 0 yields all-zero
// rows. k >= n yields dense rows: the permissive behavior is kept for
// misconfigured sweeps, but k > n is logged as a warning rather than passed
// through silently.
// Panics if n <= 0, m <= 0, or k < 0.
func (g *Generator) Batch(k, n, m int, dist Dist, bound float64) *mat.Dense {
	switch {
	case n <= 0:
		panic("sparse: dimensionality must be positive")
	case m <= 0:
		panic("sparse: batch size must be positive")
	case k < 0:
		panic("sparse: non-zero count must not be negative")
	}

	w := mat.NewDense(m, n, nil)
	raw := w.RawMatrix().Data
	for i := range raw {
		raw[i] = g.uniform(dist, bound)
	}

	if k >= n {
		if k > n {
			g.log.Warn("sparsity exceeds dimensionality, rows are dense", "k", k, "n", n)
		}
		return w
	}

	numZeros := n - k
	for i := 0; i < m; i++ {
		row := w.RawRowView(i)
		for _, j := range g.permutation(n)[:numZeros] {
			row[j] = 0
		}
	}
	return w
}

func (g *Generator) uniform(dist Dist, bound float64) float64 {
	if dist == Positive {
		return g.rng.Float64() * bound
	}
	return (2*g.rng.Float64() - 1) * bound
}

// permutation returns a fresh uniform permutation of 0..n-1 in a scratch
// buffer. The buffer is invalidated by the next permutation call.
func (g *Generator) permutation(n int) []int {
	if cap(g.perm) < n {
		g.perm = make([]int, n)
	}
	p := g.perm[:n]
	for i := range p {
		p[i] = i
	}
	g.rng.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// NonzeroIndices returns the positions of v's non-zero entries in ascending
// order.
func NonzeroIndices(v mat.Vector) []int {
	var nz []int
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) != 0 {
			nz = append(nz, i)
		}
	}
	return nz
}
