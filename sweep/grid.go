package sweep

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Grid is a result array indexed by a sweep's free parameters. Cells start
// out as NaN, so an unwritten cell is detectable after a sweep completes;
// use a single row for one-axis sweeps.
type Grid struct {
	m *mat.Dense
}

// NewGrid returns a rows x cols grid with every cell set to NaN.
// Panics if rows <= 0 or cols <= 0.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic("sweep: grid dimensions must be positive")
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Grid{m: mat.NewDense(rows, cols, data)}
}

// Scatter writes each outcome into the cell named by its own index.
func (g *Grid) Scatter(outcomes []Outcome) {
	for _, o := range outcomes {
		g.m.Set(o.Index.Row, o.Index.Col, o.Value)
	}
}

// Set writes v into the cell at idx.
func (g *Grid) Set(idx Index, v float64) { g.m.Set(idx.Row, idx.Col, v) }

// At returns the cell value at (row, col); NaN if the cell was never written.
func (g *Grid) At(row, col int) float64 { return g.m.At(row, col) }

// Dims returns the grid dimensions.
func (g *Grid) Dims() (rows, cols int) { return g.m.Dims() }

// Complete reports whether every cell has been written.
func (g *Grid) Complete() bool {
	rows, cols := g.m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if math.IsNaN(g.m.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) []float64 {
	_, cols := g.m.Dims()
	return mat.Row(make([]float64, cols), i, g.m)
}

// Dense returns the underlying matrix for presentation-layer consumers.
// The grid retains ownership; treat the result as read-only.
func (g *Grid) Dense() *mat.Dense { return g.m }
