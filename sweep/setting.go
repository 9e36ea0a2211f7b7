// Package sweep evaluates a grid of parameter settings across a worker pool
// and scatters the aggregated statistics into an indexed result grid.
//
// Every Setting is an immutable task input carrying its own destination
// Index; workers return Outcomes that the driver pairs back to grid cells,
// so completion order never matters.
package sweep

// Index locates a setting's aggregated result in the output grid.
type Index struct {
	Row int
	Col int
}

// Setting is one immutable point in a parameter sweep. Fields not used by a
// given evaluator (Scale for false-negative sweeps, Noise for match sweeps)
// are simply ignored.
type Setting struct {
	KW     int     // weight vector sparsity
	KV     int     // input vector sparsity; -1 means "use n/2"
	N      int     // ambient dimensionality
	Trials int     // trial repetitions to pool
	Theta  float64 // match threshold
	Scale  float64 // input scaling factor
	Noise  float64 // corruption fraction in [0, 1]
	Index  Index   // destination cell in the result grid
}

// Outcome pairs an aggregated statistic with the grid cell it belongs to.
type Outcome struct {
	Index Index
	Value float64
}
