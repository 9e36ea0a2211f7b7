package scalarsdr

import (
	"io"
	"log/slog"
	"runtime"
	"time"

	"scalarsdr/sim"
)

// Option configures a Lab.
type Option func(*labOptions)

type labOptions struct {
	workers     int
	trials      int
	thetaTrials int
	omegaTrials int
	seed        int64
	log         *slog.Logger
}

func defaultOptions() labOptions {
	return labOptions{
		workers:     runtime.NumCPU(),
		trials:      1000,
		thetaTrials: sim.DefaultThetaTrials,
		omegaTrials: sim.DefaultOmegaTrials,
		seed:        time.Now().UnixNano(),
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWorkers sets the sweep worker count (default runtime.NumCPU()).
// 1 runs settings sequentially. Panics if n <= 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic("scalarsdr: WithWorkers requires a positive count")
	}
	return func(o *labOptions) { o.workers = n }
}

// WithTrials sets the trial repetitions pooled per sweep setting
// (default 1000). Panics if n <= 0.
func WithTrials(n int) Option {
	if n <= 0 {
		panic("scalarsdr: WithTrials requires a positive count")
	}
	return func(o *labOptions) { o.trials = n }
}

// WithThetaTrials sets the sample count for threshold estimation
// (default 100000). Lower values speed sweeps up at the cost of threshold
// stability. Panics if n <= 0.
func WithThetaTrials(n int) Option {
	if n <= 0 {
		panic("scalarsdr: WithThetaTrials requires a positive count")
	}
	return func(o *labOptions) { o.thetaTrials = n }
}

// WithOmegaTrials sets the per-overlap sample count for the omega estimator
// (default 100). Panics if n <= 0.
func WithOmegaTrials(n int) Option {
	if n <= 0 {
		panic("scalarsdr: WithOmegaTrials requires a positive count")
	}
	return func(o *labOptions) { o.omegaTrials = n }
}

// WithSeed fixes the base random seed so a sweep is reproducible regardless
// of worker count. The default is the current time.
func WithSeed(seed int64) Option {
	return func(o *labOptions) { o.seed = seed }
}

// WithLogger routes diagnostics (theta estimates, per-setting summaries,
// sweep progress) to l. The default discards everything.
// Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("scalarsdr: WithLogger requires a non-nil logger")
	}
	return func(o *labOptions) { o.log = l }
}
