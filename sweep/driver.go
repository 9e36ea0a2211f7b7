package sweep

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"scalarsdr/sparse"
)

// DefaultProgressInterval is how often a running sweep logs its completion
// fraction.
const DefaultProgressInterval = 5 * time.Second

// Evaluator computes the aggregated statistic for one setting. The generator
// is private to the task; evaluators must not retain it.
type Evaluator func(g *sparse.Generator, s Setting, log *slog.Logger) (float64, error)

// Options configures a sweep run.
type Options struct {
	// Workers is the pool size. Values <= 1 run the settings sequentially
	// in list order on the calling goroutine.
	Workers int
	// BaseSeed seeds per-task generators as BaseSeed + task ordinal, so
	// every task draws from its own independent stream and a run is
	// reproducible regardless of worker count.
	BaseSeed int64
	// Progress is the progress-log interval; <= 0 selects
	// DefaultProgressInterval.
	Progress time.Duration
	// Logger receives progress and evaluator diagnostics. nil discards.
	Logger *slog.Logger
}

// Run evaluates every setting and returns one Outcome per setting. Outcome
// order matches settings order, but callers must not rely on it: each
// Outcome carries its own Index, and Grid.Scatter places it by that alone.
//
// One task per setting, no batching, so progress stays fine-grained. Tasks
// are fully independent; the only synchronization is submission and
// collection. The first evaluator error cancels the remaining tasks and
// fails the whole sweep — there is no partial-result tolerance, and callers
// needing retries must wrap this layer.
func Run(ctx context.Context, settings []Setting, eval Evaluator, opts Options) ([]Outcome, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	interval := opts.Progress
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	if opts.Workers <= 1 {
		outcomes := make([]Outcome, len(settings))
		for i, s := range settings {
			g := sparse.NewGenerator(opts.BaseSeed + int64(i))
			v, err := eval(g, s, log)
			if err != nil {
				return nil, err
			}
			outcomes[i] = Outcome{Index: s.Index, Value: v}
		}
		return outcomes, nil
	}

	outcomes := make([]Outcome, len(settings))
	var remaining atomic.Int64
	remaining.Store(int64(len(settings)))

	done := make(chan struct{})
	go reportProgress(log, interval, len(settings), &remaining, done)
	defer close(done)

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(opts.Workers)
	for i, s := range settings {
		i, s := i, s
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g := sparse.NewGenerator(opts.BaseSeed + int64(i))
			v, err := eval(g, s, log)
			if err != nil {
				return err
			}
			outcomes[i] = Outcome{Index: s.Index, Value: v}
			remaining.Add(-1)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func reportProgress(log *slog.Logger, interval time.Duration, total int, remaining *atomic.Int64, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			left := remaining.Load()
			log.Info("sweep progress",
				"remaining", left,
				"total", total,
				"pct_complete", 100*float64(int64(total)-left)/float64(total),
			)
		}
	}
}
