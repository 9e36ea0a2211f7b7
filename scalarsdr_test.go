package scalarsdr_test

import (
	"context"
	"testing"

	"scalarsdr"
)

// Small, fast defaults for end-to-end tests; statistical quality is covered
// by the package-level tests in sim and sweep.
func newTestLab(t *testing.T, opts ...scalarsdr.Option) *scalarsdr.Lab {
	t.Helper()
	base := []scalarsdr.Option{
		scalarsdr.WithSeed(42),
		scalarsdr.WithTrials(2),
		scalarsdr.WithThetaTrials(2000),
		scalarsdr.WithOmegaTrials(30),
		scalarsdr.WithWorkers(2),
	}
	return scalarsdr.New(append(base, opts...)...)
}

// ── construction ──────────────────────────────────────────────────────────────

func TestNew_Defaults(t *testing.T) {
	lab := scalarsdr.New()
	if lab == nil {
		t.Fatal("New() must not return nil")
	}
}

func TestNew_InvalidOptions_Panic(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"workers_zero", func() { scalarsdr.WithWorkers(0) }},
		{"trials_zero", func() { scalarsdr.WithTrials(0) }},
		{"theta_trials_negative", func() { scalarsdr.WithThetaTrials(-1) }},
		{"omega_trials_zero", func() { scalarsdr.WithOmegaTrials(0) }},
		{"nil_logger", func() { scalarsdr.WithLogger(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// ── theta ─────────────────────────────────────────────────────────────────────

func TestLab_Theta(t *testing.T) {
	lab := newTestLab(t)
	theta, dots := lab.Theta(24)
	if theta <= 0 {
		t.Fatalf("theta must be positive, got %g", theta)
	}
	if len(dots) != 2000 {
		t.Fatalf("want 2000 dot products, got %d", len(dots))
	}
}

func TestLab_ThetaCacheReuse(t *testing.T) {
	lab := newTestLab(t)
	ctx := context.Background()

	if _, err := lab.FalseNegativeRates(ctx, []float64{0.5}, 24, 200); err != nil {
		t.Fatal(err)
	}
	if _, err := lab.MatchProbabilities(ctx, []int{32}, []int{200}, 24, 1.0); err != nil {
		t.Fatal(err)
	}

	stats := lab.ThetaCacheStats()
	if stats.Entries != 1 {
		t.Fatalf("want a single cached theta for kw=24, got %d entries", stats.Entries)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("want 1 hit and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
}

// ── sweeps ────────────────────────────────────────────────────────────────────

func TestLab_MatchProbabilities(t *testing.T) {
	lab := newTestLab(t)
	grid, err := lab.MatchProbabilities(context.Background(), []int{16, -1}, []int{100, 200, 400}, 8, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := grid.Dims()
	if rows != 2 || cols != 3 {
		t.Fatalf("want 2x3 grid, got %dx%d", rows, cols)
	}
	if !grid.Complete() {
		t.Fatal("sweep left unwritten cells")
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if p := grid.At(r, c); p < 0 || p > 1 {
				t.Fatalf("cell (%d,%d): probability %g outside [0,1]", r, c, p)
			}
		}
	}
}

func TestLab_MatchProbabilities_Reproducible(t *testing.T) {
	run := func() *sweepResult {
		lab := newTestLab(t)
		grid, err := lab.MatchProbabilities(context.Background(), []int{16}, []int{100, 200}, 8, 1.0)
		if err != nil {
			t.Fatal(err)
		}
		return &sweepResult{a: grid.At(0, 0), b: grid.At(0, 1)}
	}
	x, y := run(), run()
	if x.a != y.a || x.b != y.b {
		t.Fatalf("same seed must reproduce results: %v vs %v", x, y)
	}
}

type sweepResult struct{ a, b float64 }

func TestLab_ScaledProbabilities(t *testing.T) {
	lab := newTestLab(t)
	grid, err := lab.ScaledProbabilities(context.Background(), []int{16, 32}, []float64{1.0, 2.0}, 8, 200)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := grid.Dims()
	if rows != 2 || cols != 2 {
		t.Fatalf("want 2x2 grid, got %dx%d", rows, cols)
	}
	if !grid.Complete() {
		t.Fatal("sweep left unwritten cells")
	}
}

func TestLab_FalseNegativeRates(t *testing.T) {
	lab := newTestLab(t, scalarsdr.WithTrials(20))
	grid, err := lab.FalseNegativeRates(context.Background(), []float64{0.0, 0.5, 1.0}, 24, 500)
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := grid.Dims()
	if rows != 1 || cols != 3 {
		t.Fatalf("want 1x3 grid, got %dx%d", rows, cols)
	}
	if !grid.Complete() {
		t.Fatal("sweep left unwritten cells")
	}

	// No corruption: essentially every copy still matches.
	if rate := grid.At(0, 0); rate > 0.1 {
		t.Fatalf("noise=0 false-negative rate should be near zero, got %g", rate)
	}
	// Full corruption: a zeroed copy can never match a positive threshold.
	if rate := grid.At(0, 2); rate != 1.0 {
		t.Fatalf("noise=1 false-negative rate must be 1, got %g", rate)
	}
}

// ── omega ─────────────────────────────────────────────────────────────────────

func TestLab_OmegaProbabilities(t *testing.T) {
	lab := newTestLab(t)
	probs := lab.OmegaProbabilities(24, 12)
	if len(probs) != 13 {
		t.Fatalf("want bMax+1 entries, got %d", len(probs))
	}
	if probs[0] != 0 {
		t.Fatalf("index 0 must stay zero, got %g", probs[0])
	}
	for b, p := range probs {
		if p < 0 || p > 1 {
			t.Fatalf("b=%d: probability %g outside [0,1]", b, p)
		}
	}
}
