package sweep

import (
	"errors"
	"log/slog"
	"math"

	"scalarsdr/sim"
	"scalarsdr/sparse"
)

// ErrNoComparisons reports an aggregation whose trials produced zero
// comparisons. A probability over nothing is undefined and must fail loudly
// instead of quietly yielding NaN.
var ErrNoComparisons = errors.New("sweep: zero comparisons aggregated")

// Pool combines trial results by summing raw counts:
// sum(matched) / sum(comparisons). This is not the mean of the per-trial
// fractions; with unequal batch sizes the two disagree, and only the pooled
// form weights every comparison equally.
func Pool(results []sim.TrialResult) (float64, error) {
	matched, total := 0, 0
	for _, r := range results {
		matched += r.Matched
		total += r.Comparisons
	}
	if total == 0 {
		return 0, ErrNoComparisons
	}
	return float64(matched) / float64(total), nil
}

// MatchProbability estimates the probability that a random input vector
// matches a random weight vector at s.Theta, pooling raw counts over
// s.Trials match trials. s.KV == -1 selects an input sparsity of n/2.
func MatchProbability(g *sparse.Generator, s Setting, log *slog.Logger) (float64, error) {
	kv := s.KV
	if kv == -1 {
		kv = int(math.Round(float64(s.N) / 2))
	}

	results := make([]sim.TrialResult, s.Trials)
	for i := range results {
		results[i] = sim.MatchTrial(g, s.KW, kv, s.N, s.Theta, s.Scale)
	}
	p, err := Pool(results)
	if err != nil {
		return 0, err
	}

	log.Info("match probability",
		"kw", s.KW, "kv", kv, "n", s.N, "scale", s.Scale,
		"trials", s.Trials, "p", p,
	)
	return p, nil
}

// FalseNegativeRate estimates the probability that a noisy copy of a weight
// vector no longer matches its source, pooling raw counts over s.Trials
// false-negative trials. The rate is 1 minus the pooled match fraction.
func FalseNegativeRate(g *sparse.Generator, s Setting, log *slog.Logger) (float64, error) {
	results := make([]sim.TrialResult, s.Trials)
	for i := range results {
		results[i] = sim.FalseNegativeTrial(g, s.KW, s.Noise, s.N, s.Theta)
	}
	p, err := Pool(results)
	if err != nil {
		return 0, err
	}
	rate := 1 - p

	log.Info("false negative rate",
		"kw", s.KW, "n", s.N, "noise", s.Noise,
		"trials", s.Trials, "rate", rate,
	)
	return rate, nil
}
