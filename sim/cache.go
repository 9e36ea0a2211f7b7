package sim

import (
	"log/slog"
	"sync"

	"scalarsdr/sparse"
)

// CacheStats is a point-in-time snapshot of ThetaCache metrics.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// ThetaCache memoizes threshold estimates per sparsity level so that sweeps
// sharing a weight sparsity do not repeat the estimation. It is safe for
// concurrent use; estimation runs under the cache lock, so concurrent
// callers for the same k block until the first estimate lands.
type ThetaCache struct {
	mu      sync.Mutex
	g       *sparse.Generator
	trials  int
	log     *slog.Logger
	entries map[int]float64

	hits   uint64
	misses uint64
}

// NewThetaCache creates a ThetaCache estimating with nTrials samples
// (<= 0 selects DefaultThetaTrials).
// Panics if g or log is nil.
func NewThetaCache(g *sparse.Generator, nTrials int, log *slog.Logger) *ThetaCache {
	if g == nil {
		panic("sim: generator must not be nil")
	}
	if log == nil {
		panic("sim: logger must not be nil")
	}
	if nTrials <= 0 {
		nTrials = DefaultThetaTrials
	}
	return &ThetaCache{
		g:       g,
		trials:  nTrials,
		log:     log,
		entries: make(map[int]float64),
	}
}

// Theta returns the cached threshold for sparsity k, estimating it on first
// use.
func (c *ThetaCache) Theta(k int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if theta, ok := c.entries[k]; ok {
		c.hits++
		return theta
	}
	c.misses++
	theta, _ := EstimateTheta(c.g, k, c.trials, c.log)
	c.entries[k] = theta
	return theta
}

// Stats returns a point-in-time snapshot of cache metrics.
func (c *ThetaCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}
