// Package parallel provides parallel execution utilities for the SNVA engine.
//
// Besides the chunked For helper, the package tracks whether any parallel
// region is currently active. The quadrature and operator caches consult
// InParallel to refuse lazy first-use construction from inside a region:
// cache entries must be materialized by a single-threaded warm-up call, and
// only warmed entries may be read concurrently.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 2, // Work items are whole groups, not tensor elements.
	}
}

// activeRegions counts currently executing parallel For regions.
var activeRegions atomic.Int64

// InParallel reports whether a parallel region is currently executing.
// This is the analog of a thread allocator's in-parallel query: cache
// construction is forbidden while it returns true.
func InParallel() bool {
	return activeRegions.Load() > 0
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too
// small. The sequential fallback does not count as a parallel region.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	activeRegions.Add(1)
	defer activeRegions.Add(-1)

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
