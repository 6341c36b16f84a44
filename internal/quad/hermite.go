// Package quad builds and caches Gauss–Hermite quadrature rules.
//
// A rule of order n holds the classic node/weight pairs for the weight
// function exp(-x²):
//
//	∫ f(x)·exp(-x²) dx ≈ Σᵢ Wᵢ·f(Xᵢ)
//
// Construction is relatively expensive (an order-n symmetric
// eigendecomposition), so rules are built once per (order, precision) key and
// kept for the remainder of the process. The cache is deliberately
// unsynchronized: all keys that a parallel region will need must be warmed by
// a single-threaded Warmup (or Get) call before the region starts. A first
// build attempted inside a region fails with ErrParallelFirstUse instead of
// racing. Warmed entries are never mutated or evicted, so concurrent reads
// after warm-up are safe; the happens-before edge is the region start itself.
package quad

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/snva-ml/snva/internal/parallel"
)

// MaxOrder is the fixed capacity of the rule cache. Orders above it are
// rejected rather than grown into: the capacity is configuration, not a
// runtime discovery.
const MaxOrder = 100

// Precision identifies the numeric plane a cached rule (or operator) belongs
// to. Both planes are float64-backed, but cache identity is per precision:
// an operator owns the Double rule for its mode-centred evaluation and its
// own precision's rule for traced partials.
type Precision int

const (
	// Double is the reference precision used for mode finding and plain
	// evaluation.
	Double Precision = iota
	// Traced is the precision plane consumed by dual-number evaluation
	// paths.
	Traced

	// NumPrecisions is the number of cache planes.
	NumPrecisions = iota
)

// String returns the precision name.
func (p Precision) String() string {
	switch p {
	case Double:
		return "double"
	case Traced:
		return "traced"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// Rule is an immutable Gauss–Hermite rule: nodes X (ascending) and the
// matching classic weights W for the exp(-x²) weight function.
type Rule struct {
	X []float64
	W []float64
}

// Len returns the rule order.
func (r *Rule) Len() int { return len(r.X) }

var (
	// ErrInvalidOrder reports a quadrature order of zero or beyond MaxOrder.
	ErrInvalidOrder = errors.New("quad: order must be in [1, MaxOrder]")
	// ErrParallelFirstUse reports a cache construction attempted while a
	// parallel region is executing.
	ErrParallelFirstUse = errors.New("quad: first use inside a parallel region (warm the cache before going parallel)")
)

// rules holds one lazily built entry per (precision, order-1). Entries are
// written exactly once, before any parallel region that reads them.
var rules [NumPrecisions][MaxOrder]*Rule

// Get returns the rule of the given order on the given precision plane,
// building it on first use. Repeated calls with the same key return the
// identical instance.
func Get(n int, prec Precision) (*Rule, error) {
	if n < 1 || n > MaxOrder {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidOrder, n)
	}
	if r := rules[prec][n-1]; r != nil {
		return r, nil
	}
	if parallel.InParallel() {
		return nil, fmt.Errorf("%w: order %d (%s)", ErrParallelFirstUse, n, prec)
	}
	r := build(n)
	rules[prec][n-1] = r
	return r, nil
}

// Warmup materializes the given orders on one precision plane. It is the
// explicit registry-population call that must run single-threaded before a
// parallel region needs the entries.
func Warmup(prec Precision, orders ...int) error {
	for _, n := range orders {
		if _, err := Get(n, prec); err != nil {
			return err
		}
	}
	return nil
}

// build computes nodes and weights by the Golub–Welsch method: the Hermite
// three-term recurrence yields a symmetric tridiagonal Jacobi matrix with
// off-diagonal entries √(i/2); its eigenvalues are the nodes and the squared
// first components of the normalized eigenvectors, scaled by √π (the zeroth
// moment of exp(-x²)), are the weights.
func build(n int) *Rule {
	if n == 1 {
		return &Rule{X: []float64{0}, W: []float64{math.SqrtPi}}
	}

	jacobi := mat.NewSymDense(n, nil)
	for i := 1; i < n; i++ {
		jacobi.SetSym(i-1, i, math.Sqrt(float64(i)/2))
	}

	var eig mat.EigenSym
	if !eig.Factorize(jacobi, true) {
		// The Jacobi matrix is symmetric tridiagonal with bounded entries;
		// factorization failure means a broken build, not bad input.
		panic(fmt.Sprintf("quad: eigendecomposition failed for order %d", n))
	}

	x := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	w := make([]float64, n)
	for i := range w {
		v0 := vecs.At(0, i)
		w[i] = math.SqrtPi * v0 * v0
	}
	return &Rule{X: x, W: w}
}
