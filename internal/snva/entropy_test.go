package snva

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/num/dual"

	"github.com/snva-ml/snva/internal/mathx"
	"github.com/snva-ml/snva/internal/quad"
)

// refEntropy computes ∫2φ(z;σ²)Φ(z)logΦ(z)dz by trapezoid summation,
// independently of the engine.
func refEntropy(sigmaSq float64) float64 {
	sigma := math.Sqrt(sigmaSq)
	lo, hi := -15*sigma, 15*sigma
	n := 60000
	h := (hi - lo) / float64(n)
	var sum float64
	for i := 0; i <= n; i++ {
		z := lo + float64(i)*h
		w := 1.0
		if i == 0 || i == n {
			w = 0.5
		}
		density := math.Exp(-z*z/(2*sigmaSq)) / (sigma * math.Sqrt(2*math.Pi))
		sum += w * 2 * density * mathx.NormalCDF(z) * mathx.NormalLogCDF(z)
	}
	return sum * h
}

func TestCachedEntropyIdempotent(t *testing.T) {
	op1, err := CachedEntropy(14, quad.Double)
	require.NoError(t, err)
	op2, err := CachedEntropy(14, quad.Double)
	require.NoError(t, err)
	require.Same(t, op1, op2)
	assert.Equal(t, 14, op1.Order())
}

func TestCachedEntropyInvalidOrder(t *testing.T) {
	_, err := CachedEntropy(0, quad.Double)
	require.ErrorIs(t, err, quad.ErrInvalidOrder)
	_, err = CachedEntropy(quad.MaxOrder+1, quad.Double)
	require.ErrorIs(t, err, quad.ErrInvalidOrder)
}

func TestEntropyHigherOrderUnsupported(t *testing.T) {
	op, err := CachedEntropy(10, quad.Double)
	require.NoError(t, err)

	_, err = op.Forward(1, 1)
	require.ErrorIs(t, err, ErrUnsupportedOrder)
	_, err = op.Reverse(1, 1, 1)
	require.ErrorIs(t, err, ErrUnsupportedOrder)
}

// At σ²=1 the value has a closed form: with U = Φ(Z) uniform on (0,1),
// E[2U·logU] = -1/2.
func TestEntropyUnitVariance(t *testing.T) {
	op, err := CachedEntropy(40, quad.Double)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, op.Evaluate(1), 1e-8)
}

func TestEntropyMatchesReference(t *testing.T) {
	op, err := CachedEntropy(40, quad.Double)
	require.NoError(t, err)

	for _, sigmaSq := range []float64{0.25, 0.5, 1, 2} {
		got := op.Evaluate(sigmaSq)
		want := refEntropy(sigmaSq)
		assert.Negative(t, got, "sigmaSq=%v", sigmaSq)
		rel := math.Abs(got-want) / math.Abs(want)
		assert.Lessf(t, rel, 1e-6, "sigmaSq=%v: got %v want %v", sigmaSq, got, want)
	}
}

func TestEntropyGradient(t *testing.T) {
	op, err := CachedEntropy(40, quad.Double)
	require.NoError(t, err)

	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	for _, sigmaSq := range []float64{0.3, 1, 2.5} {
		got := op.Gradient(sigmaSq, 1)
		want := fd.Derivative(op.Evaluate, sigmaSq, settings)
		rel := math.Abs(got-want) / math.Max(1e-8, math.Abs(want))
		assert.Lessf(t, rel, 1e-6, "sigmaSq=%v: got %v want %v", sigmaSq, got, want)
	}

	// Linear in the adjoint.
	assert.InDelta(t, 3*op.Gradient(1, 1), op.Gradient(1, 3), 1e-14)
}

func TestEntropyTracedRealMatchesEvaluate(t *testing.T) {
	op, err := CachedEntropy(25, quad.Traced)
	require.NoError(t, err)
	d := op.EvaluateTraced(dual.Number{Real: 0.8, Emag: 1})
	assert.InDelta(t, op.Evaluate(0.8), d.Real, 1e-12)
}
