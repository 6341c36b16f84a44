package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/dual"
)

func TestNormalCDFKnownValues(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-15)
	assert.InDelta(t, 0.8413447460685429, NormalCDF(1), 1e-12)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), NormalPDF(0), 1e-15)
}

func TestNormalLogCDFMidRange(t *testing.T) {
	for _, x := range []float64{-8, -4, -1, 0, 0.5, 3} {
		want := math.Log(NormalCDF(x))
		assert.InDelta(t, want, NormalLogCDF(x), 1e-12, "x=%v", x)
	}
}

// Below the switch point erfc is still representable, so the asymptotic
// branch can be checked directly against it.
func TestNormalLogCDFTailAgreesWithErfc(t *testing.T) {
	for _, x := range []float64{-12.5, -15, -20, -25} {
		want := math.Log(0.5 * math.Erfc(-x / math.Sqrt2))
		got := NormalLogCDF(x)
		assert.True(t, scalar.EqualWithinRel(got, want, 1e-10),
			"x=%v got=%v want=%v", x, got, want)
	}
}

func TestNormalLogCDFContinuousAtSwitch(t *testing.T) {
	lo := NormalLogCDF(logCDFTail - 1e-9)
	hi := NormalLogCDF(logCDFTail + 1e-9)
	assert.InDelta(t, hi, lo, 1e-6)
}

func TestNormalLogCDFDeepTailFinite(t *testing.T) {
	got := NormalLogCDF(-300)
	require.False(t, math.IsInf(got, 0))
	// Leading term dominates: -x²/2.
	assert.InDelta(t, -45000, got, 10)
}

func TestNormalCDFDualDerivative(t *testing.T) {
	for _, x := range []float64{-2, 0, 1.5} {
		d := NormalCDFDual(dual.Number{Real: x, Emag: 1})
		assert.InDelta(t, NormalPDF(x), d.Emag, 1e-14, "x=%v", x)
	}
}

func TestNormalLogCDFDualDerivative(t *testing.T) {
	for _, x := range []float64{-6, -1, 0, 2} {
		d := NormalLogCDFDual(dual.Number{Real: x, Emag: 1})
		want := fd.Derivative(NormalLogCDF, x, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		rel := math.Abs(d.Emag-want) / math.Abs(want)
		assert.Less(t, rel, 1e-6, "x=%v", x)
	}
	// Far tail: d/dx log Φ(x) → -x.
	d := NormalLogCDFDual(dual.Number{Real: -40, Emag: 1})
	assert.InDelta(t, 40, d.Emag, 0.1)
}

func TestSelectGE(t *testing.T) {
	hi := dual.Number{Real: 1, Emag: 2}
	lo := dual.Number{Real: 3, Emag: 4}
	assert.Equal(t, hi, SelectGE(dual.Number{Real: 30}, 30, hi, lo))
	assert.Equal(t, lo, SelectGE(dual.Number{Real: 29.999}, 30, hi, lo))
}

func TestSignLE(t *testing.T) {
	assert.Equal(t, -1.0, SignLE(0))
	assert.Equal(t, -1.0, SignLE(-3))
	assert.Equal(t, 1.0, SignLE(1e-300))
}
