package snva

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeHessCurvatureAlwaysNegative(t *testing.T) {
	mus := []float64{-3, 0, 2.5}
	sigmas := []float64{0.1, 1, 5}
	rhos := []float64{-25, -2, -0.5, 0, 0.5, 2, 25}

	for _, mu := range mus {
		for _, sigma := range sigmas {
			for _, rho := range rhos {
				_, hess := ModeHess(mu, sigma, rho)
				assert.Negative(t, hess, "mu=%v sigma=%v rho=%v", mu, sigma, rho)
			}
		}
	}
}

func TestModeHessSymmetricCase(t *testing.T) {
	// With rho=0 the skew normal is a plain normal: the mode is the mean
	// and the curvature is -1/sigma².
	for _, sigma := range []float64{0.2, 1, 3} {
		mode, hess := ModeHess(1.5, sigma, 0)
		assert.InDelta(t, 1.5, mode, 1e-14)
		assert.InDelta(t, -1/(sigma*sigma), hess, 1e-14*(1/(sigma*sigma)))
	}
}

func TestModeHessSkewReflection(t *testing.T) {
	// Flipping the skewness reflects the mode offset about the location and
	// leaves the curvature unchanged (z = rho·(mode−mu) is invariant).
	for _, rho := range []float64{0.3, 1, 4} {
		modePos, hessPos := ModeHess(0.7, 1.3, rho)
		modeNeg, hessNeg := ModeHess(0.7, 1.3, -rho)
		assert.InDelta(t, modePos-0.7, -(modeNeg - 0.7), 1e-12, "rho=%v", rho)
		assert.InDelta(t, hessPos, hessNeg, 1e-12*math.Abs(hessPos), "rho=%v", rho)
	}
}

func TestModeHessModeShiftsWithSkew(t *testing.T) {
	// Positive skew pulls the mode above the location.
	mode, _ := ModeHess(0, 1, 2)
	assert.Greater(t, mode, 0.0)

	mode, _ = ModeHess(0, 1, -2)
	assert.Less(t, mode, 0.0)
}
