// Package mathx supplies the standard-normal helpers the quadrature engine
// leans on: density, CDF, a log-CDF that stays finite far into the left
// tail, and dual-number variants for traced evaluation paths.
package mathx

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// NormalPDF returns the standard normal density φ(x).
func NormalPDF(x float64) float64 { return stdNormal.Prob(x) }

// NormalCDF returns the standard normal CDF Φ(x).
func NormalCDF(x float64) float64 { return stdNormal.CDF(x) }

// logCDFTail is where NormalLogCDF switches from erfc to the asymptotic
// expansion. erfc is still accurate well past this point; the series keeps
// the next neglected term below 1e-8.
const logCDFTail = -12.0

// NormalLogCDF returns log Φ(x) without underflowing in the left tail.
// For x ≤ logCDFTail it uses the asymptotic expansion
//
//	log Φ(x) = -x²/2 - log(-x·√(2π)) + log1p(-1/x² + 3/x⁴ - 15/x⁶ + 105/x⁸)
//
// which distuv's CDF cannot provide (Φ underflows to 0 below ≈ -38).
func NormalLogCDF(x float64) float64 {
	if x > logCDFTail {
		return math.Log(0.5 * math.Erfc(-x/math.Sqrt2))
	}
	xsq := x * x
	series := -1/xsq + 3/(xsq*xsq) - 15/(xsq*xsq*xsq) + 105/(xsq*xsq*xsq*xsq)
	return -xsq/2 - math.Log(-x) - math.Log(2*math.Pi)/2 + math.Log1p(series)
}

// NormalCDFDual is Φ applied to a dual number: d/dx Φ = φ.
func NormalCDFDual(x dual.Number) dual.Number {
	return dual.Number{
		Real: NormalCDF(x.Real),
		Emag: x.Emag * NormalPDF(x.Real),
	}
}

// NormalLogCDFDual is log Φ applied to a dual number. The derivative φ/Φ is
// formed in log space so it survives the far left tail.
func NormalLogCDFDual(x dual.Number) dual.Number {
	logPhi := NormalLogCDF(x.Real)
	return dual.Number{
		Real: logPhi,
		Emag: x.Emag * math.Exp(stdNormal.LogProb(x.Real)-logPhi),
	}
}

// SelectGE is a piecewise conditional on dual numbers: it returns ifTrue
// when x ≥ threshold and ifFalse otherwise, deciding on the primal value
// only. Traced code must use this instead of branching on a dual so both
// closed forms stay expressible; the selected branch carries its own
// derivative.
func SelectGE(x dual.Number, threshold float64, ifTrue, ifFalse dual.Number) dual.Number {
	if x.Real >= threshold {
		return ifTrue
	}
	return ifFalse
}

// SignLE returns -1 when x ≤ 0 and +1 otherwise, mirroring a conditional
// select rather than math.Signbit so that zero maps to the negative branch.
func SignLE(x float64) float64 {
	if x <= 0 {
		return -1
	}
	return 1
}
