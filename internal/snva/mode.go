// Package snva implements the quadrature operators of the skew-normal
// variational approximation: a closed-form mode/curvature solver, the two
// integrand families, the cached atomic integral operator with a
// hand-derived reverse rule, and the entropy-term operator used by the
// non-skew objective.
package snva

import (
	"math"

	"github.com/snva-ml/snva/internal/mathx"
)

// modeEps guards the divisions in the mode and curvature formulas. It is the
// double-precision machine epsilon, matching the asymptotic derivation.
const modeEps = 0x1p-52

// ModeHess returns the approximate mode of the skew-normal density with
// location mu, scale sigma > 0 and skewness rho, together with the curvature
// of its log density at that point.
//
// The mode comes from a closed-form asymptotic correction rather than a root
// search: with α = σρ, ν = √(2/π)·α/√(1+α²) is the shape adjustment, γ the
// third-order correction (4−π)/2 · ν³/(1−ν²)^{3/2}, and
//
//	mode = μ + σ·(ν − γ·√(1−ν²)/2 − sign(α)/2·exp(−2π/(sign(α)·α+ε)))
//
// The curvature is the exact second derivative of the log density at the
// approximate mode and is negative for every valid input, so the Laplace
// recentring 1/√(−curvature) is always defined.
//
// Both values are always computed in plain float64. Traced callers freeze
// them: the mode search stays outside the differentiated region.
func ModeHess(mu, sigma, rho float64) (mode, curvature float64) {
	alpha := sigma * rho
	aSign := mathx.SignLE(alpha)
	nu := math.Sqrt(2/math.Pi) * alpha / math.Sqrt(1+alpha*alpha)
	nuSq := nu * nu
	gamma := (4 - math.Pi) / 2 * nuSq * nu / math.Pow(1-nuSq, 1.5)

	mode = mu + sigma*(nu-gamma*math.Sqrt(1-nuSq)/2-
		aSign/2*math.Exp(-2*math.Pi/(aSign*alpha+modeEps)))

	z := rho * (mode - mu)
	phi := mathx.NormalPDF(z)
	Phi := mathx.NormalCDF(z)
	curvature = -1/(sigma*sigma) - rho*rho*phi*(z*Phi+phi)/(Phi*Phi+modeEps)

	return mode, curvature
}
