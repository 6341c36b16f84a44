package snva

import (
	"math"

	"gonum.org/v1/gonum/num/dual"

	"github.com/snva-ml/snva/internal/mathx"
)

// Family selects the integrand g(η) of the atomic integral operator. The set
// is closed: each family carries its own value and traced evaluation and the
// operator dispatches on the tag, so adding a family means adding a case
// here, not subclassing.
type Family int

const (
	// MLogit is the saturating-softplus integrand used for the
	// logistic/hazard-link integral: g(η) = log(1+e^η), clamped to η itself
	// once η ≥ 30 to avoid overflow.
	MLogit Family = iota
	// Probit is the negative-log-CDF integrand used for the probit-link
	// integral: g(η) = −log Φ(η).
	Probit

	numFamilies = iota
)

// softplusCutoff is where log(1+e^η) and η agree to double precision.
const softplusCutoff = 30.0

// String returns the family name used at the dispatch boundary.
func (f Family) String() string {
	switch f {
	case MLogit:
		return "mlogit"
	case Probit:
		return "probit"
	}
	return "unknown"
}

// Value evaluates g(η) on plain floats. The softplus saturation is an
// ordinary branch here; only traced evaluation needs the smooth conditional.
func (f Family) Value(eta float64) float64 {
	switch f {
	case MLogit:
		if eta >= softplusCutoff {
			return eta
		}
		return math.Log1p(math.Exp(eta))
	case Probit:
		return -mathx.NormalLogCDF(eta)
	}
	panic("snva: unknown integrand family")
}

// Dual evaluates g(η) on a dual number. The softplus saturation is expressed
// as a conditional select between the two closed forms rather than a
// control-flow branch on the traced value, so the chosen branch carries its
// derivative.
func (f Family) Dual(eta dual.Number) dual.Number {
	switch f {
	case MLogit:
		soft := dual.Log(dual.Add(dual.Number{Real: 1}, dual.Exp(eta)))
		return mathx.SelectGE(eta, softplusCutoff, eta, soft)
	case Probit:
		lp := mathx.NormalLogCDFDual(eta)
		return dual.Number{Real: -lp.Real, Emag: -lp.Emag}
	}
	panic("snva: unknown integrand family")
}
