package snva

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/dual"

	"github.com/snva-ml/snva/internal/mathx"
	"github.com/snva-ml/snva/internal/parallel"
	"github.com/snva-ml/snva/internal/quad"
)

// ErrUnsupportedOrder reports a forward or reverse sweep requested at a
// derivative order the operators do not implement. Only zero-order forward
// evaluation and first-order reverse (derivative order 0 in CppAD terms) are
// supported.
var ErrUnsupportedOrder = errors.New("snva: derivative order not supported")

// IntegralOp is the cached atomic integral operator: one 3→1 graph node
// evaluating
//
//	(2/(σ√(2π))) ∫ exp(−(z−μ)²/(2σ²)) · Φ(ρ(z−μ)) · g(z) dz
//
// by adaptive Gauss–Hermite quadrature recentred at the approximate mode of
// the skew-normal density. One instance exists per (order, family,
// precision) and lives for the remainder of the process; graphs recorded
// earlier may still reference it, so instances are never rebuilt or evicted.
type IntegralOp struct {
	fam   Family
	order int
	prec  quad.Precision

	// ref holds the reference (Double) precision rule used for the
	// mode-centred evaluation; rule holds the operator's own precision's
	// nodes, used by the reverse sweep and traced evaluation. The two
	// coincide when prec == quad.Double.
	ref  *quad.Rule
	rule *quad.Rule
}

// integralCache holds the one instance per key. Lazily initialized under the
// same warm-up discipline as the rule cache.
var integralCache [numFamilies][quad.NumPrecisions][quad.MaxOrder]*IntegralOp

// CachedIntegral returns the operator instance for the given quadrature
// order, integrand family, and precision plane, constructing it on first
// use. Out-of-range orders fail with quad.ErrInvalidOrder; a first use
// inside a parallel region fails with quad.ErrParallelFirstUse.
func CachedIntegral(order int, fam Family, prec quad.Precision) (*IntegralOp, error) {
	if order < 1 || order > quad.MaxOrder {
		return nil, fmt.Errorf("%w: integral operator order=%d", quad.ErrInvalidOrder, order)
	}
	if op := integralCache[fam][prec][order-1]; op != nil {
		return op, nil
	}
	if parallel.InParallel() {
		return nil, fmt.Errorf("%w: integral operator (%s, order %d, %s)",
			quad.ErrParallelFirstUse, fam, order, prec)
	}

	ref, err := quad.Get(order, quad.Double)
	if err != nil {
		return nil, err
	}
	rule := ref
	if prec != quad.Double {
		if rule, err = quad.Get(order, prec); err != nil {
			return nil, err
		}
	}

	op := &IntegralOp{fam: fam, order: order, prec: prec, ref: ref, rule: rule}
	integralCache[fam][prec][order-1] = op
	return op, nil
}

// Family returns the operator's integrand family.
func (op *IntegralOp) Family() Family { return op.fam }

// Order returns the operator's quadrature order.
func (op *IntegralOp) Order() int { return op.order }

// Forward runs the forward sweep at the given derivative order. Only
// derivative order zero (plain evaluation) is implemented; higher orders
// fail with ErrUnsupportedOrder.
func (op *IntegralOp) Forward(derivOrder int, mu, sigma, rho float64) (float64, error) {
	if derivOrder != 0 {
		return 0, fmt.Errorf("%w: forward order %d", ErrUnsupportedOrder, derivOrder)
	}
	return op.value(mu, sigma, rho), nil
}

// Evaluate is Forward at derivative order zero.
func (op *IntegralOp) Evaluate(mu, sigma, rho float64) float64 {
	return op.value(mu, sigma, rho)
}

// value computes the adaptive quadrature sum in reference precision: the
// nodes are recentred at the approximate mode with spread λ = 1/√(−H), and
// each node contributes w·g(z)·exp(x² − (z−μ)²/(2σ²))·Φ(ρ(z−μ)), the whole
// sum scaled by 2/√π · λ/σ.
func (op *IntegralOp) value(mu, sigma, rho float64) float64 {
	mode, hess := ModeHess(mu, sigma, rho)
	lambda := 1 / math.Sqrt(-hess)
	sigmaSq := sigma * sigma
	mult := math.Sqrt2 * lambda

	var sum float64
	for i, x := range op.ref.X {
		z := mode + mult*x
		d := z - mu
		sum += op.ref.W[i] * op.fam.Value(z) *
			math.Exp(x*x-d*d/(2*sigmaSq)) * mathx.NormalCDF(rho*d)
	}
	return 2 / math.SqrtPi * lambda / sigma * sum
}

// EvaluateTraced evaluates the operator on dual numbers. The mode and
// curvature are computed from the primal values only and treated as frozen
// constants, exactly as the reverse sweep does: derivatives flow through the
// explicit μ, σ, ρ occurrences in the summand and nowhere else. The
// operator's own precision's nodes are used.
func (op *IntegralOp) EvaluateTraced(mu, sigma, rho dual.Number) dual.Number {
	mode, hess := ModeHess(mu.Real, sigma.Real, rho.Real)
	lambda := 1 / math.Sqrt(-hess)
	mult := math.Sqrt2 * lambda

	twoSigmaSq := dual.Mul(dual.Number{Real: 2}, dual.Mul(sigma, sigma))
	sum := dual.Number{}
	for i, x := range op.rule.X {
		z := mode + mult*x // frozen: a constant of the sweep
		d := dual.Sub(dual.Number{Real: z}, mu)
		expArg := dual.Sub(dual.Number{Real: x * x},
			dual.Mul(dual.Mul(d, d), dual.Inv(twoSigmaSq)))
		term := dual.Mul(dual.Exp(expArg), mathx.NormalCDFDual(dual.Mul(rho, d)))
		// g(z) is a constant too: z does not move when the mode is frozen.
		term = dual.Mul(dual.Number{Real: op.rule.W[i] * op.fam.Value(z)}, term)
		sum = dual.Add(sum, term)
	}
	lead := dual.Mul(dual.Number{Real: 2 / math.SqrtPi * lambda}, dual.Inv(sigma))
	return dual.Mul(lead, sum)
}

// Reverse runs the reverse sweep at the given derivative order, producing
// the three input adjoints scaled by the incoming output adjoint. Only
// first-order reverse (derivative order zero) is implemented.
//
// The partials are the analytic derivatives of the quadrature sum with the
// mode and curvature held fixed; the dependence of the recentring on
// (μ, σ, ρ) is deliberately not differentiated. This is an approximation of
// the exact gradient of the quadrature formula — and an excellent one once
// the rule has converged, because the converged sum no longer depends on
// where it was recentred.
func (op *IntegralOp) Reverse(derivOrder int, mu, sigma, rho, adjoint float64) (dmu, dsigma, drho float64, err error) {
	if derivOrder != 0 {
		return 0, 0, 0, fmt.Errorf("%w: reverse order %d", ErrUnsupportedOrder, derivOrder)
	}

	mode, hess := ModeHess(mu, sigma, rho)
	lambda := 1 / math.Sqrt(-hess)
	sigmaSq := sigma * sigma
	mult := math.Sqrt2 * lambda
	lead := 2 / math.SqrtPi * lambda / sigma

	// Per-node pieces, with z (and therefore g(z)) constant:
	//   E = exp(x² − d²/(2σ²)),  P = Φ(ρd),  d = z − μ
	//   ∂E/∂μ = E·d/σ²   ∂E/∂σ = E·d²/σ³   ∂P/∂μ = −ρ·φ(ρd)   ∂P/∂ρ = d·φ(ρd)
	// plus the σ in the leading factor.
	var sum, dMu, dSigma, dRho float64
	for i, x := range op.rule.X {
		z := mode + mult*x
		d := z - mu
		w := op.rule.W[i]
		g := op.fam.Value(z)
		e := math.Exp(x*x - d*d/(2*sigmaSq))
		p := mathx.NormalCDF(rho * d)
		q := mathx.NormalPDF(rho * d)

		sum += w * g * e * p
		dMu += w * g * e * (d/sigmaSq*p - rho*q)
		dSigma += w * g * e * p * d * d
		dRho += w * g * e * q * d
	}

	value := lead * sum
	dmu = adjoint * lead * dMu
	dsigma = adjoint * (-value/sigma + lead*dSigma/(sigmaSq*sigma))
	drho = adjoint * lead * dRho
	return dmu, dsigma, drho, nil
}

// Gradient is Reverse at derivative order zero.
func (op *IntegralOp) Gradient(mu, sigma, rho, adjoint float64) (dmu, dsigma, drho float64) {
	dmu, dsigma, drho, _ = op.Reverse(0, mu, sigma, rho, adjoint)
	return dmu, dsigma, drho
}

// DependsOn is the operator's sparsity pattern: the output may depend on
// every input whenever any input carries a derivative. Coarse, but the
// operator is dense in practice.
func (op *IntegralOp) DependsOn(live [3]bool) bool {
	return live[0] || live[1] || live[2]
}

// EvaluateOffset evaluates the integral reindexed by a covariate offset k
// using the family's closed-form reparameterization: the mlogit integral
// shifts the location, the probit integral reflects it and negates the
// skewness. The probit identity
//
//	EvaluateOffset(μ, σ, ρ, k) == Evaluate(k−μ, σ, −ρ)
//
// holds exactly, bit for bit.
func (op *IntegralOp) EvaluateOffset(mu, sigma, rho, k float64) float64 {
	switch op.fam {
	case MLogit:
		return op.value(mu+k, sigma, rho)
	case Probit:
		return op.value(k-mu, sigma, -rho)
	}
	panic("snva: unknown integrand family")
}
