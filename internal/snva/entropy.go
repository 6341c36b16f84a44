package snva

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/dual"

	"github.com/snva-ml/snva/internal/mathx"
	"github.com/snva-ml/snva/internal/parallel"
	"github.com/snva-ml/snva/internal/quad"
)

// EntropyOp is the cached single-argument operator computing
//
//	f(σ²) = ∫ 2·φ(z; σ²)·Φ(z)·log Φ(z) dz
//
// by a non-adaptive Gauss–Hermite substitution with a fixed unit auxiliary
// scale: with γ = 1 the change of variable z = x·√2·γσ/√(γ²+σ²) turns the
// integral into
//
//	(2γ/√(π(γ²+σ²))) Σ wᵢ · exp(xᵢ'²/(2γ²))·Φ(xᵢ')·log Φ(xᵢ')
//
// at the scaled nodes xᵢ'. It follows the same cache-lifetime, order
// validity, and warm-up rules as IntegralOp.
type EntropyOp struct {
	order int
	prec  quad.Precision
	rule  *quad.Rule
}

var entropyCache [quad.NumPrecisions][quad.MaxOrder]*EntropyOp

// CachedEntropy returns the entropy-term operator for the given order and
// precision plane, constructing it on first use under the warm-up contract.
func CachedEntropy(order int, prec quad.Precision) (*EntropyOp, error) {
	if order < 1 || order > quad.MaxOrder {
		return nil, fmt.Errorf("%w: entropy operator order=%d", quad.ErrInvalidOrder, order)
	}
	if op := entropyCache[prec][order-1]; op != nil {
		return op, nil
	}
	if parallel.InParallel() {
		return nil, fmt.Errorf("%w: entropy operator (order %d, %s)",
			quad.ErrParallelFirstUse, order, prec)
	}

	rule, err := quad.Get(order, prec)
	if err != nil {
		return nil, err
	}
	op := &EntropyOp{order: order, prec: prec, rule: rule}
	entropyCache[prec][order-1] = op
	return op, nil
}

// Order returns the operator's quadrature order.
func (op *EntropyOp) Order() int { return op.order }

// Forward runs the forward sweep; only derivative order zero is implemented.
func (op *EntropyOp) Forward(derivOrder int, sigmaSq float64) (float64, error) {
	if derivOrder != 0 {
		return 0, fmt.Errorf("%w: forward order %d", ErrUnsupportedOrder, derivOrder)
	}
	return op.value(sigmaSq), nil
}

// Evaluate is Forward at derivative order zero.
func (op *EntropyOp) Evaluate(sigmaSq float64) float64 {
	return op.value(sigmaSq)
}

func (op *EntropyOp) value(sigmaSq float64) float64 {
	multSum := 2 / math.SqrtPi / math.Sqrt(sigmaSq+1)
	mult := multSum * math.Sqrt(sigmaSq) / math.Sqrt(2/math.Pi)

	var sum float64
	for i, x := range op.rule.X {
		xi := x * mult
		sum += op.rule.W[i] * math.Exp(xi*xi/2) *
			mathx.NormalCDF(xi) * mathx.NormalLogCDF(xi)
	}
	return multSum * sum
}

// EvaluateTraced evaluates the operator on a dual σ². Unlike the adaptive
// integral there is nothing to freeze: the substitution is closed-form in
// σ², so the dual derivative is the exact derivative of the quadrature sum.
func (op *EntropyOp) EvaluateTraced(sigmaSq dual.Number) dual.Number {
	onePlus := dual.Add(sigmaSq, dual.Number{Real: 1})
	multSum := dual.Mul(dual.Number{Real: 2 / math.SqrtPi}, dual.Inv(dual.Sqrt(onePlus)))
	mult := dual.Mul(dual.Number{Real: 1 / math.Sqrt(2/math.Pi)},
		dual.Mul(multSum, dual.Sqrt(sigmaSq)))

	sum := dual.Number{}
	for i, x := range op.rule.X {
		xi := dual.Mul(dual.Number{Real: x}, mult)
		term := dual.Mul(dual.Exp(dual.Mul(dual.Number{Real: 0.5}, dual.Mul(xi, xi))),
			dual.Mul(mathx.NormalCDFDual(xi), mathx.NormalLogCDFDual(xi)))
		sum = dual.Add(sum, dual.Mul(dual.Number{Real: op.rule.W[i]}, term))
	}
	return dual.Mul(multSum, sum)
}

// Reverse runs the reverse sweep via the dual forward path; only first-order
// reverse (derivative order zero) is implemented.
func (op *EntropyOp) Reverse(derivOrder int, sigmaSq, adjoint float64) (float64, error) {
	if derivOrder != 0 {
		return 0, fmt.Errorf("%w: reverse order %d", ErrUnsupportedOrder, derivOrder)
	}
	d := op.EvaluateTraced(dual.Number{Real: sigmaSq, Emag: 1})
	return adjoint * d.Emag, nil
}

// Gradient is Reverse at derivative order zero.
func (op *EntropyOp) Gradient(sigmaSq, adjoint float64) float64 {
	g, _ := op.Reverse(0, sigmaSq, adjoint)
	return g
}

// DependsOn is the operator's sparsity pattern for its single input.
func (op *EntropyOp) DependsOn(live bool) bool { return live }
