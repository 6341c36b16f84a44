// Copyright 2025 SNVA ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package integral exposes the skew-normal expectation operators.
//
// An IntegralOp computes E[g(Z)] for a skew-normal Z with direct parameters
// (mu, sigma, rho) by adaptive Gauss-Hermite quadrature recentred at the
// density's mode. The link function g is selected by Family. An EntropyOp
// computes the entropy correction term of the variational lower bound.
//
// Operators are cached per (order, family, precision) and must be warmed
// up before use in parallel regions, see Warmup.
//
// Example:
//
//	fam, err := integral.ByName("mlogit")
//	if err != nil {
//	    return err
//	}
//	op, err := integral.Cached(40, fam, integral.Double)
//	if err != nil {
//	    return err
//	}
//	v := op.Evaluate(0.5, 1.2, -0.8)
//	dmu, dsigma, drho := op.Gradient(0.5, 1.2, -0.8, 1.0)
package integral

import (
	"errors"
	"fmt"

	"github.com/snva-ml/snva/internal/parallel"
	"github.com/snva-ml/snva/internal/quad"
	"github.com/snva-ml/snva/internal/snva"
)

// Family selects the link function under the expectation.
type Family = snva.Family

const (
	// MLogit is the multinomial-logit link softplus(eta).
	MLogit = snva.MLogit
	// Probit is the probit link -log Phi(eta).
	Probit = snva.Probit
)

// Precision selects the evaluation plane an operator is cached for.
type Precision = quad.Precision

const (
	// Double is the plain float64 plane.
	Double = quad.Double
	// Traced is the plane used while recording derivatives.
	Traced = quad.Traced
)

// ErrUnknownFamily reports a family name with no registered link function.
var ErrUnknownFamily = errors.New("integral: unknown family")

// ErrUnsupportedOrder reports a derivative order the operators cannot
// produce. Only order zero (values) and the adjoint rule are implemented.
var ErrUnsupportedOrder = snva.ErrUnsupportedOrder

// IntegralOp is a cached mode-recentred quadrature operator for one family.
type IntegralOp = snva.IntegralOp

// EntropyOp is a cached quadrature operator for the entropy term.
type EntropyOp = snva.EntropyOp

// ByName resolves a family from its wire name, "mlogit" or "probit".
func ByName(name string) (Family, error) {
	switch name {
	case "mlogit":
		return MLogit, nil
	case "probit":
		return Probit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}

// Cached returns the memoized integral operator for the given key, building
// it on first use.
func Cached(order int, fam Family, prec Precision) (*IntegralOp, error) {
	return snva.CachedIntegral(order, fam, prec)
}

// CachedEntropy returns the memoized entropy operator for the given key.
func CachedEntropy(order int, prec Precision) (*EntropyOp, error) {
	return snva.CachedEntropy(order, prec)
}

// ModeHess returns the mode of the skew-normal density with direct
// parameters (mu, sigma, rho) and the curvature of its log density at the
// mode. The curvature is strictly negative.
func ModeHess(mu, sigma, rho float64) (mode, curvature float64) {
	return snva.ModeHess(mu, sigma, rho)
}

// Evaluate computes E[g(Z)] for one skew-normal parameter triple without
// keeping the operator handle around.
func Evaluate(fam Family, order int, mu, sigma, rho float64) (float64, error) {
	op, err := snva.CachedIntegral(order, fam, Double)
	if err != nil {
		return 0, err
	}
	return op.Evaluate(mu, sigma, rho), nil
}

// Gradient computes the adjoint-weighted partials of E[g(Z)] with respect
// to (mu, sigma, rho).
func Gradient(fam Family, order int, mu, sigma, rho, adjoint float64) (dmu, dsigma, drho float64, err error) {
	op, err := snva.CachedIntegral(order, fam, Double)
	if err != nil {
		return 0, 0, 0, err
	}
	dmu, dsigma, drho = op.Gradient(mu, sigma, rho, adjoint)
	return dmu, dsigma, drho, nil
}

// Entropy computes the entropy correction term for one marginal variance.
func Entropy(order int, sigmaSq float64) (float64, error) {
	op, err := snva.CachedEntropy(order, Double)
	if err != nil {
		return 0, err
	}
	return op.Evaluate(sigmaSq), nil
}

// ErrBatchShape reports batch parameter slices of unequal length.
var ErrBatchShape = errors.New("integral: batch parameter slices differ in length")

// EvaluateBatch evaluates the operator over per-group parameter triples,
// splitting the groups across workers. The operator must already be cached;
// call Warmup with its order first.
func EvaluateBatch(op *IntegralOp, mu, sigma, rho []float64) ([]float64, error) {
	if len(sigma) != len(mu) || len(rho) != len(mu) {
		return nil, fmt.Errorf("%w: %d, %d, %d", ErrBatchShape, len(mu), len(sigma), len(rho))
	}
	out := make([]float64, len(mu))
	parallel.For(len(mu), func(i int) {
		out[i] = op.Evaluate(mu[i], sigma[i], rho[i])
	}, parallel.DefaultConfig())
	return out, nil
}

// Warmup populates the operator caches for the given orders on every
// precision plane and for both families. Call it before parallel regions.
func Warmup(orders ...int) error {
	for _, prec := range []Precision{Double, Traced} {
		for _, n := range orders {
			for _, fam := range []Family{MLogit, Probit} {
				if _, err := snva.CachedIntegral(n, fam, prec); err != nil {
					return err
				}
			}
			if _, err := snva.CachedEntropy(n, prec); err != nil {
				return err
			}
		}
	}
	return nil
}
