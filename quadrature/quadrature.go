// Copyright 2025 SNVA ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package quadrature exposes the cached Gauss-Hermite rules used by the
// integral operators.
//
// Rules are built once per (order, precision) pair and memoized for the
// lifetime of the process. The cache is deliberately unsynchronized: warm
// the orders you need with Warmup before entering parallel regions.
//
// Example:
//
//	if err := quadrature.Warmup(quadrature.Double, 20, 40); err != nil {
//	    return err
//	}
//	rule, _ := quadrature.Get(40, quadrature.Double)
//	for i, x := range rule.X {
//	    _ = rule.W[i] * math.Exp(x*x) // classic weights need the exp(x²) factor
//	}
package quadrature

import "github.com/snva-ml/snva/internal/quad"

// Rule holds the nodes and classic weights of a Gauss-Hermite rule.
type Rule = quad.Rule

// Precision selects which evaluation plane a cached rule serves.
type Precision = quad.Precision

const (
	// Double is the plain float64 plane.
	Double = quad.Double
	// Traced is the plane used while recording derivatives.
	Traced = quad.Traced
)

// MaxOrder is the largest supported rule order.
const MaxOrder = quad.MaxOrder

var (
	// ErrInvalidOrder reports an order outside [1, MaxOrder].
	ErrInvalidOrder = quad.ErrInvalidOrder
	// ErrParallelFirstUse reports a cache miss inside a parallel region.
	ErrParallelFirstUse = quad.ErrParallelFirstUse
)

// Get returns the cached rule of the given order, building it on first use.
func Get(order int, prec Precision) (*Rule, error) {
	return quad.Get(order, prec)
}

// Warmup builds and caches the given orders ahead of parallel use.
func Warmup(prec Precision, orders ...int) error {
	return quad.Warmup(prec, orders...)
}
