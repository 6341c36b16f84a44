// Copyright 2025 SNVA ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// scalar variables using a gradient tape.
//
// Elementary arithmetic is recorded through the tape's operation methods;
// composite operators such as the quadrature integrals register themselves
// as single tape nodes with analytic adjoint rules.
//
// Example:
//
//	tape := autodiff.NewGradientTape()
//	tape.StartRecording()
//
//	x := autodiff.NewVariable(2.0)
//	y := tape.Mul(x, x) // recorded on tape
//
//	grads := tape.Backward(y, 1.0)
//	_ = grads[x] // 4.0
package autodiff

import "github.com/snva-ml/snva/internal/autodiff"

// Variable is a scalar value tracked by the tape.
type Variable = autodiff.Variable

// NewVariable creates a variable holding the given value.
func NewVariable(value float64) *Variable {
	return autodiff.NewVariable(value)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// Operation is one recorded node with an adjoint rule. Composite operators
// implement it to appear on the tape as a single step.
type Operation = autodiff.Operation
