// Package autodiff implements scalar reverse-mode automatic differentiation
// using a gradient tape.
//
// Architecture:
//   - GradientTape: records operations during the forward pass
//   - Operation interface: each op implements its own backward pass
//   - Reverse-mode AD: gradients via the chain rule, walking the tape backwards
//
// The tape's arithmetic methods compute eagerly and record the operation when
// recording is enabled. Operators with hand-derived reverse rules (the
// quadrature integrals) implement Operation themselves and are recorded with
// Record, making them opaque atomic nodes to the rest of the graph.
//
// Usage:
//
//	tape := autodiff.NewGradientTape()
//	tape.StartRecording()
//	x := autodiff.NewVariable(2)
//	y := tape.Mul(x, x) // y = x²
//	grads := tape.Backward(y, 1)
//	fmt.Println(grads[x]) // dy/dx = 2x = 4
package autodiff

import "math"

// Add returns a+b and records the operation.
func (t *GradientTape) Add(a, b *Variable) *Variable {
	out := &Variable{Value: a.Value + b.Value}
	if t.recording {
		t.Record(newAddOp(a, b, out))
	}
	return out
}

// Sub returns a-b and records the operation.
func (t *GradientTape) Sub(a, b *Variable) *Variable {
	out := &Variable{Value: a.Value - b.Value}
	if t.recording {
		t.Record(newSubOp(a, b, out))
	}
	return out
}

// Mul returns a*b and records the operation.
func (t *GradientTape) Mul(a, b *Variable) *Variable {
	out := &Variable{Value: a.Value * b.Value}
	if t.recording {
		t.Record(newMulOp(a, b, out))
	}
	return out
}

// Div returns a/b and records the operation.
func (t *GradientTape) Div(a, b *Variable) *Variable {
	out := &Variable{Value: a.Value / b.Value}
	if t.recording {
		t.Record(newDivOp(a, b, out))
	}
	return out
}

// Exp returns exp(x) and records the operation.
func (t *GradientTape) Exp(x *Variable) *Variable {
	out := &Variable{Value: math.Exp(x.Value)}
	if t.recording {
		t.Record(newExpOp(x, out))
	}
	return out
}

// Log returns log(x) and records the operation.
//
// Input values must be positive; the derivative 1/x is taken at the
// recorded input.
func (t *GradientTape) Log(x *Variable) *Variable {
	out := &Variable{Value: math.Log(x.Value)}
	if t.recording {
		t.Record(newLogOp(x, out))
	}
	return out
}
