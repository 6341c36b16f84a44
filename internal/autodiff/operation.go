package autodiff

// Variable is one scalar node in the recorded computation. Identity matters:
// the tape accumulates gradients per *Variable, so reusing a variable in
// several operations sums its adjoints.
type Variable struct {
	Value float64
}

// NewVariable wraps a plain value as a graph node.
func NewVariable(v float64) *Variable {
	return &Variable{Value: v}
}

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass and
// computes input adjoints during the backward pass.
//
// Custom operators (the quadrature integrals) implement this interface with
// hand-derived reverse rules and are recorded on the tape exactly like the
// built-in arithmetic.
type Operation interface {
	// Backward computes input adjoints given the output adjoint.
	// The returned slice matches Inputs() element for element.
	Backward(outputGrad float64) []float64

	// Inputs returns the input variables for this operation.
	Inputs() []*Variable

	// Output returns the output variable produced by this operation.
	Output() *Variable
}
