package autodiff

// subOp represents the subtraction operation: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type subOp struct {
	inputs []*Variable // [a, b]
	output *Variable   // a - b
}

func newSubOp(a, b, output *Variable) *subOp {
	return &subOp{
		inputs: []*Variable{a, b},
		output: output,
	}
}

// Backward computes input adjoints for subtraction.
func (op *subOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad, -outputGrad}
}

// Inputs returns the input variables [a, b].
func (op *subOp) Inputs() []*Variable {
	return op.inputs
}

// Output returns the output variable a - b.
func (op *subOp) Output() *Variable {
	return op.output
}
