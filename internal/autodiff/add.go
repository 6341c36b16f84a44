package autodiff

// addOp represents the addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type addOp struct {
	inputs []*Variable // [a, b]
	output *Variable   // a + b
}

func newAddOp(a, b, output *Variable) *addOp {
	return &addOp{
		inputs: []*Variable{a, b},
		output: output,
	}
}

// Backward computes input adjoints for addition: the gradient flows equally
// to both inputs.
func (op *addOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad, outputGrad}
}

// Inputs returns the input variables [a, b].
func (op *addOp) Inputs() []*Variable {
	return op.inputs
}

// Output returns the output variable a + b.
func (op *addOp) Output() *Variable {
	return op.output
}
