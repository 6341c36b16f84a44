package autodiff

// mulOp represents the multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type mulOp struct {
	inputs []*Variable // [a, b]
	output *Variable   // a * b
}

func newMulOp(a, b, output *Variable) *mulOp {
	return &mulOp{
		inputs: []*Variable{a, b},
		output: output,
	}
}

// Backward computes input adjoints for multiplication.
func (op *mulOp) Backward(outputGrad float64) []float64 {
	a, b := op.inputs[0], op.inputs[1]
	return []float64{outputGrad * b.Value, outputGrad * a.Value}
}

// Inputs returns the input variables [a, b].
func (op *mulOp) Inputs() []*Variable {
	return op.inputs
}

// Output returns the output variable a * b.
func (op *mulOp) Output() *Variable {
	return op.output
}
