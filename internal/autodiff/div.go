package autodiff

// divOp represents the division operation: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b
//   - d(a/b)/db = -a/b²
type divOp struct {
	inputs []*Variable // [a, b]
	output *Variable   // a / b
}

func newDivOp(a, b, output *Variable) *divOp {
	return &divOp{
		inputs: []*Variable{a, b},
		output: output,
	}
}

// Backward computes input adjoints for division.
func (op *divOp) Backward(outputGrad float64) []float64 {
	a, b := op.inputs[0], op.inputs[1]
	return []float64{
		outputGrad / b.Value,
		-outputGrad * a.Value / (b.Value * b.Value),
	}
}

// Inputs returns the input variables [a, b].
func (op *divOp) Inputs() []*Variable {
	return op.inputs
}

// Output returns the output variable a / b.
func (op *divOp) Output() *Variable {
	return op.output
}
