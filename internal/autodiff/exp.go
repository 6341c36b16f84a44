package autodiff

// expOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * output
type expOp struct {
	input  *Variable // x
	output *Variable // exp(x)
}

func newExpOp(input, output *Variable) *expOp {
	return &expOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input adjoint for exp.
//
// Since d(exp(x))/dx = exp(x), and we already have exp(x) as output:
// grad_input = grad_output * output.
func (op *expOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad * op.output.Value}
}

// Inputs returns the input variable [x].
func (op *expOp) Inputs() []*Variable {
	return []*Variable{op.input}
}

// Output returns the output variable exp(x).
func (op *expOp) Output() *Variable {
	return op.output
}
