package autodiff

// logOp represents the natural logarithm operation: y = log(x).
//
// Backward pass:
//   - d(log(x))/dx = 1/x
//   - grad_input = grad_output / x
type logOp struct {
	input  *Variable // x
	output *Variable // log(x)
}

func newLogOp(input, output *Variable) *logOp {
	return &logOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input adjoint for log.
func (op *logOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad / op.input.Value}
}

// Inputs returns the input variable [x].
func (op *logOp) Inputs() []*Variable {
	return []*Variable{op.input}
}

// Output returns the output variable log(x).
func (op *logOp) Output() *Variable {
	return op.output
}
