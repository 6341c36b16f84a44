package snva

import "github.com/snva-ml/snva/internal/autodiff"

// integralNode is the tape recording of one atomic integral application:
// a 3→1 node whose backward rule is the operator's hand-derived reverse
// sweep. The node references its cached operator; the operator outlives
// every tape that recorded it.
type integralNode struct {
	op     *IntegralOp
	inputs []*autodiff.Variable // [mu, sigma, rho]
	output *autodiff.Variable
}

// Backward computes the three input adjoints from the output adjoint.
func (n *integralNode) Backward(outputGrad float64) []float64 {
	dmu, dsigma, drho := n.op.Gradient(
		n.inputs[0].Value, n.inputs[1].Value, n.inputs[2].Value, outputGrad)
	return []float64{dmu, dsigma, drho}
}

// Inputs returns the input variables [mu, sigma, rho].
func (n *integralNode) Inputs() []*autodiff.Variable { return n.inputs }

// Output returns the node's output variable.
func (n *integralNode) Output() *autodiff.Variable { return n.output }

// Apply evaluates the operator at the given variables and records the atomic
// node on the tape. To the surrounding graph the node is opaque: its
// gradient is supplied by Reverse, not derived from the recorded
// computation.
func (op *IntegralOp) Apply(tape *autodiff.GradientTape, mu, sigma, rho *autodiff.Variable) *autodiff.Variable {
	out := autodiff.NewVariable(op.value(mu.Value, sigma.Value, rho.Value))
	if tape.IsRecording() {
		tape.Record(&integralNode{
			op:     op,
			inputs: []*autodiff.Variable{mu, sigma, rho},
			output: out,
		})
	}
	return out
}

// entropyNode is the tape recording of one entropy-term application, arity
// 1→1.
type entropyNode struct {
	op     *EntropyOp
	input  *autodiff.Variable // sigma²
	output *autodiff.Variable
}

// Backward computes the input adjoint from the output adjoint.
func (n *entropyNode) Backward(outputGrad float64) []float64 {
	return []float64{n.op.Gradient(n.input.Value, outputGrad)}
}

// Inputs returns the input variable [sigma²].
func (n *entropyNode) Inputs() []*autodiff.Variable {
	return []*autodiff.Variable{n.input}
}

// Output returns the node's output variable.
func (n *entropyNode) Output() *autodiff.Variable { return n.output }

// Apply evaluates the entropy term at the given variable and records the
// atomic node on the tape.
func (op *EntropyOp) Apply(tape *autodiff.GradientTape, sigmaSq *autodiff.Variable) *autodiff.Variable {
	out := autodiff.NewVariable(op.value(sigmaSq.Value))
	if tape.IsRecording() {
		tape.Record(&entropyNode{op: op, input: sigmaSq, output: out})
	}
	return out
}
