package snva

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snva-ml/snva/internal/autodiff"
	"github.com/snva-ml/snva/internal/quad"
)

// A small objective assembled on the tape: two integral contributions plus
// an entropy term, all sharing the sigma variable. The tape gradient must be
// the sum of the operators' own gradients by the chain rule.
func TestApplyRecordsAtomicNodes(t *testing.T) {
	mlogit, err := CachedIntegral(30, MLogit, quad.Double)
	require.NoError(t, err)
	probit, err := CachedIntegral(30, Probit, quad.Double)
	require.NoError(t, err)
	entropy, err := CachedEntropy(30, quad.Double)
	require.NoError(t, err)

	tape := autodiff.NewGradientTape()
	tape.StartRecording()

	mu := autodiff.NewVariable(0.4)
	sigma := autodiff.NewVariable(1.2)
	rho := autodiff.NewVariable(-0.6)

	a := mlogit.Apply(tape, mu, sigma, rho)
	b := probit.Apply(tape, mu, sigma, rho)
	sigmaSq := tape.Mul(sigma, sigma)
	c := entropy.Apply(tape, sigmaSq)
	total := tape.Add(tape.Add(a, b), c)

	wantValue := mlogit.Evaluate(0.4, 1.2, -0.6) +
		probit.Evaluate(0.4, 1.2, -0.6) + entropy.Evaluate(1.2*1.2)
	require.InDelta(t, wantValue, total.Value, 1e-12)

	grads := tape.Backward(total, 1)

	aMu, aSigma, aRho := mlogit.Gradient(0.4, 1.2, -0.6, 1)
	bMu, bSigma, bRho := probit.Gradient(0.4, 1.2, -0.6, 1)
	cSigma := 2 * 1.2 * entropy.Gradient(1.2*1.2, 1)

	assert.InDelta(t, aMu+bMu, grads[mu], 1e-12*math.Max(1, math.Abs(aMu+bMu)))
	assert.InDelta(t, aSigma+bSigma+cSigma, grads[sigma],
		1e-10*math.Max(1, math.Abs(aSigma+bSigma+cSigma)))
	assert.InDelta(t, aRho+bRho, grads[rho], 1e-12*math.Max(1, math.Abs(aRho+bRho)))
}

func TestApplyWithoutRecording(t *testing.T) {
	op, err := CachedIntegral(15, MLogit, quad.Double)
	require.NoError(t, err)

	tape := autodiff.NewGradientTape()
	mu := autodiff.NewVariable(0)
	sigma := autodiff.NewVariable(1)
	rho := autodiff.NewVariable(0)

	out := op.Apply(tape, mu, sigma, rho)
	assert.Equal(t, op.Evaluate(0, 1, 0), out.Value)
	assert.Equal(t, 0, tape.NumOps(), "nothing recorded while tape is stopped")
}

func TestBackwardSeedsFlowThroughAtomicNode(t *testing.T) {
	op, err := CachedEntropy(20, quad.Double)
	require.NoError(t, err)

	tape := autodiff.NewGradientTape()
	tape.StartRecording()

	s := autodiff.NewVariable(0.9)
	out := op.Apply(tape, s)
	grads := tape.Backward(out, 2.5)

	assert.InDelta(t, op.Gradient(0.9, 2.5), grads[s], 1e-14)
}
