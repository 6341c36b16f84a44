package varparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeByName(t *testing.T) {
	s, err := SchemeByName("DP")
	require.NoError(t, err)
	assert.Equal(t, Direct, s)

	s, err = SchemeByName("CP_trans")
	require.NoError(t, err)
	assert.Equal(t, MomentTransformed, s)

	_, err = SchemeByName("CP")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestSchemeString(t *testing.T) {
	assert.Equal(t, "DP", Direct.String())
	assert.Equal(t, "CP_trans", MomentTransformed.String())
	assert.Equal(t, "Scheme(7)", Scheme(7).String())
}

func TestReshapeDispatch(t *testing.T) {
	theta := []float64{2.0, 1.0, 0.5}

	groups, err := Reshape(Direct, theta, 1)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []float64{2.0}, groups[0].Mean)
	assert.Equal(t, []float64{0.5}, groups[0].Skew)

	groups, err = Reshape(MomentTransformed, theta, 1)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	_, err = Reshape(Scheme(9), theta, 1)
	assert.ErrorIs(t, err, ErrUnknownScheme)

	_, err = Reshape(Direct, theta[:2], 1)
	assert.ErrorIs(t, err, ErrBadLayout)
}
