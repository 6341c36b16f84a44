// Package params maps flat optimization-parameter vectors into the
// per-group (mean, covariance, skewness) triples the integral operators
// consume. Both reshaping functions are pure: they slice the input vector,
// never mutate it, and hand ownership of the produced triples to the caller.
package params

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// GroupParameters is one latent-variable group's variational parameters in
// direct parameterization: mean vector, covariance matrix, skewness vector.
type GroupParameters struct {
	Mean []float64
	Cov  *mat.SymDense
	Skew []float64
}

// ErrBadLayout reports a parameter vector whose length is not an exact
// multiple of the per-group segment, or a non-positive group dimension. The
// reshaping consumes every entry or none.
var ErrBadLayout = errors.New("params: parameter vector does not match the group layout")

// skewBound is the supremum of |γ| for the Pearson skewness of a skew
// normal; the bounded logit transform maps codes into (−skewBound,
// skewBound).
const skewBound = 0.99527

// SegmentLen returns the number of entries one group occupies:
// mean (d) + packed triangular factor (d(d+1)/2) + skewness (d).
func SegmentLen(d int) int {
	return 2*d + d*(d+1)/2
}

// CovFromPacked rebuilds a covariance matrix from the packed row-major lower
// triangle of its factor L as Σ = L·Lᵀ, which is symmetric positive
// semidefinite by construction.
func CovFromPacked(packed []float64, d int) *mat.SymDense {
	cov := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		ri := packed[i*(i+1)/2:]
		for j := 0; j <= i; j++ {
			rj := packed[j*(j+1)/2:]
			var sum float64
			for k := 0; k <= j; k++ {
				sum += ri[k] * rj[k]
			}
			cov.SetSym(i, j, sum)
		}
	}
	return cov
}

// ReshapeDirect slices theta into per-group segments
// [mean(d) | packed factor | skew(d)] and rebuilds each group's triple. The
// skewness vector is copied through unchanged.
func ReshapeDirect(theta []float64, d int) ([]GroupParameters, error) {
	groups, err := splitGroups(theta, d)
	if err != nil {
		return nil, err
	}

	nPacked := d * (d + 1) / 2
	out := make([]GroupParameters, 0, len(groups))
	for _, seg := range groups {
		out = append(out, GroupParameters{
			Mean: append([]float64(nil), seg[:d]...),
			Cov:  CovFromPacked(seg[d:d+nPacked], d),
			Skew: append([]float64(nil), seg[d+nPacked:]...),
		})
	}
	return out, nil
}

// ReshapeMoment slices theta into per-group segments
// [mean(d) | packed factor | transformed skewness(d)] and maps each group
// from moment parameters to direct parameters.
//
// Per dimension i the bounded code is un-transformed to the Pearson
// skewness γ ∈ (−c, c), mapped to the shape ν, and scaled by the marginal
// ω = √(Σᵢᵢ/(1−ν²)):
//
//	ρᵢ = √π·νᵢ/(ωᵢ·√(2−π·νᵢ²)),  νᵢ ← νᵢ·ωᵢ
//
// After all dimensions the mean is recentred by the shift vector ν and the
// covariance corrected by its outer product, recovering the non-centred
// scale matrix: the triple is (mean−ν, Σ+ννᵀ, ρ).
func ReshapeMoment(theta []float64, d int) ([]GroupParameters, error) {
	groups, err := splitGroups(theta, d)
	if err != nil {
		return nil, err
	}

	nPacked := d * (d + 1) / 2
	out := make([]GroupParameters, 0, len(groups))
	for _, seg := range groups {
		sigma := CovFromPacked(seg[d:d+nPacked], d)

		nu := make([]float64, d)
		rho := make([]float64, d)
		for i := 0; i < d; i++ {
			gamma := gammaFromCode(seg[d+nPacked+i])
			nui := gammaToNu(gamma)
			omega := math.Sqrt(sigma.At(i, i) / (1 - nui*nui))
			rho[i] = math.SqrtPi * nui / (omega * math.Sqrt(2-math.Pi*nui*nui))
			nu[i] = nui * omega
		}

		mean := make([]float64, d)
		for i := 0; i < d; i++ {
			mean[i] = seg[i] - nu[i]
		}

		cov := mat.NewSymDense(d, nil)
		cov.SymRankOne(sigma, 1, mat.NewVecDense(d, nu))

		out = append(out, GroupParameters{Mean: mean, Cov: cov, Skew: rho})
	}
	return out, nil
}

// splitGroups validates the layout and returns one subslice per group.
func splitGroups(theta []float64, d int) ([][]float64, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrBadLayout, d)
	}
	perGroup := SegmentLen(d)
	if len(theta) == 0 || len(theta)%perGroup != 0 {
		return nil, fmt.Errorf("%w: %d entries, segment length %d",
			ErrBadLayout, len(theta), perGroup)
	}
	n := len(theta) / perGroup
	groups := make([][]float64, n)
	for g := range groups {
		groups[g] = theta[g*perGroup : (g+1)*perGroup]
	}
	return groups, nil
}

// gammaFromCode inverts the bounded logit transform 2c·logistic(code) − c.
func gammaFromCode(code float64) float64 {
	return 2*skewBound/(1+math.Exp(-code)) - skewBound
}

// gammaToNu maps the Pearson skewness γ to the skew-normal shape ν by
// inverting γ = (4−π)/2 · ν³/(1−ν²)^{3/2} in closed form:
// with t = ∛(2γ/(4−π)), ν = t/√(1+t²).
func gammaToNu(gamma float64) float64 {
	t := math.Cbrt(2 * gamma / (4 - math.Pi))
	return t / math.Sqrt(1+t*t)
}
