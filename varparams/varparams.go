// Copyright 2025 SNVA ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package varparams reshapes flat variational-parameter vectors into the
// per-group triples the integral operators consume.
//
// Two parameterizations are supported. The direct scheme ("DP") stores
// each group as mean, packed covariance factor and skewness. The
// moment-transformed scheme ("CP_trans") stores centred moments with a
// bounded skewness code and is mapped back to direct parameters during
// reshaping.
package varparams

import (
	"errors"
	"fmt"

	"github.com/snva-ml/snva/internal/params"
)

// Scheme names a parameter-vector layout.
type Scheme int

const (
	// Direct is the direct parameterization.
	Direct Scheme = iota
	// MomentTransformed is the bounded centred-moment parameterization.
	MomentTransformed
)

// GroupParameters is one group's direct-parameter triple.
type GroupParameters = params.GroupParameters

var (
	// ErrUnknownScheme reports a scheme name with no registered layout.
	ErrUnknownScheme = errors.New("varparams: unknown parameterization")
	// ErrBadLayout reports a vector that does not divide into whole groups.
	ErrBadLayout = params.ErrBadLayout
)

// String returns the scheme's wire name.
func (s Scheme) String() string {
	switch s {
	case Direct:
		return "DP"
	case MomentTransformed:
		return "CP_trans"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// SchemeByName resolves a scheme from its wire name, "DP" or "CP_trans".
func SchemeByName(name string) (Scheme, error) {
	switch name {
	case "DP":
		return Direct, nil
	case "CP_trans":
		return MomentTransformed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// SegmentLen returns the number of vector entries one group of dimension d
// occupies under either scheme.
func SegmentLen(d int) int { return params.SegmentLen(d) }

// Reshape splits theta into per-group direct-parameter triples under the
// given scheme. The vector length must be a whole multiple of SegmentLen(d).
func Reshape(s Scheme, theta []float64, d int) ([]GroupParameters, error) {
	switch s {
	case Direct:
		return params.ReshapeDirect(theta, d)
	case MomentTransformed:
		return params.ReshapeMoment(theta, d)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
}
