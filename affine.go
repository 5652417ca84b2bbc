package limbcurve

import (
	"math"
)

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The idea is that (A * B) * v == A * (B * v).
//
// Segments use an Affine to map positions computed in their local frame
// into the world frame of the profile; consumers can use one to place a
// whole limb, for example mirroring the upper limb onto the lower one.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY is a transform that is flipped on the y-axis. Useful for mirroring
// one limb of a symmetric bow onto the other.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates an affine transform representing rotation.
//
// The convention for rotation is that a positive angle rotates a positive X
// direction into positive Y, which matches the direction of positive
// curvature on a profile curve.
//
// The angle th is expressed in radians.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenTranslate creates aff followed by a translation of v.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// Rotation returns the angle by which aff rotates the x axis. For a
// reflection, it is twice the angle of the mirror axis.
func (aff Affine) Rotation() float64 {
	return math.Atan2(aff.N1, aff.N0)
}

// Determinant computes the determinant of the transform.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// TransformPoint applies aff to a curve point. Positions are mapped through
// the transform. The tangent angle is rotated with it, or mirrored under a
// reflection, without being wrapped into (−π, π]; curvature changes sign
// under reflections. The transform must not scale.
func (aff Affine) TransformPoint(cp CurvePoint) CurvePoint {
	pt := cp.Point().Transform(aff)
	rot := aff.Rotation()
	phi, k := cp.Phi+rot, cp.K
	if aff.Determinant() < 0 {
		phi, k = rot-cp.Phi, -k
	}
	return CurvePoint{S: cp.S, X: pt.X, Y: pt.Y, Phi: phi, K: k}
}
