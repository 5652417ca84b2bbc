package limbcurve

import (
	"fmt"
	"math"
)

// Point is a location in the plane of the limb profile.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub computes pt−o.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return math.Hypot(x, y)
}

// Pose is a location on a profile curve: position, tangent angle and arc
// length. It is what one segment hands to the next.
type Pose struct {
	X   float64 `json:"x" yaml:"x"`
	Y   float64 `json:"y" yaml:"y"`
	Phi float64 `json:"phi" yaml:"phi"`
	S   float64 `json:"s,omitempty" yaml:"s,omitempty"`
}

// Point returns the position of the pose.
func (p Pose) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

// Tangent returns the unit tangent vector of the pose.
func (p Pose) Tangent() Vec2 {
	return VecFromAngle(p.Phi)
}

// Frame returns the transform from the pose's local frame, whose origin is
// the pose's position and whose x axis points along its tangent, into world
// coordinates.
func (p Pose) Frame() Affine {
	return Rotate(p.Phi).ThenTranslate(Vec(p.X, p.Y))
}

func (p Pose) String() string {
	return fmt.Sprintf("(%g, %g, φ=%g, s=%g)", p.X, p.Y, p.Phi, p.S)
}

// CurvePoint is the result of evaluating a profile curve at arc length S.
type CurvePoint struct {
	S   float64 `json:"s" yaml:"s"`
	X   float64 `json:"x" yaml:"x"`
	Y   float64 `json:"y" yaml:"y"`
	Phi float64 `json:"phi" yaml:"phi"`
	K   float64 `json:"k" yaml:"k"`
}

// Point returns the position of the curve point.
func (cp CurvePoint) Point() Point {
	return Point{X: cp.X, Y: cp.Y}
}

// Pose returns the curve point without its curvature.
func (cp CurvePoint) Pose() Pose {
	return Pose{X: cp.X, Y: cp.Y, Phi: cp.Phi, S: cp.S}
}
