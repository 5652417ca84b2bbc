package limbcurve

import (
	"fmt"
	"math"
	"strings"
)

// SegmentKind identifies the variant of a [Segment].
type SegmentKind uint8

const (
	// LineKind is a straight line, with zero curvature.
	LineKind SegmentKind = iota
	// ArcKind is a circular arc, with constant non-zero curvature.
	ArcKind
	// SpiralKind is a clothoid, whose curvature varies linearly with arc length.
	SpiralKind
	// SplineKind is a segment whose curvature is a cubic spline over arc length.
	SplineKind
)

var segmentKindNames = [...]string{
	LineKind:   "line",
	ArcKind:    "arc",
	SpiralKind: "spiral",
	SplineKind: "spline",
}

func (k SegmentKind) String() string {
	if int(k) < len(segmentKindNames) {
		return segmentKindNames[k]
	}
	return fmt.Sprintf("SegmentKind(%d)", k)
}

func (k SegmentKind) MarshalText() ([]byte, error) {
	if int(k) >= len(segmentKindNames) {
		return nil, fmt.Errorf("unknown segment kind %d", k)
	}
	return []byte(segmentKindNames[k]), nil
}

func (k *SegmentKind) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range segmentKindNames {
		if n == name {
			*k = SegmentKind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown segment type %q", ErrConstraint, b)
}

// Segment is one piece of a profile curve. Segments are created by
// [NewSegment] and [ResolveSegment].
//
// Lines, arcs and spirals share one representation: a start pose, the end
// arc length and curvature coefficients c and b, such that the curvature at
// arc length s is c + b·(s − start.S). Lines have c = b = 0, arcs have
// b = 0. Spline segments carry their own curvature function instead.
//
// A Segment is immutable and safe for concurrent use.
type Segment struct {
	kind  SegmentKind
	start Pose
	s1    float64
	c, b  float64
	// k1 is the curvature at s1, returned as is so that the end curvature
	// doesn't pick up the rounding of c + b·(s1 − start.S).
	k1 float64

	spline *curvatureSpline
	// frame maps the local frame at the start pose to world coordinates.
	frame    Affine
	accuracy float64
	maxDepth int
}

// NewSegment returns the segment of length l starting at start whose
// curvature varies linearly from k0 to k1. The kind is derived from the
// curvatures. It returns an error wrapping [ErrDegenerateSegment] if l isn't
// positive.
func NewSegment(start Pose, l, k0, k1 float64) (Segment, error) {
	return newSegment(start, l, k0, k1, DefaultOptions())
}

func newSegment(start Pose, l, k0, k1 float64, opts Options) (Segment, error) {
	if !(l > 0) {
		return Segment{}, fmt.Errorf("%w: length %g", ErrDegenerateSegment, l)
	}
	if math.IsInf(l, 0) {
		return Segment{}, fmt.Errorf("%w: infinite length", ErrConstraint)
	}
	if math.IsNaN(k0) || math.IsNaN(k1) || math.IsInf(k0, 0) || math.IsInf(k1, 0) {
		return Segment{}, fmt.Errorf("%w: curvature (%g, %g)", ErrConstraint, k0, k1)
	}
	seg := Segment{
		start:    start,
		s1:       start.S + l,
		c:        k0,
		k1:       k1,
		frame:    start.Frame(),
		accuracy: opts.Accuracy,
		maxDepth: opts.MaxDepth,
	}
	switch {
	case k0 == 0 && k1 == 0:
		seg.kind = LineKind
	case k0 == k1:
		seg.kind = ArcKind
	default:
		seg.kind = SpiralKind
		seg.b = (k1 - k0) / l
	}
	if !(seg.s1 > start.S) {
		// l is too small to be represented at this arc length.
		return Segment{}, fmt.Errorf("%w: length %g at s = %g", ErrDegenerateSegment, l, start.S)
	}
	return seg, nil
}

// Kind returns the variant of the segment.
func (seg Segment) Kind() SegmentKind { return seg.kind }

// Curvatures returns the curvature at the start and at the end of the
// segment.
func (seg Segment) Curvatures() (k0, k1 float64) {
	return seg.curvature(seg.start.S), seg.k1
}

// SStart returns the arc length at the start of the segment.
func (seg Segment) SStart() float64 { return seg.start.S }

// SEnd returns the arc length at the end of the segment.
func (seg Segment) SEnd() float64 { return seg.s1 }

// Length returns the arc length of the segment.
func (seg Segment) Length() float64 { return seg.s1 - seg.start.S }

// Contains reports whether s lies in [SStart, SEnd].
func (seg Segment) Contains(s float64) bool {
	return s >= seg.start.S && s <= seg.s1
}

// StartPose returns the pose at the start of the segment.
func (seg Segment) StartPose() Pose { return seg.start }

// EndPose returns the pose at the end of the segment.
func (seg Segment) EndPose() Pose {
	pt := seg.position(seg.s1)
	return Pose{X: pt.X, Y: pt.Y, Phi: seg.angle(seg.s1), S: seg.s1}
}

// Curvature returns the curvature at arc length s.
func (seg Segment) Curvature(s float64) (float64, error) {
	if !seg.Contains(s) {
		return 0, domainError(s, seg.start.S, seg.s1)
	}
	return seg.curvature(s), nil
}

// Angle returns the tangent angle at arc length s.
func (seg Segment) Angle(s float64) (float64, error) {
	if !seg.Contains(s) {
		return 0, domainError(s, seg.start.S, seg.s1)
	}
	return seg.angle(s), nil
}

// Position returns the position at arc length s.
func (seg Segment) Position(s float64) (Point, error) {
	if !seg.Contains(s) {
		return Point{}, domainError(s, seg.start.S, seg.s1)
	}
	return seg.position(s), nil
}

// Eval evaluates position, angle and curvature at arc length s.
func (seg Segment) Eval(s float64) (CurvePoint, error) {
	if !seg.Contains(s) {
		return CurvePoint{}, domainError(s, seg.start.S, seg.s1)
	}
	return seg.eval(s), nil
}

func (seg Segment) eval(s float64) CurvePoint {
	pt := seg.position(s)
	return CurvePoint{
		S:   s,
		X:   pt.X,
		Y:   pt.Y,
		Phi: seg.angle(s),
		K:   seg.curvature(s),
	}
}

func (seg Segment) curvature(s float64) float64 {
	if s == seg.s1 {
		return seg.k1
	}
	t := s - seg.start.S
	if seg.kind == SplineKind {
		return seg.spline.curvature(t)
	}
	return seg.c + seg.b*t
}

func (seg Segment) angle(s float64) float64 {
	t := s - seg.start.S
	if seg.kind == SplineKind {
		return seg.start.Phi + seg.spline.angle(t)
	}
	return seg.start.Phi + seg.c*t + 0.5*seg.b*t*t
}

func (seg Segment) position(s float64) Point {
	t := s - seg.start.S
	switch seg.kind {
	case LineKind:
		sin, cos := math.Sincos(seg.start.Phi)
		return Point{
			X: seg.start.X + t*cos,
			Y: seg.start.Y + t*sin,
		}
	case ArcKind:
		// The chord of an arc has length t·sin(h)/h and points along the
		// tangent at the arc's midpoint, where h is half the turning angle.
		// Unlike going through the center of the circle this doesn't lose
		// precision for large radii.
		h := 0.5 * seg.c * t
		chord := t
		if h != 0 {
			chord = t * math.Sin(h) / h
		}
		sin, cos := math.Sincos(seg.start.Phi + h)
		return Point{
			X: seg.start.X + chord*cos,
			Y: seg.start.Y + chord*sin,
		}
	case SpiralKind:
		c, b := seg.c, seg.b
		f := func(u float64) Vec2 {
			return VecFromAngle(c*u + 0.5*b*u*u)
		}
		local := integrate(f, 0, t, turning(c, b, t), seg.accuracy*t, seg.maxDepth)
		return Point(local).Transform(seg.frame)
	case SplineKind:
		return Point(seg.spline.position(t)).Transform(seg.frame)
	default:
		panic(fmt.Sprintf("unhandled segment kind %s", seg.kind))
	}
}

// turning returns how far the angle c·u + ½·b·u² sweeps for u ∈ [0, t].
func turning(c, b, t float64) float64 {
	g := func(u float64) float64 { return c*u + 0.5*b*u*u }
	lo, hi := min(0, g(t)), max(0, g(t))
	if b != 0 {
		if u := -c / b; u > 0 && u < t {
			lo, hi = min(lo, g(u)), max(hi, g(u))
		}
	}
	return hi - lo
}
