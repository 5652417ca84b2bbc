package limbcurve

import (
	"fmt"
	"slices"
)

// ProfileCurve is a G1 continuous curve composed of segments, parametrized
// by arc length.
//
// A ProfileCurve is built once by [NewProfileCurve] or [Build] and not
// modified afterwards, so it is safe for concurrent use. Callers that
// evaluate many arc lengths in order should use a [Cursor].
type ProfileCurve struct {
	segments []Segment
	// bounds[i] is the start arc length of segments[i]; the last element is
	// the end arc length of the last segment.
	bounds []float64
}

// Build builds the profile curve described by spec.
func Build(spec ProfileSpec, opts *Options) (*ProfileCurve, error) {
	return NewProfileCurve(spec.Start, spec.Segments, opts)
}

// NewProfileCurve resolves the segments in order, each one starting at the
// end pose of the one before it, the first one at start.
//
// If any segment fails to resolve, NewProfileCurve returns a *[SegmentError]
// wrapping the cause and no curve.
func NewProfileCurve(start Pose, specs []SegmentSpec, opts *Options) (*ProfileCurve, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: profile has no segments", ErrConstraint)
	}
	o := opts.orDefault()
	c := &ProfileCurve{
		segments: make([]Segment, 0, len(specs)),
		bounds:   make([]float64, 0, len(specs)+1),
	}
	pose := start
	for i, spec := range specs {
		seg, err := resolveSegment(pose, spec, o)
		if err != nil {
			return nil, &SegmentError{Index: i, Type: spec.Type, Err: err}
		}
		c.segments = append(c.segments, seg)
		c.bounds = append(c.bounds, seg.SStart())
		pose = seg.EndPose()
	}
	c.bounds = append(c.bounds, pose.S)
	return c, nil
}

// SMin returns the arc length at the start of the curve.
func (c *ProfileCurve) SMin() float64 { return c.bounds[0] }

// SMax returns the arc length at the end of the curve.
func (c *ProfileCurve) SMax() float64 { return c.bounds[len(c.bounds)-1] }

// Length returns the total arc length of the curve.
func (c *ProfileCurve) Length() float64 { return c.SMax() - c.SMin() }

// Len returns the number of segments.
func (c *ProfileCurve) Len() int { return len(c.segments) }

// Segment returns the i-th segment.
func (c *ProfileCurve) Segment(i int) Segment { return c.segments[i] }

// Segments returns a copy of the curve's segments.
func (c *ProfileCurve) Segments() []Segment { return slices.Clone(c.segments) }

// Bounds returns the arc lengths at which segments start, followed by the
// end of the curve.
func (c *ProfileCurve) Bounds() []float64 { return slices.Clone(c.bounds) }

// StartPose returns the pose at the start of the curve.
func (c *ProfileCurve) StartPose() Pose { return c.segments[0].start }

// EndPose returns the pose at the end of the curve.
func (c *ProfileCurve) EndPose() Pose { return c.segments[len(c.segments)-1].EndPose() }

// Eval evaluates the curve at arc length s. It returns an error wrapping
// [ErrDomain] if s isn't in [SMin, SMax].
func (c *ProfileCurve) Eval(s float64) (CurvePoint, error) {
	i, ok := c.find(s)
	if !ok {
		return CurvePoint{}, domainError(s, c.SMin(), c.SMax())
	}
	return c.segments[i].eval(s), nil
}

// find returns the index of the segment that owns s. Each segment owns
// [start, end) of its range, except the last, which also owns SMax.
func (c *ProfileCurve) find(s float64) (int, bool) {
	if !(s >= c.SMin() && s <= c.SMax()) {
		return 0, false
	}
	// The index of the first boundary > s, minus one, is the owning segment.
	i, found := slices.BinarySearch(c.bounds, s)
	if !found {
		i--
	}
	return min(i, len(c.segments)-1), true
}

// owns reports whether segment i owns s, by the same rule as find.
func (c *ProfileCurve) owns(i int, s float64) bool {
	if s < c.bounds[i] {
		return false
	}
	if i == len(c.segments)-1 {
		return s <= c.bounds[i+1]
	}
	return s < c.bounds[i+1]
}
