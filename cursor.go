package limbcurve

import (
	"iter"
	"math"
)

// Cursor evaluates a profile curve and remembers the segment it evaluated
// last. Sampling a curve at increasing arc lengths through a cursor finds
// each segment in constant time; other access patterns fall back to a binary
// search. Results don't depend on the order of calls.
//
// A Cursor must not be used concurrently, but any number of cursors can
// share one curve.
type Cursor struct {
	curve *ProfileCurve
	index int
}

// Cursor returns a new cursor positioned at the start of the curve.
func (c *ProfileCurve) Cursor() *Cursor {
	return &Cursor{curve: c}
}

// Eval evaluates the curve at arc length s. See [ProfileCurve.Eval].
func (cur *Cursor) Eval(s float64) (CurvePoint, error) {
	c := cur.curve
	i := cur.index
	switch {
	case c.owns(i, s):
	case i+1 < len(c.segments) && c.owns(i+1, s):
		i++
	default:
		var ok bool
		if i, ok = c.find(s); !ok {
			return CurvePoint{}, domainError(s, c.SMin(), c.SMax())
		}
	}
	cur.index = i
	return c.segments[i].eval(s), nil
}

// Sample returns n points of the curve, equally spaced in arc length from
// SMin to SMax. It yields nothing if n < 2.
func (c *ProfileCurve) Sample(n int) iter.Seq[CurvePoint] {
	return func(yield func(CurvePoint) bool) {
		if n < 2 {
			return
		}
		cur := c.Cursor()
		s0, s1 := c.SMin(), c.SMax()
		for i := range n {
			s := s1
			if i < n-1 {
				s = min(s0+(s1-s0)*float64(i)/float64(n-1), s1)
			}
			// s is in range by construction.
			cp, _ := cur.Eval(s)
			if !yield(cp) {
				return
			}
		}
	}
}

// Flatten returns points of the curve such that the polyline through them
// deviates from the curve by no more than about tolerance. Every segment
// boundary is included. Lines contribute only their end points.
func (c *ProfileCurve) Flatten(tolerance float64) iter.Seq[CurvePoint] {
	return func(yield func(CurvePoint) bool) {
		for _, seg := range c.segments {
			n := 1
			if k := seg.maxCurvature(); k > 0 && tolerance > 0 {
				// The sagitta of a chord of length h on a circle of
				// curvature k is about k·h²/8.
				h := math.Sqrt(8 * tolerance / k)
				n = int(min(math.Ceil(seg.Length()/h), 1<<20))
				n = max(n, 1)
			}
			for j := range n {
				s := seg.SStart() + seg.Length()*float64(j)/float64(n)
				if !yield(seg.eval(s)) {
					return
				}
			}
		}
		last := c.segments[len(c.segments)-1]
		yield(last.eval(last.SEnd()))
	}
}

// BoundingBox returns a rectangle enclosing the curve. It is computed from
// the points of Flatten(tolerance) and inflated by tolerance to cover the
// curve between them, so it is at most about tolerance larger than the
// tight bounding box.
func (c *ProfileCurve) BoundingBox(tolerance float64) Rect {
	first := c.segments[0].start.Point()
	bbox := NewRectFromPoints(first, first)
	for cp := range c.Flatten(tolerance) {
		bbox = bbox.UnionPoint(cp.Point())
	}
	return bbox.Inflate(tolerance, tolerance)
}

// maxCurvature returns an upper bound of the curvature magnitude over the
// segment.
func (seg Segment) maxCurvature() float64 {
	if seg.kind == SplineKind {
		return seg.spline.maxCurvature()
	}
	return max(math.Abs(seg.c), math.Abs(seg.k1))
}
