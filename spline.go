package limbcurve

import (
	"fmt"
	"math"
	"sort"
)

// SplinePoint is a control point of a spline segment: the curvature K at arc
// length S, measured from the start of the segment's point list.
type SplinePoint struct {
	S float64 `json:"s" yaml:"s"`
	K float64 `json:"k" yaml:"k"`
}

// curvatureSpline is a natural cubic spline of curvature over arc length,
// together with the tangent angle and position at each knot, both relative
// to the segment's local frame.
type curvatureSpline struct {
	// Knot arc lengths, starting at 0.
	s []float64
	// Polynomial coefficients per interval: k(t) = a + b·t + c·t² + d·t³.
	a, b, c, d []float64
	theta      []float64
	pos        []Vec2

	accuracy float64
	maxDepth int
}

func newCurvatureSpline(points []SplinePoint, opts Options) (*curvatureSpline, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: spline needs at least 2 points, got %d", ErrConstraint, len(points))
	}
	for i, p := range points {
		if math.IsNaN(p.S) || math.IsInf(p.S, 0) || math.IsNaN(p.K) || math.IsInf(p.K, 0) {
			return nil, fmt.Errorf("%w: spline point %d is not finite", ErrConstraint, i)
		}
		if i > 0 && !(p.S > points[i-1].S) {
			return nil, fmt.Errorf("%w: spline arc lengths must be strictly increasing (point %d)", ErrConstraint, i)
		}
	}

	n := len(points) - 1
	sp := &curvatureSpline{
		s:        make([]float64, n+1),
		a:        make([]float64, n),
		b:        make([]float64, n),
		c:        make([]float64, n),
		d:        make([]float64, n),
		theta:    make([]float64, n+1),
		pos:      make([]Vec2, n+1),
		accuracy: opts.Accuracy,
		maxDepth: opts.MaxDepth,
	}
	k := make([]float64, n+1)
	for i, p := range points {
		sp.s[i] = p.S - points[0].S
		k[i] = p.K
	}
	h := make([]float64, n)
	for i := range n {
		h[i] = sp.s[i+1] - sp.s[i]
	}

	// Second derivatives of the natural spline, M[0] = M[n] = 0, by the
	// Thomas algorithm on the tridiagonal system for M[1:n].
	m := make([]float64, n+1)
	if n > 1 {
		diag := make([]float64, n+1)
		rhs := make([]float64, n+1)
		for i := 1; i < n; i++ {
			diag[i] = 2 * (h[i-1] + h[i])
			rhs[i] = 6 * ((k[i+1]-k[i])/h[i] - (k[i]-k[i-1])/h[i-1])
		}
		for i := 2; i < n; i++ {
			w := h[i-1] / diag[i-1]
			diag[i] -= w * h[i-1]
			rhs[i] -= w * rhs[i-1]
		}
		m[n-1] = rhs[n-1] / diag[n-1]
		for i := n - 2; i >= 1; i-- {
			m[i] = (rhs[i] - h[i]*m[i+1]) / diag[i]
		}
	}

	for i := range n {
		sp.a[i] = k[i]
		sp.b[i] = (k[i+1]-k[i])/h[i] - h[i]*(2*m[i]+m[i+1])/6
		sp.c[i] = m[i] / 2
		sp.d[i] = (m[i+1] - m[i]) / (6 * h[i])
	}
	for i := range n {
		sp.theta[i+1] = sp.theta[i] + sp.deltaAngle(i, h[i])
		sp.pos[i+1] = sp.pos[i].Add(sp.integral(i, h[i]))
	}
	return sp, nil
}

// length returns the arc length covered by the spline.
func (sp *curvatureSpline) length() float64 {
	return sp.s[len(sp.s)-1]
}

// interval returns the index of the interval containing t, clamping to the
// first and last interval.
func (sp *curvatureSpline) interval(t float64) int {
	n := len(sp.a)
	i := sort.SearchFloat64s(sp.s, t)
	// SearchFloat64s returns the first knot ≥ t; the interval starts one
	// knot earlier unless t sits exactly on a knot.
	if i == len(sp.s) || sp.s[i] != t {
		i--
	}
	return max(0, min(i, n-1))
}

func (sp *curvatureSpline) curvature(t float64) float64 {
	i := sp.interval(t)
	u := t - sp.s[i]
	return sp.a[i] + u*(sp.b[i]+u*(sp.c[i]+u*sp.d[i]))
}

// deltaAngle integrates the curvature over [0, u] of interval i.
func (sp *curvatureSpline) deltaAngle(i int, u float64) float64 {
	return u * (sp.a[i] + u*(sp.b[i]/2+u*(sp.c[i]/3+u*sp.d[i]/4)))
}

func (sp *curvatureSpline) angle(t float64) float64 {
	i := sp.interval(t)
	return sp.theta[i] + sp.deltaAngle(i, t-sp.s[i])
}

// integral returns the local displacement over [0, u] of interval i.
func (sp *curvatureSpline) integral(i int, u float64) Vec2 {
	if u == 0 {
		return Vec2{}
	}
	th := sp.theta[i]
	f := func(v float64) Vec2 {
		return VecFromAngle(th + sp.deltaAngle(i, v))
	}
	// Bound the turning by the largest curvature magnitude the polynomial
	// can reach on [0, u].
	kmax := math.Abs(sp.a[i]) + u*(math.Abs(sp.b[i])+u*(math.Abs(sp.c[i])+u*math.Abs(sp.d[i])))
	return integrate(f, 0, u, kmax*u, sp.accuracy*u, sp.maxDepth)
}

func (sp *curvatureSpline) position(t float64) Vec2 {
	i := sp.interval(t)
	return sp.pos[i].Add(sp.integral(i, t-sp.s[i]))
}

// maxCurvature returns an upper bound of |k| over the whole spline.
func (sp *curvatureSpline) maxCurvature() float64 {
	var kmax float64
	for i := range sp.a {
		h := sp.s[i+1] - sp.s[i]
		kmax = max(kmax, math.Abs(sp.a[i])+h*(math.Abs(sp.b[i])+h*(math.Abs(sp.c[i])+h*math.Abs(sp.d[i]))))
	}
	return kmax
}

// newSplineSegment returns the spline segment through points, starting at
// start.
func newSplineSegment(start Pose, points []SplinePoint, opts Options) (Segment, error) {
	sp, err := newCurvatureSpline(points, opts)
	if err != nil {
		return Segment{}, err
	}
	l := sp.length()
	seg := Segment{
		kind:     SplineKind,
		start:    start,
		s1:       start.S + l,
		k1:       points[len(points)-1].K,
		spline:   sp,
		frame:    start.Frame(),
		accuracy: opts.Accuracy,
		maxDepth: opts.MaxDepth,
	}
	if !(seg.s1 > start.S) {
		return Segment{}, fmt.Errorf("%w: length %g at s = %g", ErrDegenerateSegment, l, start.S)
	}
	return seg, nil
}
