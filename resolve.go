package limbcurve

import (
	"fmt"
	"math"
)

// ResolveSegment turns a segment spec into a segment starting at start.
//
// Line, arc and spiral specs fix the curvature at both ends through their
// radius constraints (none for lines, r_start for arcs, r_start and r_end for
// spirals) and need exactly one further constraint that determines the
// length:
//
//   - [Length], [DeltaS] and [SEnd] give it directly.
//   - [PhiEnd] and [DeltaPhi] give it in closed form, as the tangent turns by
//     l·(k0 + k1)/2 over a segment.
//   - [XEnd], [YEnd], [DeltaX] and [DeltaY] are solved for numerically: the
//     length is searched outward from zero for the first sign change of the
//     end point's distance to the target, then refined by Newton's method
//     with bisection as a fallback.
//
// Errors wrap [ErrConstraint], [ErrDegenerateSegment] or [ErrConvergence].
func ResolveSegment(start Pose, spec SegmentSpec, opts *Options) (Segment, error) {
	return resolveSegment(start, spec, opts.orDefault())
}

func resolveSegment(start Pose, spec SegmentSpec, opts Options) (Segment, error) {
	if spec.Type == SplineKind {
		if len(spec.Constraints) != 0 {
			return Segment{}, fmt.Errorf("%w: spline segments take points, not constraints", ErrConstraint)
		}
		return newSplineSegment(start, spec.Points, opts)
	}
	if len(spec.Points) != 0 {
		return Segment{}, fmt.Errorf("%w: only spline segments take points", ErrConstraint)
	}

	var (
		set    [numConstraintKinds]bool
		values [numConstraintKinds]float64
		length []Constraint
	)
	for _, c := range spec.Constraints {
		if c.Kind >= numConstraintKinds {
			return Segment{}, fmt.Errorf("%w: unknown constraint kind %d", ErrConstraint, c.Kind)
		}
		if set[c.Kind] {
			return Segment{}, fmt.Errorf("%w: %s given more than once", ErrConstraint, c.Kind)
		}
		if math.IsNaN(c.Value) {
			return Segment{}, fmt.Errorf("%w: %s is NaN", ErrConstraint, c.Kind)
		}
		if !c.Kind.isRadius() {
			if math.IsInf(c.Value, 0) {
				return Segment{}, fmt.Errorf("%w: %s is infinite", ErrConstraint, c.Kind)
			}
			length = append(length, c)
		}
		set[c.Kind] = true
		values[c.Kind] = c.Value
	}

	radius := func(kind ConstraintKind) (float64, error) {
		if !set[kind] {
			return 0, fmt.Errorf("%w: %s segment requires %s", ErrConstraint, spec.Type, kind)
		}
		return curvatureFromRadius(C(kind, values[kind]))
	}

	var k0, k1 float64
	switch spec.Type {
	case LineKind:
		for _, kind := range [...]ConstraintKind{RStart, REnd} {
			if set[kind] && !math.IsInf(values[kind], 0) {
				return Segment{}, fmt.Errorf("%w: line segment with finite %s", ErrConstraint, kind)
			}
		}
	case ArcKind:
		k, err := radius(RStart)
		if err != nil {
			return Segment{}, err
		}
		if set[REnd] {
			kEnd, err := curvatureFromRadius(C(REnd, values[REnd]))
			if err != nil {
				return Segment{}, err
			}
			if kEnd != k {
				return Segment{}, fmt.Errorf("%w: arc with r_start %g and r_end %g", ErrConstraint, values[RStart], values[REnd])
			}
		}
		k0, k1 = k, k
	case SpiralKind:
		var err error
		if k0, err = radius(RStart); err != nil {
			return Segment{}, err
		}
		if k1, err = radius(REnd); err != nil {
			return Segment{}, err
		}
	default:
		return Segment{}, fmt.Errorf("%w: unknown segment type %s", ErrConstraint, spec.Type)
	}

	switch len(length) {
	case 0:
		return Segment{}, fmt.Errorf("%w: %s segment needs a length, end point or end angle", ErrConstraint, spec.Type)
	case 1:
	default:
		return Segment{}, fmt.Errorf("%w: %s and %s both determine the length of the segment", ErrConstraint, length[0].Kind, length[1].Kind)
	}

	c := length[0]
	var l float64
	switch c.Kind {
	case Length, DeltaS:
		l = c.Value
	case SEnd:
		l = c.Value - start.S
	case PhiEnd, DeltaPhi:
		dphi := c.Value
		if c.Kind == PhiEnd {
			dphi -= start.Phi
		}
		if k0+k1 == 0 {
			return Segment{}, fmt.Errorf("%w: %s cannot be reached by a %s segment with zero mean curvature", ErrConstraint, c.Kind, spec.Type)
		}
		l = 2 * dphi / (k0 + k1)
	case XEnd, YEnd, DeltaX, DeltaY:
		var err error
		l, err = solveLength(start, k0, k1, c, opts)
		if err != nil {
			return Segment{}, err
		}
	default:
		return Segment{}, fmt.Errorf("%w: %s does not apply to %s segments", ErrConstraint, c.Kind, spec.Type)
	}
	return newSegment(start, l, k0, k1, opts)
}

// solveLength finds the length l of the segment from start with end
// curvatures k0 and k1 whose end point satisfies the positional constraint c.
func solveLength(start Pose, k0, k1 float64, c Constraint, opts Options) (float64, error) {
	var axis Vec2
	switch c.Kind {
	case XEnd, DeltaX:
		axis = Vec(1, 0)
	case YEnd, DeltaY:
		axis = Vec(0, 1)
	}
	target := c.Value
	if c.Kind == DeltaX || c.Kind == DeltaY {
		target += axis.Dot(Vec2(start.Point()))
	}

	// f returns the signed distance of the end point from the target along
	// axis, and its derivative with respect to l.
	f := func(l float64) (float64, float64, error) {
		seg, err := newSegment(start, l, k0, k1, opts)
		if err != nil {
			return 0, 0, err
		}
		end := seg.position(seg.s1)
		deriv := VecFromAngle(seg.angle(seg.s1))
		if seg.kind == SpiralKind {
			// With both end curvatures fixed, B = (k1 − k0)/l changes with l
			// and bends the whole segment. The angle at u moves by
			// ∂/∂l (½·B·u²) = −½·(k1 − k0)·u²/l², which displaces the end
			// point along the normal at u.
			sc, sb := seg.c, seg.b
			dk := k1 - k0
			g := func(u float64) Vec2 {
				return VecFromAngle(sc*u + 0.5*sb*u*u).Normal().Mul(-0.5 * dk * u * u / (l * l))
			}
			bend := integrate(g, 0, l, turning(sc, sb, l), opts.Accuracy*l, opts.MaxDepth)
			deriv = deriv.Add(bend.Transform(seg.frame))
		}
		return axis.Dot(Vec2(end)) - target, axis.Dot(deriv), nil
	}

	fa := axis.Dot(Vec2(start.Point())) - target
	if math.Abs(fa) <= opts.SolverTolerance {
		// The start already satisfies the constraint; the segment would be
		// empty.
		return 0, nil
	}

	// Step outward from l = 0. The first step is the distance to the target
	// along the axis, which is the shortest length that can reach it; steps
	// double from there, but never turn the tangent by more than π/4, so as
	// not to step over the first crossing of a curling segment.
	maxStep := math.Inf(1)
	if kmax := max(math.Abs(k0), math.Abs(k1)); kmax > 0 {
		maxStep = 0.25 * math.Pi / kmax
	}
	step := min(math.Abs(fa), maxStep)
	a := 0.0
	for i := 0; ; i++ {
		if i >= opts.MaxBracketSteps {
			return 0, fmt.Errorf("%w: %s = %g not reached within %d bracketing steps (l ≤ %g)",
				ErrConvergence, c.Kind, c.Value, opts.MaxBracketSteps, a)
		}
		b := a + step
		fb, _, err := f(b)
		if err != nil {
			return 0, err
		}
		if math.Abs(fb) <= opts.SolverTolerance {
			return b, nil
		}
		if (fa < 0) != (fb < 0) {
			return refineLength(f, a, b, fa, fb, c, opts)
		}
		a, fa = b, fb
		step = min(2*step, maxStep)
	}
}

// refineLength narrows the bracket [a, b] around a root of f, where f(a) and
// f(b) have opposite signs, using Newton steps that stay inside the bracket
// and bisection otherwise.
func refineLength(
	f func(float64) (float64, float64, error),
	a, b, fa, fb float64,
	c Constraint,
	opts Options,
) (float64, error) {
	x := b
	if math.Abs(fa) < math.Abs(fb) && a > 0 {
		x = a
	}
	dxOld := b - a
	dx := dxOld
	for range opts.MaxIterations {
		fx, dfx, err := f(x)
		if err != nil {
			return 0, err
		}
		if math.Abs(fx) <= opts.SolverTolerance {
			return x, nil
		}
		if (fx < 0) == (fa < 0) {
			a, fa = x, fx
		} else {
			b = x
		}

		newton := x - fx/dfx
		if dfx == 0 || math.IsNaN(newton) || newton <= a || newton >= b || math.Abs(2*fx) > math.Abs(dxOld*dfx) {
			dxOld = dx
			dx = 0.5 * (b - a)
			x = a + dx
		} else {
			dxOld = dx
			dx = newton - x
			x = newton
		}
		if !(x > 0) {
			x = 0.5 * (a + b)
		}
	}
	return 0, fmt.Errorf("%w: %s = %g not converged within %d iterations (l ∈ [%g, %g])",
		ErrConvergence, c.Kind, c.Value, opts.MaxIterations, a, b)
}
