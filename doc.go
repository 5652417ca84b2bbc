// Package limbcurve builds and evaluates planar profile curves, such as the
// side profile of a bow limb, from a list of segments described by
// geometric constraints.
//
// # Segments
//
// A profile is a sequence of segments. Lines have zero curvature, arcs have
// constant curvature, and spirals (clothoids) have curvature that varies
// linearly with arc length. A fourth kind, the spline segment, has
// curvature given by a natural cubic spline through (arc length, curvature)
// control points, for profiles measured from a real limb.
//
// Every segment starts where the previous one ended, with the same position,
// tangent angle and arc length, so that the composed [ProfileCurve] is G1
// continuous. Curvature may jump between segments.
//
// # Constraints
//
// Segments other than splines are described by a [SegmentSpec]: a type and a
// set of [Constraint] values. Radius constraints ([RStart], [REnd]) fix the
// curvature at the ends; an infinite radius means zero curvature. Exactly one
// further constraint determines the segment's length, either directly
// ([Length], [DeltaS], [SEnd]), through the end angle ([PhiEnd],
// [DeltaPhi]), or through the end point ([XEnd], [YEnd], [DeltaX],
// [DeltaY]). End point constraints are solved numerically: the solver
// searches outward from zero length in steps that turn the tangent by at
// most π/4 and refines the first sign change it finds. That is usually the
// shortest length satisfying the constraint, but need not be: a target that
// is only grazed within one step is not seen, and a spiral's whole shape
// changes with its length.
//
// Signs follow the usual mathematical conventions: angles are measured
// counter-clockwise from the positive x axis, and positive curvature turns
// left.
//
// # Evaluation
//
// [ProfileCurve.Eval] returns the position, tangent angle and curvature at
// an arc length. A [Cursor] does the same while remembering the segment it
// last used, which makes sampling in order cheap. [ProfileCurve.Sample] and
// [ProfileCurve.Flatten] return iterators; use [slices.Collect] to turn them
// into slices.
//
// The position on a spiral has no closed form and is computed by adaptive
// Gauss-Legendre quadrature of the unit tangent, see [Options].
//
// # Literature
//
// This package makes use of the following ideas:
//   - [Euler spiral] on Wikipedia
//   - [Numerical Recipes], section 9.4 (Newton-Raphson with bisection)
//   - [Gauss-Legendre quadrature]
//   - [Spline interpolation], natural cubic splines
//
// [Euler spiral]: https://en.wikipedia.org/wiki/Euler_spiral
// [Numerical Recipes]: https://numerical.recipes/
// [Gauss-Legendre quadrature]: https://en.wikipedia.org/wiki/Gauss%E2%80%93Legendre_quadrature
// [Spline interpolation]: https://en.wikipedia.org/wiki/Spline_interpolation
package limbcurve
