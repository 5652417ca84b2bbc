package limbcurve

// DefaultAccuracy is the default relative tolerance of the position
// integral of spiral and spline segments.
const DefaultAccuracy = 1e-9

// Options controls the numerics of building a profile curve. A nil *Options
// is equivalent to DefaultOptions().
type Options struct {
	// Accuracy is the tolerance of the position integral, relative to the
	// integrated arc length.
	Accuracy float64
	// MaxDepth limits the recursion of the adaptive quadrature. Each level
	// halves the integration interval.
	MaxDepth int
	// SolverTolerance is the absolute tolerance on the end position when a
	// segment's length is solved from an end-point constraint.
	SolverTolerance float64
	// MaxIterations limits the Newton/bisection refinement of a bracketed root.
	MaxIterations int
	// MaxBracketSteps limits the outward search for a sign change.
	MaxBracketSteps int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Accuracy:        DefaultAccuracy,
		MaxDepth:        40,
		SolverTolerance: 1e-9,
		MaxIterations:   100,
		MaxBracketSteps: 200,
	}
}

// orDefault fills unset fields with their defaults.
func (opts *Options) orDefault() Options {
	def := DefaultOptions()
	if opts == nil {
		return def
	}
	o := *opts
	if o.Accuracy <= 0 {
		o.Accuracy = def.Accuracy
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = def.MaxDepth
	}
	if o.SolverTolerance <= 0 {
		o.SolverTolerance = def.SolverTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.MaxBracketSteps <= 0 {
		o.MaxBracketSteps = def.MaxBracketSteps
	}
	return o
}
