package limbcurve

import (
	"errors"
	"fmt"
)

var (
	// ErrConstraint indicates a missing, contradictory or invalid constraint set.
	ErrConstraint = errors.New("limbcurve: invalid constraints")
	// ErrDegenerateSegment indicates a segment whose resolved length is not positive.
	ErrDegenerateSegment = errors.New("limbcurve: degenerate segment")
	// ErrDomain indicates an arc length outside of the curve's or segment's range.
	ErrDomain = errors.New("limbcurve: arc length out of range")
	// ErrConvergence indicates that solving for a segment's length failed to
	// bracket or converge within the iteration budget.
	ErrConvergence = errors.New("limbcurve: no convergence")
)

// SegmentError records which segment of a profile failed to build.
type SegmentError struct {
	// Index of the segment in the profile's segment list.
	Index int
	// Type of the segment, as given in the input.
	Type SegmentKind
	Err  error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%s): %s", e.Index, e.Type, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

func domainError(s, lo, hi float64) error {
	return fmt.Errorf("%w: %g not in [%g, %g]", ErrDomain, s, lo, hi)
}
