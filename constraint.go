package limbcurve

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ConstraintKind names a property of a segment that a [Constraint] fixes.
type ConstraintKind uint8

const (
	// Length is the segment's arc length.
	Length ConstraintKind = iota
	// RStart is the radius of curvature at the start of the segment.
	RStart
	// REnd is the radius of curvature at the end of the segment.
	REnd
	// XEnd is the x coordinate of the segment's end point.
	XEnd
	// YEnd is the y coordinate of the segment's end point.
	YEnd
	// SEnd is the arc length at the end of the segment.
	SEnd
	// PhiEnd is the tangent angle at the end of the segment.
	PhiEnd
	// DeltaX is the x distance between start and end point.
	DeltaX
	// DeltaY is the y distance between start and end point.
	DeltaY
	// DeltaS is the same as Length.
	DeltaS
	// DeltaPhi is the change in tangent angle over the segment.
	DeltaPhi

	numConstraintKinds
)

var constraintKindNames = [...]string{
	Length:   "length",
	RStart:   "r_start",
	REnd:     "r_end",
	XEnd:     "x_end",
	YEnd:     "y_end",
	SEnd:     "s_end",
	PhiEnd:   "phi_end",
	DeltaX:   "delta_x",
	DeltaY:   "delta_y",
	DeltaS:   "delta_s",
	DeltaPhi: "delta_phi",
}

// constraintKindAliases are alternative names accepted when decoding.
var constraintKindAliases = map[string]ConstraintKind{
	"radius": RStart,
}

func (k ConstraintKind) String() string {
	if k < numConstraintKinds {
		return constraintKindNames[k]
	}
	return fmt.Sprintf("ConstraintKind(%d)", k)
}

func (k ConstraintKind) MarshalText() ([]byte, error) {
	if k >= numConstraintKinds {
		return nil, fmt.Errorf("unknown constraint kind %d", k)
	}
	return []byte(constraintKindNames[k]), nil
}

func (k *ConstraintKind) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range constraintKindNames {
		if n == name {
			*k = ConstraintKind(i)
			return nil
		}
	}
	if alias, ok := constraintKindAliases[name]; ok {
		*k = alias
		return nil
	}
	return fmt.Errorf("%w: unknown constraint kind %q", ErrConstraint, b)
}

// isRadius reports whether the constraint fixes a curvature.
func (k ConstraintKind) isRadius() bool {
	return k == RStart || k == REnd
}

// Constraint fixes one property of a segment.
type Constraint struct {
	Kind  ConstraintKind `json:"kind" yaml:"kind"`
	Value float64        `json:"value" yaml:"value"`
}

// C returns the constraint (kind, value).
func C(kind ConstraintKind, value float64) Constraint {
	return Constraint{Kind: kind, Value: value}
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s=%g", c.Kind, c.Value)
}

// UnmarshalJSON decodes a constraint. Because JSON has no literal for
// infinity, the value may also be one of the strings "inf", "+inf", "-inf"
// or "infinity", which is how an infinite radius, i.e. zero curvature, is
// written.
func (c *Constraint) UnmarshalJSON(b []byte) error {
	var raw struct {
		Kind  ConstraintKind  `json:"kind"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Value) == 0 {
		return fmt.Errorf("%w: constraint %s has no value", ErrConstraint, raw.Kind)
	}
	var v float64
	if raw.Value[0] == '"' {
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "inf", "+inf", "infinity", "+infinity":
			v = math.Inf(1)
		case "-inf", "-infinity":
			v = math.Inf(-1)
		default:
			return fmt.Errorf("%w: constraint %s has non-numeric value %q", ErrConstraint, raw.Kind, s)
		}
	} else if err := json.Unmarshal(raw.Value, &v); err != nil {
		return fmt.Errorf("%w: constraint %s: %s", ErrConstraint, raw.Kind, err)
	}
	c.Kind = raw.Kind
	c.Value = v
	return nil
}

// MarshalJSON encodes infinite values as the strings accepted by UnmarshalJSON.
func (c Constraint) MarshalJSON() ([]byte, error) {
	var value any = c.Value
	switch {
	case math.IsInf(c.Value, 1):
		value = "inf"
	case math.IsInf(c.Value, -1):
		value = "-inf"
	}
	return json.Marshal(struct {
		Kind  ConstraintKind `json:"kind"`
		Value any            `json:"value"`
	}{c.Kind, value})
}

// curvatureFromRadius converts a radius constraint to a curvature. Infinite
// radii are straight.
func curvatureFromRadius(c Constraint) (float64, error) {
	switch {
	case math.IsNaN(c.Value):
		return 0, fmt.Errorf("%w: %s is NaN", ErrConstraint, c.Kind)
	case c.Value == 0:
		return 0, fmt.Errorf("%w: %s must not be zero", ErrConstraint, c.Kind)
	case math.IsInf(c.Value, 0):
		return 0, nil
	default:
		return 1 / c.Value, nil
	}
}
