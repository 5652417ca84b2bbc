package limbcurve

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SegmentSpec describes one segment of a profile by its type and
// constraints. Spline segments are described by Points instead.
type SegmentSpec struct {
	Type        SegmentKind   `json:"type" yaml:"type"`
	Constraints []Constraint  `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Points      []SplinePoint `json:"points,omitempty" yaml:"points,omitempty"`
}

// Line returns the spec of a line segment.
func Line(cs ...Constraint) SegmentSpec {
	return SegmentSpec{Type: LineKind, Constraints: cs}
}

// Arc returns the spec of an arc segment.
func Arc(cs ...Constraint) SegmentSpec {
	return SegmentSpec{Type: ArcKind, Constraints: cs}
}

// Spiral returns the spec of a spiral segment.
func Spiral(cs ...Constraint) SegmentSpec {
	return SegmentSpec{Type: SpiralKind, Constraints: cs}
}

// Spline returns the spec of a spline segment through the given curvature
// control points.
func Spline(points ...SplinePoint) SegmentSpec {
	return SegmentSpec{Type: SplineKind, Points: points}
}

// ProfileSpec is the input from which a [ProfileCurve] is built: the pose
// at which the curve starts and its segments in order.
type ProfileSpec struct {
	Start    Pose          `json:"start" yaml:"start"`
	Segments []SegmentSpec `json:"segments" yaml:"segments"`
}

// ParseSpec decodes a JSON profile spec. Unknown fields are rejected.
func ParseSpec(data []byte) (ProfileSpec, error) {
	var spec ProfileSpec
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return ProfileSpec{}, fmt.Errorf("parsing profile spec: %w", err)
	}
	return spec, nil
}
