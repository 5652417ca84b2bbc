package limbcurve

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

const testSpecJSON = `{
	"start": {"x": 0, "y": 0, "phi": 0.1},
	"segments": [
		{"type": "line", "constraints": [{"kind": "length", "value": 0.05}]},
		{"type": "spiral", "constraints": [
			{"kind": "r_start", "value": "inf"},
			{"kind": "r_end", "value": 1.2},
			{"kind": "delta_s", "value": 0.3}
		]},
		{"type": "Arc", "constraints": [
			{"kind": "radius", "value": 1.2},
			{"kind": "phi_end", "value": 1}
		]},
		{"type": "spline", "points": [{"s": 0, "k": 0.8}, {"s": 0.2, "k": 0.5}, {"s": 0.4, "k": 0.6}]}
	]
}`

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec([]byte(testSpecJSON))
	if err != nil {
		t.Fatal(err)
	}
	want := ProfileSpec{
		Start: Pose{Phi: 0.1},
		Segments: []SegmentSpec{
			Line(C(Length, 0.05)),
			Spiral(C(RStart, math.Inf(1)), C(REnd, 1.2), C(DeltaS, 0.3)),
			Arc(C(RStart, 1.2), C(PhiEnd, 1)),
			Spline(SplinePoint{0, 0.8}, SplinePoint{0.2, 0.5}, SplinePoint{0.4, 0.6}),
		},
	}
	diff(t, want, spec)

	c, err := Build(spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 4 {
		t.Errorf("got %d segments, want 4", c.Len())
	}
	if d := math.Abs(c.Segment(2).EndPose().Phi - 1); d > 1e-12 {
		t.Errorf("got angle %g after the arc, want 1", c.Segment(2).EndPose().Phi)
	}
	if d := math.Abs(c.Length() - 0.75 - c.Segment(2).Length()); d > 1e-12 {
		t.Errorf("got length %g", c.Length())
	}
}

func TestParseSpecErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		constraint bool
	}{
		{"UnknownType", `{"segments": [{"type": "clothoid", "constraints": []}]}`, true},
		{"UnknownKind", `{"segments": [{"type": "line", "constraints": [{"kind": "width", "value": 1}]}]}`, true},
		{"BadValue", `{"segments": [{"type": "line", "constraints": [{"kind": "length", "value": "long"}]}]}`, true},
		{"MissingValue", `{"segments": [{"type": "line", "constraints": [{"kind": "length"}]}]}`, true},
		{"UnknownField", `{"segments": [], "units": "mm"}`, false},
		{"Syntax", `{"segments": [`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec([]byte(tt.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrConstraint); got != tt.constraint {
				t.Errorf("errors.Is(%v, ErrConstraint) = %t, want %t", err, got, tt.constraint)
			}
		})
	}
}

func TestConstraintJSON(t *testing.T) {
	tests := []struct {
		c    Constraint
		want string
	}{
		{C(RStart, math.Inf(1)), `{"kind":"r_start","value":"inf"}`},
		{C(REnd, math.Inf(-1)), `{"kind":"r_end","value":"-inf"}`},
		{C(DeltaPhi, 0.5), `{"kind":"delta_phi","value":0.5}`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.c)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != tt.want {
			t.Errorf("got %s, want %s", b, tt.want)
		}
		var got Constraint
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatal(err)
		}
		diff(t, tt.c, got)
	}

	if _, err := json.Marshal(C(numConstraintKinds, 1)); err == nil {
		t.Error("expected an error for an unknown constraint kind")
	}
}

func TestKindNames(t *testing.T) {
	for k := range numConstraintKinds {
		var got ConstraintKind
		if err := got.UnmarshalText([]byte(k.String())); err != nil {
			t.Fatal(err)
		}
		if got != k {
			t.Errorf("%s decoded as %s", k, got)
		}
	}
	for _, k := range []SegmentKind{LineKind, ArcKind, SpiralKind, SplineKind} {
		var got SegmentKind
		if err := got.UnmarshalText([]byte(k.String())); err != nil {
			t.Fatal(err)
		}
		if got != k {
			t.Errorf("%s decoded as %s", k, got)
		}
	}
	if s := ConstraintKind(200).String(); s != "ConstraintKind(200)" {
		t.Errorf("got %q", s)
	}
}
