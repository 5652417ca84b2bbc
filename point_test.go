package limbcurve

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Vec(3, -1), Pt(4, 1).Sub(Pt(1, 2)))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
}

func TestVec2(t *testing.T) {
	v := Vec(3, 4)
	if h := v.Hypot(); h != 5 {
		t.Errorf("got length %g, want 5", h)
	}
	if d := v.Dot(Vec(1, 1)); d != 7 {
		t.Errorf("got dot product %g, want 7", d)
	}
	diff(t, Vec(-4, 3), v.Normal())
	diff(t, Vec(4, 3), v.Add(Vec(1, -1)))
	diff(t, Vec(-4, 3), v.Transform(Rotate(math.Pi/2)), cmpopts.EquateApprox(0, 1e-15))
}

func TestPose(t *testing.T) {
	p := Pose{X: 1, Y: 2, Phi: math.Pi, S: 3}
	diff(t, Pt(1, 2), p.Point())
	diff(t, Vec(-1, 0), p.Tangent(), cmpopts.EquateApprox(0, 1e-15))
	cp := CurvePoint{S: 3, X: 1, Y: 2, Phi: math.Pi, K: 7}
	diff(t, p, cp.Pose())
}

func TestRect(t *testing.T) {
	r := NewRectFromPoints(Pt(3, 4), Pt(1, -2))
	diff(t, Rect{X0: 1, Y0: -2, X1: 3, Y1: 4}, r)
	if r.Width() != 2 || r.Height() != 6 {
		t.Errorf("got size %g×%g, want 2×6", r.Width(), r.Height())
	}
	diff(t, Rect{X0: 0, Y0: -2, X1: 3, Y1: 5}, r.UnionPoint(Pt(0, 5)))
	diff(t, Rect{X0: 0, Y0: -4, X1: 4, Y1: 6}, r.Inflate(1, 2))
}
