package limbcurve

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// testProfile exercises every segment kind and every way of resolving a
// length.
func testProfile(t *testing.T) *ProfileCurve {
	t.Helper()
	return mustBuild(t, Pose{X: 0.1, Y: -0.2, Phi: 0.05},
		Line(C(Length, 0.1)),
		Spiral(C(RStart, math.Inf(1)), C(REnd, 2), C(Length, 0.3)),
		Arc(C(RStart, 2), C(DeltaPhi, 0.2)),
		Spiral(C(RStart, 2), C(REnd, 0.8), C(DeltaY, 0.15)),
		Spline(SplinePoint{0, 1.25}, SplinePoint{0.1, 1}, SplinePoint{0.25, 0.4}, SplinePoint{0.3, 0.5}),
		Arc(C(RStart, -3), C(DeltaX, 0.2)),
		Line(C(SEnd, 2)),
	)
}

func TestProfileLineRoundTrip(t *testing.T) {
	c := mustBuild(t, Pose{}, Line(C(Length, 3)))
	got, err := c.Eval(3)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, CurvePoint{S: 3, X: 3, Y: 0, Phi: 0, K: 0}, got)
}

func TestProfileArcRoundTrip(t *testing.T) {
	c := mustBuild(t, Pose{}, Arc(C(Length, math.Pi), C(RStart, 1), C(REnd, 1)))
	got, err := c.Eval(math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	want := CurvePoint{S: math.Pi, X: 0, Y: 2, Phi: math.Pi, K: 1}
	diff(t, want, got, cmpopts.EquateApprox(0, 1e-9))
	for s := range c.Sample(17) {
		if s.K != 1 {
			t.Errorf("s = %g: got curvature %g, want 1", s.S, s.K)
		}
	}
}

func TestProfileContinuity(t *testing.T) {
	c := testProfile(t)
	if c.Len() != 7 {
		t.Fatalf("got %d segments, want 7", c.Len())
	}
	segs := c.Segments()
	for i := range segs[:len(segs)-1] {
		a, b := segs[i], segs[i+1]
		if a.SEnd() != b.SStart() {
			t.Errorf("segment %d ends at %g, segment %d starts at %g", i, a.SEnd(), i+1, b.SStart())
		}
		pa, err := a.Eval(a.SEnd())
		if err != nil {
			t.Fatal(err)
		}
		pb, err := b.Eval(b.SStart())
		if err != nil {
			t.Fatal(err)
		}
		if d := pa.Point().Distance(pb.Point()); d > 1e-9 {
			t.Errorf("segments %d and %d: positions differ by %g", i, i+1, d)
		}
		if d := math.Abs(pa.Phi - pb.Phi); d > 1e-9 {
			t.Errorf("segments %d and %d: angles differ by %g", i, i+1, d)
		}
	}
}

func TestProfileBounds(t *testing.T) {
	c := testProfile(t)
	if c.SMin() != 0 {
		t.Errorf("got SMin %g, want 0", c.SMin())
	}
	if d := math.Abs(c.SMax() - 2); d > 1e-15 {
		t.Errorf("got SMax %g, want 2", c.SMax())
	}
	bounds := c.Bounds()
	if len(bounds) != c.Len()+1 {
		t.Fatalf("got %d bounds, want %d", len(bounds), c.Len()+1)
	}
	if !slices.IsSorted(bounds) {
		t.Errorf("bounds aren't sorted: %v", bounds)
	}
	diff(t, c.Segment(0).StartPose(), c.StartPose())
	diff(t, c.Segment(c.Len()-1).EndPose(), c.EndPose())

	shifted := mustBuild(t, Pose{S: 10}, Line(C(Length, 2)))
	if shifted.SMin() != 10 || shifted.SMax() != 12 {
		t.Errorf("got range [%g, %g], want [10, 12]", shifted.SMin(), shifted.SMax())
	}
}

func TestProfileDomain(t *testing.T) {
	c := testProfile(t)
	cur := c.Cursor()
	for _, s := range []float64{c.SMin() - 1e-6, c.SMax() + 1e-6, math.NaN(), math.Inf(-1)} {
		if _, err := c.Eval(s); !errors.Is(err, ErrDomain) {
			t.Errorf("Eval(%g): got error %v, want %v", s, err, ErrDomain)
		}
		if _, err := cur.Eval(s); !errors.Is(err, ErrDomain) {
			t.Errorf("Cursor.Eval(%g): got error %v, want %v", s, err, ErrDomain)
		}
	}
	for _, s := range []float64{c.SMin(), c.SMax()} {
		if _, err := c.Eval(s); err != nil {
			t.Errorf("Eval(%g): unexpected error %s", s, err)
		}
		if _, err := cur.Eval(s); err != nil {
			t.Errorf("Cursor.Eval(%g): unexpected error %s", s, err)
		}
	}
}

func TestProfileOrderIndependence(t *testing.T) {
	c := testProfile(t)
	const n = 301
	args := make([]float64, 0, n+c.Len())
	for i := range n {
		args = append(args, c.SMin()+c.Length()*float64(i)/float64(n-1))
	}
	// Boundaries are where lookups are most likely to disagree.
	args = append(args, c.Bounds()...)

	want := make(map[float64]CurvePoint, len(args))
	cur := c.Cursor()
	for _, s := range args {
		cp, err := cur.Eval(s)
		if err != nil {
			t.Fatal(err)
		}
		want[s] = cp
	}

	rng := rand.New(rand.NewPCG(1, 2))
	shuffled := slices.Clone(args)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	cur = c.Cursor()
	for _, s := range shuffled {
		got, err := cur.Eval(s)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, want[s], got)

		got, err = c.Eval(s)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, want[s], got)
	}

	slices.Reverse(shuffled)
	slices.Sort(shuffled)
	slices.Reverse(shuffled)
	cur = c.Cursor()
	for _, s := range shuffled {
		got, _ := cur.Eval(s)
		diff(t, want[s], got)
	}
}

func TestProfileErrors(t *testing.T) {
	if _, err := NewProfileCurve(Pose{}, nil, nil); !errors.Is(err, ErrConstraint) {
		t.Errorf("empty profile: got error %v, want %v", err, ErrConstraint)
	}

	c, err := NewProfileCurve(Pose{}, []SegmentSpec{
		Line(C(Length, 1)),
		Arc(C(Length, 1), C(RStart, 0)),
		Line(C(Length, 1)),
	}, nil)
	if c != nil {
		t.Errorf("got a curve despite an error")
	}
	if !errors.Is(err, ErrConstraint) {
		t.Errorf("got error %v, want %v", err, ErrConstraint)
	}
	var serr *SegmentError
	if !errors.As(err, &serr) {
		t.Fatalf("got error %T, want *SegmentError", err)
	}
	if serr.Index != 1 || serr.Type != ArcKind {
		t.Errorf("got segment %d (%s), want 1 (arc)", serr.Index, serr.Type)
	}

	_, err = NewProfileCurve(Pose{}, []SegmentSpec{
		Line(C(Length, 1)),
		Line(C(SEnd, 1)),
	}, nil)
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Errorf("got error %v, want %v", err, ErrDegenerateSegment)
	}
}

func TestProfileConcurrentReads(t *testing.T) {
	c := testProfile(t)
	want := make([]CurvePoint, 0, 50)
	for cp := range c.Sample(50) {
		want = append(want, cp)
	}
	done := make(chan []CurvePoint)
	for range 4 {
		go func() {
			var got []CurvePoint
			for cp := range c.Sample(50) {
				got = append(got, cp)
			}
			done <- got
		}()
	}
	for range 4 {
		diff(t, want, <-done)
	}
}
