package limbcurve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func mustSegment(t *testing.T, start Pose, l, k0, k1 float64) Segment {
	t.Helper()
	seg, err := NewSegment(start, l, k0, k1)
	if err != nil {
		t.Fatalf("NewSegment(%v, %g, %g, %g): %s", start, l, k0, k1, err)
	}
	return seg
}

func mustBuild(t *testing.T, start Pose, specs ...SegmentSpec) *ProfileCurve {
	t.Helper()
	c, err := NewProfileCurve(start, specs, nil)
	if err != nil {
		t.Fatalf("NewProfileCurve: %s", err)
	}
	return c
}
