package data

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func square(side Micrometer) Path {
	return Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(side, 0),
		NewMicroPoint(side, side),
		NewMicroPoint(0, side),
	}
}

func TestPathIsCCW(t *testing.T) {
	ccw := square(100)
	if !ccw.IsCCW() {
		t.Error("expected square(100) to be CCW")
	}
	cw := ccw.Reversed()
	if cw.IsCCW() {
		t.Error("expected the reversed square to be CW")
	}
}

func TestPathEnsureCCWAndCW(t *testing.T) {
	cw := square(100).Reversed()

	ensured := cw.EnsureCCW()
	if !ensured.IsCCW() {
		t.Error("EnsureCCW did not produce a CCW path")
	}

	ccw := square(100)
	ensuredCW := ccw.EnsureCW()
	if ensuredCW.IsCCW() {
		t.Error("EnsureCW did not produce a CW path")
	}
}

func TestPathLength(t *testing.T) {
	p := Path{NewMicroPoint(0, 0), NewMicroPoint(3, 4), NewMicroPoint(3, 0)}
	if got := p.Length(); got != 9 {
		t.Errorf("Length: got %d, want 9", got)
	}
}

func TestPathIsAlmostFinished(t *testing.T) {
	p := Path{NewMicroPoint(0, 0), NewMicroPoint(100, 100), NewMicroPoint(5, 5)}
	if !p.IsAlmostFinished(10) {
		t.Error("expected path ending near its start to be almost finished")
	}
	if p.IsAlmostFinished(1) {
		t.Error("expected a tight snap distance to reject the same path")
	}
}

func TestPathSize(t *testing.T) {
	p := square(100)
	min, max := p.Size()
	if min.X() != 0 || min.Y() != 0 || max.X() != 100 || max.Y() != 100 {
		t.Errorf("Size: got min=(%d,%d) max=(%d,%d), want min=(0,0) max=(100,100)", min.X(), min.Y(), max.X(), max.Y())
	}
}

func TestPathsSizeCombinesBoundingBoxes(t *testing.T) {
	a := square(50)
	b := Path{NewMicroPoint(200, 200), NewMicroPoint(300, 200), NewMicroPoint(300, 300), NewMicroPoint(200, 300)}

	min, max := Paths{a, b}.Size()
	if min.X() != 0 || min.Y() != 0 || max.X() != 300 || max.Y() != 300 {
		t.Errorf("Paths.Size: got min=(%d,%d) max=(%d,%d), want min=(0,0) max=(300,300)", min.X(), min.Y(), max.X(), max.Y())
	}
}

func TestPathSimplifyRemovesClosePoints(t *testing.T) {
	p := Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(1, 1),
		NewMicroPoint(100, 0),
		NewMicroPoint(100, 100),
	}
	out := p.Simplify(10, 5)
	if len(out) >= len(p) {
		t.Errorf("expected Simplify to drop at least one close point, got %d points from %d", len(out), len(p))
	}
}

func TestPathSimplifyKeepsClearlyNonCollinearCorners(t *testing.T) {
	p := Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(1000, 0),
		NewMicroPoint(2000, 0),
		NewMicroPoint(3000, 1000),
		NewMicroPoint(4000, 3000),
		NewMicroPoint(0, 3000),
	}
	out := p.Simplify(10, 50)
	if len(out) < 4 {
		t.Errorf("expected Simplify to keep the polygon's real corners, collapsed %d points down to %d: %v", len(p), len(out), out)
	}
}

func TestPathReversedTwiceRoundTrips(t *testing.T) {
	p := Path{NewMicroPoint(0, 0), NewMicroPoint(100, 0), NewMicroPoint(100, 100)}

	got := p.Reversed().Reversed()
	if diff := cmp.Diff(p, got, cmp.AllowUnexported(MicroPoint{})); diff != "" {
		t.Errorf("Reversed().Reversed() mismatch (-want +got):\n%s", diff)
	}
}

func TestPathReversedDoesNotMutate(t *testing.T) {
	p := square(10)
	original := append(Path{}, p...)

	_ = p.Reversed()

	for i := range p {
		if p[i] != original[i] {
			t.Fatalf("Reversed mutated the receiver at index %d", i)
		}
	}
}
