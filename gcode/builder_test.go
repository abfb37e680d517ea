package gcode

import (
	"strings"
	"testing"

	"github.com/aligator/goslice/data"
)

func newTestBuilder() *Builder {
	b := NewBuilder(data.RepRap, data.Millimeter(1.75).ToMicrometer(), 1.0)
	b.SetExtrusion(data.Millimeter(0.2).ToMicrometer(), data.Millimeter(0.4).ToMicrometer())
	b.SetRetractionSpeed(40)
	b.SetRetractionAmount(data.Millimeter(1).ToMicrometer())
	return b
}

func TestBuilderMoveToOmitsUnchangedAxes(t *testing.T) {
	b := newTestBuilder()
	b.MoveTo(data.NewMicroPoint(data.Millimeter(10).ToMicrometer(), data.Millimeter(0).ToMicrometer()), 0, 0)
	b.MoveTo(data.NewMicroPoint(data.Millimeter(10).ToMicrometer(), data.Millimeter(5).ToMicrometer()), 0, 0)

	out := b.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if strings.Contains(lines[1], "X") {
		t.Errorf("expected the second move to omit X (unchanged), got %q", lines[1])
	}
	if !strings.Contains(lines[1], "Y5.000") {
		t.Errorf("expected the second move to include the new Y, got %q", lines[1])
	}
}

func TestBuilderExtrudeToEmitsPositiveEDelta(t *testing.T) {
	b := newTestBuilder()
	b.ExtrudeTo(data.NewMicroPoint(data.Millimeter(10).ToMicrometer(), 0), 0, 0)

	out := b.String()
	if !strings.Contains(out, "G1") {
		t.Fatalf("expected a G1 extrude command, got %q", out)
	}
	if !strings.Contains(out, "E") {
		t.Fatalf("expected an E value on the extrude move, got %q", out)
	}
}

func TestBuilderUltiGCodeEmitsRelativeE(t *testing.T) {
	b := NewBuilder(data.UltiGCode, data.Millimeter(1.75).ToMicrometer(), 1.0)
	b.SetExtrusion(data.Millimeter(0.2).ToMicrometer(), data.Millimeter(0.4).ToMicrometer())

	b.ExtrudeTo(data.NewMicroPoint(data.Millimeter(10).ToMicrometer(), 0), 0, 0)
	b.ExtrudeTo(data.NewMicroPoint(data.Millimeter(20).ToMicrometer(), 0), 0, 0)

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	// Both moves extrude the same length, so UltiGCode's relative E should
	// report the same delta on both lines, unlike the cumulative dialects.
	firstE := lines[0][strings.Index(lines[0], "E"):]
	secondE := lines[1][strings.Index(lines[1], "E"):]
	if firstE != secondE {
		t.Errorf("expected UltiGCode's relative E deltas to match for equal-length moves, got %q vs %q", firstE, secondE)
	}
}

func TestBuilderRetractUnretractRoundTrip(t *testing.T) {
	b := newTestBuilder()
	b.MoveTo(data.NewMicroPoint(0, 0), 0, 0)

	b.Retract()
	if !b.retracted {
		t.Fatal("expected retracted to be true after Retract")
	}
	eAfterRetract := b.e

	b.Unretract()
	if b.retracted {
		t.Fatal("expected retracted to be false after Unretract")
	}
	if b.e == eAfterRetract {
		t.Error("expected Unretract to restore the retracted E amount")
	}
}

func TestBuilderRetractIsIdempotent(t *testing.T) {
	b := newTestBuilder()
	b.Retract()
	firstLen := b.sb.Len()
	b.Retract()
	if b.sb.Len() != firstLen {
		t.Error("expected a second Retract with no intervening Unretract to be a no-op")
	}
}

func TestBuilderSetExtruderChangesOnlyOnDiff(t *testing.T) {
	b := newTestBuilder()
	if changed := b.SetExtruder(0, 0); !changed {
		t.Error("expected the first SetExtruder call to report a change")
	}
	if changed := b.SetExtruder(0, 0); changed {
		t.Error("expected a repeat SetExtruder with the same index to report no change")
	}
	if changed := b.SetExtruder(1, 0); !changed {
		t.Error("expected switching extruders to report a change")
	}
}

func TestBuilderSetFanBFBScalesToByte(t *testing.T) {
	b := NewBuilder(data.BFB, data.Millimeter(1.75).ToMicrometer(), 1.0)
	b.SetFan(100)
	if !strings.Contains(b.String(), "M106 S255") {
		t.Errorf("expected BFB fan at 100%% to scale to S255, got %q", b.String())
	}
}

func TestBuilderSetFanZeroEmitsOff(t *testing.T) {
	b := newTestBuilder()
	b.SetFan(0)
	if !strings.Contains(b.String(), "M107") {
		t.Errorf("expected fan-off to emit M107, got %q", b.String())
	}
}
