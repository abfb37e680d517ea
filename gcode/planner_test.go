package gcode

import (
	"strings"
	"testing"

	"github.com/aligator/goslice/data"
)

func newTestPlannerOptions() *data.Options {
	o := data.DefaultOptions()
	return &o
}

func newTestPlanner(t *testing.T, o *data.Options) (*Planner, *Builder) {
	t.Helper()
	b := NewBuilder(data.RepRap, o.Printer.FilamentDiameter, o.Printer.ExtrusionMultiplier)
	b.SetExtrusion(o.Print.LayerThickness, o.Printer.ExtrusionWidth)
	b.SetRetractionSpeed(o.Print.Retraction.Speed)
	b.SetRetractionAmount(o.Print.Retraction.Amount)
	b.SetMoveSpeed(o.Print.MoveSpeed)
	return NewPlanner(b, o, data.NewMicroPoint(0, 0), 5), b
}

func TestPlannerWritePolygonsByOptimizerClosesTheLoop(t *testing.T) {
	o := newTestPlannerOptions()
	p, _ := newTestPlanner(t, o)

	poly := data.Path{
		data.NewMicroPoint(0, 0),
		data.NewMicroPoint(1000, 0),
		data.NewMicroPoint(1000, 1000),
		data.NewMicroPoint(0, 1000),
	}
	p.WritePolygonsByOptimizer(data.Paths{poly}, nil, 60)
	p.Flush()

	out := p.Builder.String()
	// The closed loop must extrude back to its own start point: 4 corners +
	// the return leg means 4 ExtrudeTo calls (G1) after the initial travel.
	if got := strings.Count(out, "G1"); got != 4 {
		t.Errorf("expected 4 extrude moves for a closed 4-point loop, got %d:\n%s", got, out)
	}
}

func TestPlannerWritePathsByOptimizerDoesNotClose(t *testing.T) {
	o := newTestPlannerOptions()
	p, _ := newTestPlanner(t, o)

	path := data.Path{data.NewMicroPoint(0, 0), data.NewMicroPoint(1000, 0)}
	p.WritePathsByOptimizer(data.Paths{path}, nil, 60)
	p.Flush()

	out := p.Builder.String()
	if got := strings.Count(out, "G1"); got != 1 {
		t.Errorf("expected a single extrude move for a 2-point open path, got %d:\n%s", got, out)
	}
}

func TestPlannerRetractsOnLongTravel(t *testing.T) {
	o := newTestPlannerOptions()
	p, b := newTestPlanner(t, o)

	// First extrude a short segment so there is some positive E built up to
	// retract from, then travel far enough to cross MinimumTravelToCauseRetract.
	p.WritePathsByOptimizer(data.Paths{{data.NewMicroPoint(0, 0), data.NewMicroPoint(1000, 0)}}, nil, 60)
	far := data.NewMicroPoint(1000+o.Print.Retraction.MinimumTravelToCauseRetract*2, 0)
	p.WritePathsByOptimizer(data.Paths{{far, far.Add(data.NewMicroPoint(1000, 0))}}, nil, 60)
	p.Flush()

	_ = b
	if !strings.Contains(p.Builder.String(), "E-") {
		t.Error("expected a retraction (negative E delta) across the long travel")
	}
}

func TestPlannerSkipsRetractOnShortTravel(t *testing.T) {
	o := newTestPlannerOptions()
	p, b := newTestPlanner(t, o)

	near := data.NewMicroPoint(o.Print.Retraction.MinimumTravelToCauseRetract/2, 0)
	p.WritePathsByOptimizer(data.Paths{{near, near.Add(data.NewMicroPoint(1000, 0))}}, nil, 60)
	p.Flush()

	if strings.Contains(b.String(), "E-") {
		t.Error("expected no retraction across a travel shorter than MinimumTravelToCauseRetract")
	}
}

func TestPlannerPositionTracksLastOperation(t *testing.T) {
	o := newTestPlannerOptions()
	p, _ := newTestPlanner(t, o)

	path := data.Path{data.NewMicroPoint(0, 0), data.NewMicroPoint(5000, 0)}
	p.WritePathsByOptimizer(data.Paths{path}, nil, 60)

	if p.Position() != data.NewMicroPoint(5000, 0) {
		t.Errorf("Position() = %v, want (5000,0)", p.Position())
	}
}

func TestFanPercentForBelowHalfScaleIsMax(t *testing.T) {
	fan := data.FanSpeedOptions{MinPercent: 10, MaxPercent: 100, FirstLayerToAllow: 2}
	if got := fanPercentFor(0.5, fan, 5); got != 100 {
		t.Errorf("fanPercentFor(0.5): got %d, want 100", got)
	}
	if got := fanPercentFor(0.1, fan, 5); got != 100 {
		t.Errorf("fanPercentFor(0.1): got %d, want 100", got)
	}
}

func TestFanPercentForInterpolatesAboveHalfScale(t *testing.T) {
	fan := data.FanSpeedOptions{MinPercent: 0, MaxPercent: 100, FirstLayerToAllow: 2}
	if got := fanPercentFor(1.0, fan, 5); got != 0 {
		t.Errorf("fanPercentFor(1.0): got %d, want 0 (MinPercent)", got)
	}
	if got := fanPercentFor(0.75, fan, 5); got != 50 {
		t.Errorf("fanPercentFor(0.75): got %d, want 50 (halfway between max and min)", got)
	}
}

func TestFanPercentForFirstLayerIsAlwaysZero(t *testing.T) {
	fan := data.FanSpeedOptions{MinPercent: 50, MaxPercent: 100, FirstLayerToAllow: 2}
	if got := fanPercentFor(0.1, fan, 0); got != 0 {
		t.Errorf("fanPercentFor on layer 0: got %d, want 0", got)
	}
	if got := fanPercentFor(0.1, fan, 1); got != 0 {
		t.Errorf("fanPercentFor on layer 1: got %d, want 0", got)
	}
}

func TestPlannerSkipsRetractWithoutEnoughExtrusionSinceLastRetract(t *testing.T) {
	o := newTestPlannerOptions()
	o.Print.Retraction.MinimumExtrusionBeforeRetract = data.Millimeter(5).ToMicrometer()
	p, b := newTestPlanner(t, o)

	// A long travel with no prior extrusion at all: there is nothing to ooze
	// from yet, so no retraction should fire even though the travel is long.
	far := data.NewMicroPoint(o.Print.Retraction.MinimumTravelToCauseRetract*2, 0)
	p.WritePathsByOptimizer(data.Paths{{far, far.Add(data.NewMicroPoint(1000, 0))}}, nil, 60)
	p.Flush()

	if strings.Contains(b.String(), "E-") {
		t.Error("expected no retraction when MinimumExtrusionBeforeRetract has not been met")
	}
}

func TestPointInPolygonSquare(t *testing.T) {
	square := data.Path{
		data.NewMicroPoint(0, 0),
		data.NewMicroPoint(1000, 0),
		data.NewMicroPoint(1000, 1000),
		data.NewMicroPoint(0, 1000),
	}
	if !pointInPolygon(data.NewMicroPoint(500, 500), square) {
		t.Error("expected the square's center to test as inside")
	}
	if pointInPolygon(data.NewMicroPoint(5000, 5000), square) {
		t.Error("expected a far-away point to test as outside")
	}
}
