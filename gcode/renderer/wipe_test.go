package renderer

import (
	"strings"
	"testing"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
)

func newTestRendererOptions() *data.Options {
	o := data.DefaultOptions()
	return &o
}

func newTestRendererPlanner(t *testing.T, o *data.Options) *gcode.Planner {
	t.Helper()
	b := gcode.NewBuilder(data.RepRap, o.Printer.FilamentDiameter, o.Printer.ExtrusionMultiplier)
	b.SetExtrusion(o.Print.LayerThickness, o.Printer.ExtrusionWidth)
	b.SetRetractionSpeed(o.Print.Retraction.Speed)
	b.SetRetractionAmount(o.Print.Retraction.Amount)
	b.SetMoveSpeed(o.Print.MoveSpeed)
	return gcode.NewPlanner(b, o, data.NewMicroPoint(0, 0), 1)
}

func testModel() data.OptimizedModel {
	min := data.NewMicroVec3(0, 0, 0)
	max := data.NewMicroVec3(data.Millimeter(10).ToMicrometer(), data.Millimeter(10).ToMicrometer(), data.Millimeter(10).ToMicrometer())
	return data.NewOptimizedModel([]data.MicroVec3{min, max}, nil)
}

func TestWipeTowerDisabledByDefaultEmitsNothing(t *testing.T) {
	o := newTestRendererOptions()
	o.Print.MultiMaterial.WipeTowerSize = 0

	var tower WipeTower
	tower.Init(testModel())

	p := newTestRendererPlanner(t, o)
	if err := tower.Render(p, 0, 0, data.NewPartitionedLayer(nil), 0, o); err != nil {
		t.Fatalf("Render: %v", err)
	}
	p.Flush()

	if strings.Contains(p.String(), "WIPE_TOWER") {
		t.Error("expected a zero-size wipe tower to emit nothing")
	}
}

func TestWipeTowerRendersNextToTheModel(t *testing.T) {
	o := newTestRendererOptions()
	o.Print.MultiMaterial.WipeTowerSize = data.Millimeter(5).ToMicrometer()

	var tower WipeTower
	tower.Init(testModel())

	p := newTestRendererPlanner(t, o)
	if err := tower.Render(p, 0, 0, data.NewPartitionedLayer(nil), 0, o); err != nil {
		t.Fatalf("Render: %v", err)
	}
	p.Flush()

	out := p.String()
	if !strings.Contains(out, "TYPE:WIPE_TOWER") {
		t.Error("expected the wipe tower type comment")
	}
	if !strings.Contains(out, "G1") {
		t.Error("expected the wipe tower outline to be extruded")
	}
}

func TestWipeTowerWithoutInitEmitsNothing(t *testing.T) {
	o := newTestRendererOptions()
	o.Print.MultiMaterial.WipeTowerSize = data.Millimeter(5).ToMicrometer()

	var tower WipeTower
	p := newTestRendererPlanner(t, o)
	if err := tower.Render(p, 0, 0, data.NewPartitionedLayer(nil), 0, o); err != nil {
		t.Fatalf("Render: %v", err)
	}
	p.Flush()

	if strings.Contains(p.String(), "WIPE_TOWER") {
		t.Error("expected a renderer never Init'd with a model to stay disabled")
	}
}

func TestWipeShieldZeroDistanceEmitsNothing(t *testing.T) {
	o := newTestRendererOptions()
	o.Print.MultiMaterial.WipeShieldDistanceFromShapes = 0

	var shield WipeShield
	shield.Init(testModel())

	p := newTestRendererPlanner(t, o)
	if err := shield.Render(p, 0, 0, data.NewPartitionedLayer(nil), 0, o); err != nil {
		t.Fatalf("Render: %v", err)
	}
	p.Flush()

	if strings.Contains(p.String(), "WIPE_SHIELD") {
		t.Error("expected a zero-distance wipe shield to emit nothing")
	}
}

func TestWipeShieldRendersAroundTheModel(t *testing.T) {
	o := newTestRendererOptions()
	o.Print.MultiMaterial.WipeShieldDistanceFromShapes = data.Millimeter(2).ToMicrometer()

	var shield WipeShield
	shield.Init(testModel())

	p := newTestRendererPlanner(t, o)
	if err := shield.Render(p, 0, 0, data.NewPartitionedLayer(nil), 0, o); err != nil {
		t.Fatalf("Render: %v", err)
	}
	p.Flush()

	out := p.String()
	if !strings.Contains(out, "TYPE:WIPE_SHIELD") {
		t.Error("expected the wipe shield type comment")
	}
	if !strings.Contains(out, "G1") {
		t.Error("expected the wipe shield outline to be extruded")
	}
}
