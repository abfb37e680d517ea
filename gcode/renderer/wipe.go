package renderer

import (
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
)

// WipeTower renders a small square tower printed on every layer next to the
// model, as a place for the nozzle to purge (spec.md §4.8). It is printed
// wherever it sits in the renderer list, whether or not the extruder changed
// on that layer; it is disabled when MultiMaterial.WipeTowerSize is 1µm or
// less. Its
// footprint is derived once, in Init, from the model's own bounding box
// rather than being supplied by the caller: unlike skirt/brim/support it
// never needs to participate in a boolean op against the model, so there is
// nothing for a modifier to precompute.
type WipeTower struct {
	max      data.MicroVec3
	hasModel bool
}

func (t *WipeTower) Init(model data.OptimizedModel) {
	if model == nil {
		return
	}
	t.max, t.hasModel = model.Max(), true
}

func (t *WipeTower) Render(p *gcode.Planner, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	size := options.Print.MultiMaterial.WipeTowerSize
	if !t.hasModel || size <= 1 {
		return nil
	}

	gap := options.Print.MultiMaterial.WipeShieldDistanceFromShapes
	origin := data.NewMicroPoint(t.max.X()+gap, t.max.Y()-size)

	p.AddComment("TYPE:WIPE_TOWER")

	loop := data.Path{
		origin,
		origin.Add(data.NewMicroPoint(size, 0)),
		origin.Add(data.NewMicroPoint(size, size)),
		origin.Add(data.NewMicroPoint(0, size)),
	}
	p.WritePolygonsByOptimizer(data.Paths{loop}, nil, options.Print.Speed.SupportMaterial)

	return nil
}

// WipeShield renders a thin wall between the model and any wipe tower or
// neighbouring object, printed at every layer to catch ooze during a tool
// change without relying on retraction alone (spec.md §4.8). Its footprint
// is the model's bounding box offset outward by
// MultiMaterial.WipeShieldDistanceFromShapes, recomputed from that option on
// every render since (unlike the tower) it carries no size setting of its
// own.
type WipeShield struct {
	min, max data.MicroVec3
	hasModel bool
}

func (s *WipeShield) Init(model data.OptimizedModel) {
	if model == nil {
		return
	}
	s.min, s.max, s.hasModel = model.Min(), model.Max(), true
}

func (s *WipeShield) Render(p *gcode.Planner, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	d := options.Print.MultiMaterial.WipeShieldDistanceFromShapes
	if !s.hasModel || d <= 0 {
		return nil
	}

	p.AddComment("TYPE:WIPE_SHIELD")

	outline := data.Path{
		data.NewMicroPoint(s.min.X()-d, s.min.Y()-d),
		data.NewMicroPoint(s.max.X()+d, s.min.Y()-d),
		data.NewMicroPoint(s.max.X()+d, s.max.Y()+d),
		data.NewMicroPoint(s.min.X()-d, s.max.Y()+d),
	}
	p.WritePolygonsByOptimizer(data.Paths{outline}, nil, options.Print.Speed.SupportMaterial)

	return nil
}
