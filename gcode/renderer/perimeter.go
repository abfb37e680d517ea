package renderer

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
)

// Perimeter renders the insets stored by modifier.NewPerimeterModifier,
// outermost ring last so the visible surface is printed after any inner
// walls have already bonded (spec.md §4.4/§4.10).
type Perimeter struct{}

func (Perimeter) Init(model data.OptimizedModel) {}

func (Perimeter) Render(p *gcode.Planner, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	p.AddComment("TYPE:WALL")

	speedOutside := options.Print.Speed.OutsidePerimeter
	speedInside := options.Print.Speed.InsidePerimeters

	for _, part := range layer.LayerParts() {
		if extruder, ok := part.Extruder(); ok {
			p.SetExtruder(extruder, options.Print.Retraction.AmountOnExtruderSwitch)
			renderMaterialOverlap(p, part, options, speedOutside)
		}

		insets := part.Insets()
		var comb *data.Path
		if boundary, ok := part.CombBoundary(); ok {
			comb = &boundary
		}

		for i := len(insets) - 1; i >= 0; i-- {
			inset := insets[i]
			polys := data.Paths{inset.Outline()}
			polys = append(polys, inset.Holes()...)

			speed := speedInside
			if i == 0 {
				speed = speedOutside
			}
			p.WritePolygonsByOptimizer(polys, comb, speed)
		}
	}

	return nil
}

// renderMaterialOverlap dilates a multi-extruder part's outline outward by
// MultiMaterial.OverlapPercent of the extrusion width and traces it as an
// extra pass, so its volume physically interlocks with whatever neighbouring
// material occupies that boundary instead of the two merely touching
// (spec.md §4.9 multi-material auxiliary structures).
func renderMaterialOverlap(p *gcode.Planner, part data.LayerPart, options *data.Options, speed int) {
	percent := options.Print.MultiMaterial.OverlapPercent
	if percent <= 0 {
		return
	}

	overlap := data.Micrometer(float64(options.Printer.ExtrusionWidth) * float64(percent) / 100)
	dilated := clip.NewClipper().Inset(part, -overlap, 1, 0)
	if len(dilated) == 0 {
		return
	}

	p.AddComment("TYPE:WALL-OVERLAP")
	for _, ring := range dilated[0] {
		p.WritePolygonsByOptimizer(data.Paths{ring.Outline()}, nil, speed)
	}
}
