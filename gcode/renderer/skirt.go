package renderer

import (
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/modifier"
)

// Skirt renders the priming loops modifier.NewBrimModifier stored as the
// "skirt" attribute on layer 0.
type Skirt struct{}

func (Skirt) Init(model data.OptimizedModel) {}

func (Skirt) Render(p *gcode.Planner, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	if layerNr != 0 {
		return nil
	}

	parts, err := modifier.PartsAttribute(layer, "skirt")
	if err != nil || len(parts) == 0 {
		return err
	}

	p.AddComment("TYPE:SKIRT")

	var polys data.Paths
	for _, part := range parts {
		polys = append(polys, part.Outline())
	}
	p.WritePolygonsByOptimizer(polys, nil, options.Print.Speed.Travel)

	return nil
}

// Brim is an alias kept distinct from Skirt so a printer profile can place
// it at a different point in the renderer list (e.g. directly against the
// first perimeter) without affecting skirt ordering; it reads the same
// "brim" attribute modifier.NewBrimModifier writes alongside "skirt".
type Brim struct{}

func (Brim) Init(model data.OptimizedModel) {}

func (Brim) Render(p *gcode.Planner, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	if layerNr != 0 {
		return nil
	}

	parts, err := modifier.PartsAttribute(layer, "brim")
	if err != nil || len(parts) == 0 {
		return err
	}

	p.AddComment("TYPE:BRIM")

	var polys data.Paths
	for _, part := range parts {
		polys = append(polys, part.Outline())
	}
	p.WritePolygonsByOptimizer(polys, nil, options.Print.Speed.Travel)

	return nil
}
