package modifier // C6 InfillGenerator (sparse region)

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type internalInfillModifier struct {
	handler.Named
	options *data.Options
}

// NewInternalInfillModifier computes the sparse-infill region of each
// layer: its innermost insets minus the union of its top and bottom skin
// (spec.md §4.5's "sparseRegion = insets[last] - skinOutline"). The region
// is stored as the layer-wide "infill" attribute; the actual line pattern
// (LINES/GRID, angle, spacing) is generated by gcode/renderer.Infill at
// G-code time from this region plus data.Options.Print.InfillPercent.
func NewInternalInfillModifier(options *data.Options) handler.LayerModifier {
	return &internalInfillModifier{
		Named:   handler.Named{Name: "InternalInfill"},
		options: options,
	}
}

func (m internalInfillModifier) Init(_ data.OptimizedModel) {}

func (m internalInfillModifier) Modify(layers []data.PartitionedLayer) error {
	cl := clip.NewClipper()

	for layerNr, layer := range layers {
		innermost := innermostInsetsOfLayer(layer)

		top, err := PartsAttribute(layer, "top")
		if err != nil {
			return err
		}
		bottom, err := PartsAttribute(layer, "bottom")
		if err != nil {
			return err
		}

		skin, ok := cl.Union(top, bottom)
		if !ok {
			return errSkinUnion
		}

		sparse, ok := cl.Difference(innermost, skin)
		if !ok {
			return errSparseDiff
		}

		if len(sparse) == 0 {
			continue
		}

		newLayer := newExtendedLayer(layer)
		newLayer.SetAttribute("infill", sparse)
		layers[layerNr] = newLayer
	}

	return nil
}

const (
	errSkinUnion  = infillError("could not union top and bottom skin")
	errSparseDiff = infillError("could not compute sparse infill region")
)
