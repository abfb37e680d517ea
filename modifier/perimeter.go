package modifier // C4 InsetGenerator

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type perimeterModifier struct {
	handler.Named
	options *data.Options
}

// NewPerimeterModifier produces numberOfPerimeters concentric inward
// offsets (insets/walls) per part, per spec.md §4.4: inset[0] is the
// outline offset inward by half an extrusion width, every further inset is
// offset by a full extrusion width from the previous one. Empty rings are
// discarded, so a part may end up with fewer insets than configured.
//
// In spiralize (vase) mode, layers at or above numberOfBottomLayers keep
// only inset[0] and are flagged for continuous Z rise; layers below that
// threshold get extra insets (SpiralizeBottomBoost, on odd layers) so the
// floor of the vase is solid.
func NewPerimeterModifier(options *data.Options) handler.LayerModifier {
	return &perimeterModifier{
		Named:   handler.Named{Name: "Perimeter"},
		options: options,
	}
}

func (m perimeterModifier) Init(_ data.OptimizedModel) {}

func (m perimeterModifier) Modify(layers []data.PartitionedLayer) error {
	cl := clip.NewClipper()
	width := m.options.Printer.ExtrusionWidth

	for layerNr, layer := range layers {
		count := m.options.Print.NumberOfPerimeters

		if m.options.Print.ContinuousSpiralOuterPerimeter {
			if layerNr >= m.options.Print.NumberOfBottomLayers {
				count = 1
			} else if layerNr%2 == 1 {
				count += m.options.Print.SpiralizeBottomBoost
			}
		}

		newLayer := newExtendedLayer(layer)
		parts := make([]data.LayerPart, len(layer.LayerParts()))

		for pi, part := range layer.LayerParts() {
			rings := cl.Inset(part, width/2, count, width)

			var insets []data.LayerPart
			for _, ring := range rings {
				insets = append(insets, ring...)
			}

			parts[pi] = part.WithAttribute("insets", insets)
		}

		newLayer.SetLayerParts(parts)
		if m.options.Print.ContinuousSpiralOuterPerimeter && layerNr >= m.options.Print.NumberOfBottomLayers {
			newLayer.SetAttribute("spiralize", true)
		}
		layers[layerNr] = newLayer
	}

	return nil
}

// InnermostInset returns the last (most deeply nested) inset ring stored on
// part by NewPerimeterModifier, the region every skin/sparse-infill
// computation in modifier/infill.go starts from.
func InnermostInset(part data.LayerPart) []data.LayerPart {
	insets := part.Insets()
	if len(insets) == 0 {
		return nil
	}
	return []data.LayerPart{insets[len(insets)-1]}
}
