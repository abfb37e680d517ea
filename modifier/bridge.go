package modifier // C6 InfillGenerator (bridge angle detection)

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type bridgeModifier struct {
	handler.Named
	options *data.Options
}

// NewBridgeModifier analyses each layer's bottom-skin region against the
// previous layer's model outline (spec.md §4.6): wherever the bottom skin
// has no material below it at all, it is a bridge, and the fill direction
// is chosen to maximise the span printed across the unsupported region
// rather than the configured infill angle. The winning angle is stored on
// each affected LayerPart as "bridgeAngle"; gcode/renderer.Infill overrides
// its pattern angle with it when present.
func NewBridgeModifier(options *data.Options) handler.LayerModifier {
	return &bridgeModifier{
		Named:   handler.Named{Name: "Bridge"},
		options: options,
	}
}

func (m bridgeModifier) Init(_ data.OptimizedModel) {}

// bridgeAngleCandidates are tested at a coarse step; this is a simple,
// robust approximation of "the direction that maximizes span length",
// adequate for the flat overhangs this stage needs to catch.
var bridgeAngleCandidates = []data.Degree{0, 15, 30, 45, 60, 75, 90, 105, 120, 135, 150, 165}

func (m bridgeModifier) Modify(layers []data.PartitionedLayer) error {
	cl := clip.NewClipper()

	for layerNr, layer := range layers {
		if layerNr == 0 {
			continue
		}

		bottom, err := PartsAttribute(layer, "bottom")
		if err != nil || len(bottom) == 0 {
			continue
		}

		below := layers[layerNr-1].LayerParts()

		changed := false
		for i, part := range bottom {
			overlap, ok := cl.Intersection([]data.LayerPart{part}, below)
			if !ok || len(overlap) > 0 {
				continue
			}

			angle := bestBridgeAngle(part)
			bottom[i] = part.WithAttribute("bridgeAngle", angle)
			changed = true
		}

		if changed {
			newLayer := newExtendedLayer(layer)
			newLayer.SetAttribute("bottom", bottom)
			layers[layerNr] = newLayer
		}
	}

	return nil
}

// bestBridgeAngle returns the candidate angle whose rotated bounding box is
// longest along the rotation axis, i.e. the direction spanning the
// unsupported region the furthest.
func bestBridgeAngle(part data.LayerPart) data.Degree {
	best := bridgeAngleCandidates[0]
	var bestSpan data.Micrometer = -1

	for _, candidate := range bridgeAngleCandidates {
		var min, max data.MicroPoint
		first := true
		for _, pt := range part.Outline() {
			r := pt.Rotate(-candidate)
			if first {
				min, max = r, r
				first = false
				continue
			}
			if r.X() < min.X() {
				min.SetX(r.X())
			}
			if r.X() > max.X() {
				max.SetX(r.X())
			}
		}
		span := max.X() - min.X()
		if span > bestSpan {
			bestSpan = span
			best = candidate
		}
	}

	return best
}
