package modifier // C5 SkinGenerator

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type infillModifier struct {
	handler.Named
	options *data.Options
}

// NewInfillModifier derives, for every layer, the top and bottom solid skin
// regions (spec.md §4.5): topSolid is this layer's innermost inset with the
// innermost insets of the numberOfTopLayers layers above subtracted away;
// bottomSolid is symmetric, looking numberOfBottomLayers layers down. The
// results are stored as the layer-wide "top"/"bottom" attributes, read by
// gcode/renderer.Infill at G-code time. Sparse-region computation (C6's
// input) is the sibling NewInternalInfillModifier, so that the Init/Modify
// pass over skin can be parallelized independently of sparse-region
// clipping if ever needed.
func NewInfillModifier(options *data.Options) handler.LayerModifier {
	return &infillModifier{
		Named:   handler.Named{Name: "Infill"},
		options: options,
	}
}

func (m infillModifier) Init(_ data.OptimizedModel) {}

func innermostInsetsOfLayer(layer data.PartitionedLayer) []data.LayerPart {
	var out []data.LayerPart
	for _, part := range layer.LayerParts() {
		out = append(out, InnermostInset(part)...)
	}
	return out
}

func (m infillModifier) Modify(layers []data.PartitionedLayer) error {
	cl := clip.NewClipper()

	innermost := make([][]data.LayerPart, len(layers))
	for i, layer := range layers {
		innermost[i] = innermostInsetsOfLayer(layer)
	}

	for layerNr, layer := range layers {
		current := innermost[layerNr]

		topNeighbours, ok := unionRange(cl, innermost, layerNr+1, layerNr+m.options.Print.NumberOfTopLayers)
		if !ok {
			return errTopUnion
		}
		bottomNeighbours, ok := unionRange(cl, innermost, layerNr-m.options.Print.NumberOfBottomLayers, layerNr-1)
		if !ok {
			return errBottomUnion
		}

		topSolid, ok := cl.Difference(current, topNeighbours)
		if !ok {
			return errTopUnion
		}
		bottomSolid, ok := cl.Difference(current, bottomNeighbours)
		if !ok {
			return errBottomUnion
		}

		newLayer := newExtendedLayer(layer)
		if len(topSolid) > 0 {
			newLayer.SetAttribute("top", topSolid)
		}
		if len(bottomSolid) > 0 {
			newLayer.SetAttribute("bottom", bottomSolid)
		}
		layers[layerNr] = newLayer
	}

	return nil
}

// unionRange unions innermost[from..to] (inclusive, clamped to bounds).
func unionRange(cl clip.Clipper, innermost [][]data.LayerPart, from, to int) ([]data.LayerPart, bool) {
	if from < 0 {
		from = 0
	}
	if to >= len(innermost) {
		to = len(innermost) - 1
	}

	var result []data.LayerPart
	for i := from; i <= to; i++ {
		var ok bool
		result, ok = cl.Union(result, innermost[i])
		if !ok {
			return nil, false
		}
	}
	return result, true
}

type infillError string

func (e infillError) Error() string { return string(e) }

const (
	errTopUnion    = infillError("could not compute top skin region")
	errBottomUnion = infillError("could not compute bottom skin region")
)
