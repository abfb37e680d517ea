// Package modifier implements the per-layer 2D polygon processing stages:
// insets/perimeters (C4), skin (C5), sparse infill (C6), support (C7), and
// skirt/brim/raft/bridge (C8 except wipe tower/shield, which are gcode
// renderers since they only ever appear in the emitted G-code, not in any
// LayerPart geometry consumed elsewhere).
package modifier

import (
	"errors"

	"github.com/aligator/goslice/data"
)

// newExtendedLayer is the modifier package's entry point into
// data.NewExtendedLayer, kept as a short local alias since every modifier in
// this package calls it the same way the teacher's support.go does.
func newExtendedLayer(base data.PartitionedLayer) *data.ExtendedLayer {
	return data.NewExtendedLayer(base)
}

// PartsAttribute extracts a []data.LayerPart attribute from a layer. If it
// has the wrong type, an error is returned; if it doesn't exist, (nil, nil)
// is returned — the same two-step contract as FullSupport in support.go,
// generalized to any attribute key so every modifier reads attributes the
// same way.
func PartsAttribute(layer data.PartitionedLayer, key string) ([]data.LayerPart, error) {
	attr, ok := layer.Attributes()[key]
	if !ok {
		return nil, nil
	}
	parts, ok := attr.([]data.LayerPart)
	if !ok {
		return nil, errors.New("the attribute " + key + " has the wrong datatype")
	}
	return parts, nil
}

// BrimOuterDimension extracts the skirt/brim outer-boundary attribute set by
// NewBrimModifier, if any, so that later modifiers (support) can avoid
// overlapping it.
func BrimOuterDimension(layer data.PartitionedLayer) ([]data.LayerPart, error) {
	return PartsAttribute(layer, "brim")
}
