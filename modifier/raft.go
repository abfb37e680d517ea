package modifier // C8 Raft (Auxiliary structures)

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

// RaftLayer is one synthesized raft layer: its own Z height, thickness, and
// line spacing (base/interface/surface layers each print at a different
// density), plus the polygon to fill.
type RaftLayer struct {
	Z, Thickness, LineSpacing data.Micrometer
	Outline                   data.LayerPart
}

// BuildRaftLayers synthesizes the base/interface/surface layers printed
// beneath the model (spec.md §4.8), when enabled. It is not a
// handler.LayerModifier: its output is an entirely new set of layers
// prepended to the slice, not a modification of an existing one, so the
// Pipeline calls it directly, after the modifier chain and before G-code
// generation.
func BuildRaftLayers(options *data.Options, firstRealLayer data.PartitionedLayer) []RaftLayer {
	raft := options.Print.Raft
	if !raft.Enabled {
		return nil
	}

	parts := firstRealLayer.LayerParts()
	if len(parts) == 0 {
		return nil
	}

	hullPoly := convexHullOf(parts)
	footprint := data.NewUnknownLayerPart(hullPoly, nil)

	cl := clip.NewClipper()
	rings := cl.Inset(footprint, -raft.ExtraDistanceAround, 1, 0)
	if len(rings) == 0 || len(rings[0]) == 0 {
		return nil
	}
	outline := rings[0][0]

	var layers []RaftLayer
	z := raft.BaseThickness
	layers = append(layers, RaftLayer{Z: z, Thickness: raft.BaseThickness, LineSpacing: raft.BaseThickness * 3, Outline: outline})

	z += raft.InterfaceThickness
	layers = append(layers, RaftLayer{Z: z, Thickness: raft.InterfaceThickness, LineSpacing: raft.InterfaceThickness * 2, Outline: outline})

	for i := 0; i < raft.SurfaceLayers; i++ {
		z += raft.SurfaceThickness
		layers = append(layers, RaftLayer{Z: z, Thickness: raft.SurfaceThickness, LineSpacing: options.Printer.ExtrusionWidth, Outline: outline})
	}

	return layers
}
