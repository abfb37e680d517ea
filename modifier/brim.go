package modifier // C8 Skirt (Auxiliary structures)

import (
	hull "github.com/furstenheim/go-convex-hull-2d"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type brimModifier struct {
	handler.Named
	options *data.Options
}

// NewBrimModifier generates the priming skirt around layer 0 (spec.md
// §4.8): N loops around the convex hull of all layer-0 outlines, offset
// outward by skirtDistance_um, each further loop offset by an extra
// extrusionWidth, extended with additional loops until the total length
// reaches skirtMinLength_um. The loops follow the hull, not the exact union
// of the outlines, so they do not follow concave edges or the gaps between
// separate parts. The result is stored, on layer 0 only, under both the
// "skirt" and the "brim" layer-wide attributes; gcode/renderer.Skirt reads
// "skirt" at G-code time.
func NewBrimModifier(options *data.Options) handler.LayerModifier {
	return &brimModifier{
		Named:   handler.Named{Name: "Brim"},
		options: options,
	}
}

func (m brimModifier) Init(_ data.OptimizedModel) {}

func (m brimModifier) Modify(layers []data.PartitionedLayer) error {
	if len(layers) == 0 {
		return nil
	}

	cl := clip.NewClipper()
	skirt := m.options.Print.Skirt

	parts := layers[0].LayerParts()
	if len(parts) == 0 {
		return nil
	}

	hullPoly := convexHullOf(parts)
	width := m.options.Printer.ExtrusionWidth

	var loops data.Paths
	loopCount := skirt.NumberOfLoops
	if loopCount < 1 {
		loopCount = 1
	}

	for {
		loops = nil
		hullPart := data.NewUnknownLayerPart(hullPoly, nil)

		for i := 0; i < loopCount; i++ {
			offset := skirt.Distance + data.Micrometer(i)*width
			rings := cl.Inset(hullPart, -offset, 1, 0)
			for _, ring := range rings {
				for _, p := range ring {
					loops = append(loops, p.Outline())
				}
			}
		}

		total := data.Micrometer(0)
		for _, l := range loops {
			total += l.Length()
		}
		if total >= skirt.MinLength || loopCount > 50 {
			break
		}
		loopCount++
	}

	if len(loops) == 0 {
		return nil
	}

	newLayer := newExtendedLayer(layers[0])
	var skirtParts []data.LayerPart
	for _, loop := range loops {
		skirtParts = append(skirtParts, data.NewUnknownLayerPart(loop, nil))
	}
	newLayer.SetAttribute("skirt", skirtParts)
	newLayer.SetAttribute("brim", skirtParts)
	layers[0] = newLayer

	return nil
}

// convexHullOf computes the 2D convex hull around every outline in parts,
// using the convex-hull dependency that has no other natural home in this
// pipeline: a hull is a cheap, adequate stand-in for a full union when all
// that's needed is "a loop that surely clears every part".
func convexHullOf(parts []data.LayerPart) data.Path {
	var pts []hull.Point
	for _, part := range parts {
		for _, p := range part.Outline() {
			pts = append(pts, hull.Point{X: float64(p.X()), Y: float64(p.Y())})
		}
	}

	hullPts := hull.ConvexHull(pts)

	out := make(data.Path, len(hullPts))
	for i, p := range hullPts {
		out[i] = data.NewMicroPoint(data.Micrometer(p.X), data.Micrometer(p.Y))
	}
	return out.EnsureCCW()
}
