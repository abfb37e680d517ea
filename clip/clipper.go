// Package clip provides the 2D polygon boolean/offset kernel used by every
// per-layer processing stage (C3 LayerPartitioner, C4 InsetGenerator,
// C6 InfillGenerator, C7 SupportGenerator). It is a thin, narrowly-typed
// boundary around github.com/aligator/go.clipper: the LayerPart stays the
// owner of its vertex buffers, this package only ever consumes and returns
// data.Path/data.Paths/data.LayerPart values.
package clip

import (
	"github.com/aligator/goslice/data"
	clipper "github.com/aligator/go.clipper"
)

// Clipper is the interface needed by the rest of the pipeline to clip,
// offset and fill polygons.
type Clipper interface {
	// GenerateLayerParts partitions a raw, unordered set of closed polygons
	// for one layer into canonical LayerParts (outers with nested holes).
	GenerateLayerParts(polygons data.Paths) (data.PartitionedLayer, bool)

	// InsetLayer insets every part of a layer. See Inset for the meaning of
	// firstOffset/insetCount/stepOffset.
	InsetLayer(parts []data.LayerPart, firstOffset data.Micrometer, insetCount int, stepOffset data.Micrometer) Insets

	// Inset insets a single part. inset[0] = part offset inward by
	// firstOffset; inset[i] = inset[i-1] offset inward by a further
	// stepOffset. The result may have fewer than insetCount entries if an
	// inset becomes empty.
	Inset(part data.LayerPart, firstOffset data.Micrometer, insetCount int, stepOffset data.Micrometer) [][]data.LayerPart

	// Union merges two sets of parts (even-odd in, non-zero canonical out).
	Union(a, b []data.LayerPart) ([]data.LayerPart, bool)

	// Difference subtracts b from a.
	Difference(a, b []data.LayerPart) ([]data.LayerPart, bool)

	// Intersection returns the overlap of a and b.
	Intersection(a, b []data.LayerPart) ([]data.LayerPart, bool)

	// Fill creates an infill polyline set for the given pattern clipped to
	// part.
	Fill(part data.LayerPart, pattern Pattern) data.Paths
}

// Insets is the result of InsetLayer: one []data.LayerPart entry per inset
// level of each input part, in input-part order and outermost level first
// within a part.
type Insets [][]data.LayerPart

// ToOneDimension flattens all rings of all parts into a single slice, the
// shape most modifiers (support, perimeter) actually want to union/diff
// against.
func (i Insets) ToOneDimension() []data.LayerPart {
	var out []data.LayerPart
	for _, part := range i {
		out = append(out, part...)
	}
	return out
}

// defaultCombBoundaryOffset is the comb-boundary inset used when a Clipper is
// constructed without an explicit extrusion width (NewClipper()).
const defaultCombBoundaryOffset = data.Micrometer(400)

type clipperClipper struct {
	combBoundaryOffset data.Micrometer
}

// NewClipper returns a new Clipper backed by github.com/aligator/go.clipper.
// An optional extrusionWidth sets the comb-boundary inset GenerateLayerParts
// computes for each part (roughly one extrusion width); omitting it keeps
// the historical 400µm default.
func NewClipper(extrusionWidth ...data.Micrometer) Clipper {
	offset := defaultCombBoundaryOffset
	if len(extrusionWidth) > 0 && extrusionWidth[0] > 0 {
		offset = extrusionWidth[0]
	}
	return clipperClipper{combBoundaryOffset: offset}
}

// --- conversion helpers between data types and the external clipper lib ---

func clipperPoint(p data.MicroPoint) *clipper.IntPoint {
	return &clipper.IntPoint{X: clipper.CInt(p.X()), Y: clipper.CInt(p.Y())}
}

func clipperPath(p data.Path) clipper.Path {
	var result clipper.Path
	prev := -1
	for _, point := range p {
		if prev >= 0 && point.Sub(p[prev]).ShorterThanOrEqual(100) {
			continue
		}
		result = append(result, clipperPoint(point))
		prev = len(result) - 1
	}
	return result
}

func clipperPaths(p data.Paths) clipper.Paths {
	var result clipper.Paths
	for _, path := range p {
		result = append(result, clipperPath(path))
	}
	return result
}

func partsToClipperPaths(parts []data.LayerPart) clipper.Paths {
	var result clipper.Paths
	for _, part := range parts {
		result = append(result, clipperPath(part.Outline()))
		result = append(result, clipperPaths(part.Holes())...)
	}
	return result
}

func microPoint(p *clipper.IntPoint) data.MicroPoint {
	return data.NewMicroPoint(data.Micrometer(p.X), data.Micrometer(p.Y))
}

func microPath(p clipper.Path) data.Path {
	var result data.Path
	for _, point := range p {
		result = append(result, microPoint(point))
	}
	return result.Simplify(-1, -1)
}

// polyTreeToLayerParts walks a clipper.PolyTree breadth-first; each node
// contributes one outer outline plus its direct-child holes, and
// grandchildren (islands nested inside holes) become new top-level parts.
func polyTreeToLayerParts(tree *clipper.PolyTree) []data.LayerPart {
	var layerParts []data.LayerPart

	var round []*clipper.PolyNode
	round = append(round, tree.Childs()...)

	for len(round) > 0 {
		var next []*clipper.PolyNode

		for _, p := range round {
			var holes data.Paths
			for _, child := range p.Childs() {
				holes = append(holes, microPath(child.Contour()))
				next = append(next, child.Childs()...)
			}
			layerParts = append(layerParts, data.NewUnknownLayerPart(microPath(p.Contour()), holes))
		}

		round = next
	}

	return layerParts
}

func (c clipperClipper) GenerateLayerParts(polygons data.Paths) (data.PartitionedLayer, bool) {
	polyList := clipperPaths(polygons)
	if len(polyList) == 0 {
		return data.NewPartitionedLayer(nil), true
	}

	cl := clipper.NewClipper(clipper.IoNone)
	cl.AddPaths(polyList, clipper.PtSubject, true)
	result, ok := cl.Execute2(clipper.CtUnion, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		return nil, false
	}

	parts := polyTreeToLayerParts(result)
	for i, part := range parts {
		parts[i] = c.withCombBoundary(part)
	}

	return data.NewPartitionedLayer(parts), true
}

// withCombBoundary computes the comb boundary used by the GCodePlanner:
// the part's outline offset inward by roughly one extrusion width.
func (c clipperClipper) withCombBoundary(part data.LayerPart) data.LayerPart {
	rings := c.Inset(part, c.combBoundaryOffset, 1, c.combBoundaryOffset)
	if len(rings) == 0 || len(rings[0]) == 0 {
		return part
	}
	return part.WithAttribute("combBoundary", rings[0][0].Outline())
}

func (c clipperClipper) InsetLayer(parts []data.LayerPart, firstOffset data.Micrometer, insetCount int, stepOffset data.Micrometer) Insets {
	var result Insets
	for _, part := range parts {
		result = append(result, c.Inset(part, firstOffset, insetCount, stepOffset)...)
	}
	return result
}

func (c clipperClipper) Inset(part data.LayerPart, firstOffset data.Micrometer, insetCount int, stepOffset data.Micrometer) [][]data.LayerPart {
	var insets [][]data.LayerPart

	for insetNr := 0; insetNr < insetCount; insetNr++ {
		o := clipper.NewClipperOffset()
		o.MiterLimit = 2
		o.AddPaths(clipperPaths(data.Paths{part.Outline()}), clipper.JtSquare, clipper.EtClosedPolygon)
		o.AddPaths(clipperPaths(part.Holes()), clipper.JtSquare, clipper.EtClosedPolygon)

		distance := -(float64(firstOffset) + float64(stepOffset)*float64(insetNr))
		result := o.Execute2(distance)
		if len(result.Childs()) == 0 {
			break
		}
		insets = append(insets, polyTreeToLayerParts(result))
	}

	return insets
}

func (c clipperClipper) boolOp(op clipper.ClipType, a, b []data.LayerPart) ([]data.LayerPart, bool) {
	cl := clipper.NewClipper(clipper.IoNone)
	if len(a) > 0 {
		cl.AddPaths(partsToClipperPaths(a), clipper.PtSubject, true)
	}
	if len(b) > 0 {
		cl.AddPaths(partsToClipperPaths(b), clipper.PtClip, true)
	}
	if len(a) == 0 && len(b) == 0 {
		return nil, true
	}

	result, ok := cl.Execute2(op, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		return nil, false
	}
	return polyTreeToLayerParts(result), true
}

func (c clipperClipper) Union(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	return c.boolOp(clipper.CtUnion, a, b)
}

func (c clipperClipper) Difference(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	if len(b) == 0 {
		return a, true
	}
	return c.boolOp(clipper.CtDifference, a, b)
}

func (c clipperClipper) Intersection(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	if len(a) == 0 || len(b) == 0 {
		return nil, true
	}
	return c.boolOp(clipper.CtIntersection, a, b)
}

func (c clipperClipper) Fill(part data.LayerPart, pattern Pattern) data.Paths {
	if pattern == nil {
		return nil
	}

	lines := pattern.Generate()
	if len(lines) == 0 {
		return nil
	}

	cl := clipper.NewClipper(clipper.IoNone)
	cl.AddPaths(clipperPaths(data.Paths{part.Outline()}), clipper.PtClip, true)
	cl.AddPaths(clipperPaths(part.Holes()), clipper.PtClip, true)
	cl.AddPaths(clipperPaths(lines), clipper.PtSubject, false)

	tree, ok := cl.Execute2(clipper.CtIntersection, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		return nil
	}

	var result data.Paths
	for _, c := range tree.Childs() {
		result = append(result, microPath(c.Contour()))
	}
	return result
}
