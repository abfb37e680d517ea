// Package slicer implements C2: plane-sweep intersection of the mesh with
// each layer's horizontal plane, and chaining of the resulting segments into
// closed 2D polygons, handed off to the clip package for partitioning into
// LayerParts (C3).
//
// Grounded on an earlier revision of the teacher's own slicer package
// (slicer/slice/layer.go, module "GoSlicer"): segments carry their
// originating face and are chained by following TouchingFaceIndices() from
// each segment's endpoint, the same neighbour-walk this package uses.
package slicer

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type slicerImpl struct {
	options *data.Options
}

// NewSlicer returns a handler.ModelSlicer implementing spec.md §4.2.
func NewSlicer(options *data.Options) handler.ModelSlicer {
	return &slicerImpl{options: options}
}

// closeEnoughDistance is the tolerance, in µm, used to decide whether two
// segment endpoints describe the same chain point.
const closeEnoughDistance = data.Micrometer(30)

// repairSnapDistance bounds the second-pass greedy join of open chains;
// spec.md §4.2 ties it to one extrusion width.
func (s *slicerImpl) repairSnapDistance() data.Micrometer {
	return s.options.Printer.ExtrusionWidth
}

// layerZs computes the printZ of every layer: layer 0 sits at
// firstLayerThickness, every following layer adds layerThickness, for as
// many layers as fit under the model's height (spec.md testable property 2).
func layerZs(o *data.Options, modelMaxZ data.Micrometer) []data.Micrometer {
	first := o.Print.InitialLayerThickness
	step := o.Print.LayerThickness
	if modelMaxZ < first {
		return nil
	}

	count := int((modelMaxZ-first)/step) + 1
	zs := make([]data.Micrometer, count)
	z := first
	for i := 0; i < count; i++ {
		zs[i] = z
		z += step
	}
	return zs
}

type segment struct {
	start, end      data.MicroPoint
	faceIndex       int
	addedToPolygon  bool
}

func (s *slicerImpl) Slice(model data.OptimizedModel) ([]data.PartitionedLayer, error) {
	zs := layerZs(s.options, model.Max().Z())
	layers := make([]data.PartitionedLayer, len(zs))

	cl := clip.NewClipper(s.options.Printer.ExtrusionWidth)

	for layerIndex, z := range zs {
		segments, faceToSegment := sliceFaces(model, z)
		polygons, extruders := chainSegments(model, segments, faceToSegment, s.repairSnapDistance())

		part, ok := generateLayerPartsByExtruder(cl, polygons, extruders)
		if !ok {
			s.options.GoSlice.Logger.Warnf("layer %d: clipper union failed, emitting empty layer", layerIndex)
			part = data.NewPartitionedLayer(nil)
		}
		if len(part.LayerParts()) == 0 {
			s.options.GoSlice.Logger.Warnf("layer %d: degenerate slice, no polygons", layerIndex)
		}

		layers[layerIndex] = part
	}

	return layers, nil
}

// sliceFaces computes, for every face straddling the plane z, the 2D
// intersection segment, oriented so that the solid side is to the left of
// start->end (consistent with a CCW outer on a convex slice).
func sliceFaces(model data.OptimizedModel, z data.Micrometer) ([]segment, map[int]int) {
	vertices := model.Vertices()
	faces := model.Faces()

	var segments []segment
	faceToSegment := map[int]int{}

	for faceIndex, face := range faces {
		var below, above [3]int
		nBelow, nAbove := 0, 0
		for _, vi := range face.Vertices {
			if vertices[vi].Z() < z {
				below[nBelow] = vi
				nBelow++
			} else {
				above[nAbove] = vi
				nAbove++
			}
		}

		if nBelow == 0 || nAbove == 0 {
			continue
		}

		var pts []data.MicroPoint
		firstGoesUp := false
		// Walk the three edges of the triangle; every edge that crosses
		// the plane contributes one intersection point. Exactly two edges
		// cross for a proper straddle.
		v := face.Vertices
		for e := 0; e < 3; e++ {
			a, b := v[e], v[(e+1)%3]
			za, zb := vertices[a].Z(), vertices[b].Z()
			if (za < z) == (zb < z) {
				continue
			}
			if len(pts) == 0 {
				firstGoesUp = za < z
			}
			t := float64(z-za) / float64(zb-za)
			pa, pb := vertices[a].To2D(), vertices[b].To2D()
			x := float64(pa.X()) + t*float64(pb.X()-pa.X())
			y := float64(pa.Y()) + t*float64(pb.Y()-pa.Y())
			pts = append(pts, data.NewMicroPoint(data.Micrometer(x), data.Micrometer(y)))
		}

		if len(pts) != 2 {
			continue
		}
		// For a CCW-wound face (seen from outside), the segment runs from the
		// edge crossing upward to the edge crossing downward.
		if !firstGoesUp {
			pts[0], pts[1] = pts[1], pts[0]
		}

		seg := segment{start: pts[0], end: pts[1], faceIndex: faceIndex}
		faceToSegment[faceIndex] = len(segments)
		segments = append(segments, seg)
	}

	return segments, faceToSegment
}

// chainSegments follows TouchingFaceIndices() from each segment's end point
// to the next face's segment start, closing polygons when the chase returns
// to the starting segment. Chains that don't close are run through a
// second, greedy nearest-endpoint join pass bounded by snapDistance; what's
// still open afterwards is dropped (OpenContour, spec.md §7). It returns the
// closed polygons alongside the extruder index of each one's first segment's
// face, so multi-volume models keep each volume's own extruder downstream.
func chainSegments(model data.OptimizedModel, segments []segment, faceToSegment map[int]int, snapDistance data.Micrometer) (data.Paths, []int) {
	var polygons data.Paths
	var closed []bool
	var extruders []int

	for start := range segments {
		if segments[start].addedToPolygon {
			continue
		}

		polygon := data.Path{segments[start].start}
		current := start
		isClosed := false

		for {
			seg := &segments[current]
			seg.addedToPolygon = true
			polygon = append(polygon, seg.end)

			face := model.OptimizedFace(seg.faceIndex)
			next := -1
			for _, touching := range face.TouchingFaceIndices() {
				if touching == data.NoFace {
					continue
				}
				touchingSeg, ok := faceToSegment[touching]
				if !ok {
					continue
				}
				if segments[touchingSeg].start.Sub(seg.end).ShorterThan(closeEnoughDistance) {
					if touchingSeg == start {
						isClosed = true
					}
					if segments[touchingSeg].addedToPolygon {
						continue
					}
					next = touchingSeg
				}
			}

			if next == -1 {
				break
			}
			current = next
		}

		polygons = append(polygons, polygon)
		closed = append(closed, isClosed)
		extruders = append(extruders, model.OptimizedFace(segments[start].faceIndex).Extruder())
	}

	return repairAndFilter(polygons, closed, extruders, snapDistance)
}

// repairAndFilter greedily joins unclosed chains whose endpoints are within
// snapDistance, then drops anything still open or too short to matter.
func repairAndFilter(polygons data.Paths, closed []bool, extruders []int, snapDistance data.Micrometer) (data.Paths, []int) {
rerun:
	for i, poly := range polygons {
		if poly == nil || closed[i] {
			continue
		}

		best := -1
		var bestDist data.Micrometer
		for j, other := range polygons {
			if other == nil || closed[j] || i == j {
				continue
			}
			d := poly[len(poly)-1].Sub(other[0]).Size()
			if d < snapDistance && (best == -1 || d < bestDist) {
				best = j
				bestDist = d
			}
		}

		if best > -1 {
			polygons[i] = append(polygons[i], polygons[best]...)
			if polygons[i].IsAlmostFinished(snapDistance) {
				polygons[i] = polygons[i][:len(polygons[i])-1]
				closed[i] = true
			}
			polygons[best] = nil
			goto rerun
		}
	}

	var result data.Paths
	var resultExtruders []int
	for i, poly := range polygons {
		if poly == nil || !closed[i] {
			continue
		}
		if poly.Length() < snapDistance {
			continue
		}
		result = append(result, poly.EnsureCCW())
		resultExtruders = append(resultExtruders, extruders[i])
	}
	return result, resultExtruders
}

// generateLayerPartsByExtruder partitions polygons into LayerParts one
// extruder at a time (so a multi-volume model's per-volume extruder survives
// the union into canonical outer+hole parts, spec.md §4.12 design note 9(b))
// and tags every resulting part with its "extruder" attribute. Single-volume
// models take the fast path of a single GenerateLayerParts call.
func generateLayerPartsByExtruder(cl clip.Clipper, polygons data.Paths, extruders []int) (data.PartitionedLayer, bool) {
	byExtruder := map[int]data.Paths{}
	var order []int
	for i, poly := range polygons {
		extruder := 0
		if i < len(extruders) {
			extruder = extruders[i]
		}
		if _, ok := byExtruder[extruder]; !ok {
			order = append(order, extruder)
		}
		byExtruder[extruder] = append(byExtruder[extruder], poly)
	}

	var allParts []data.LayerPart
	for _, extruder := range order {
		partitioned, ok := cl.GenerateLayerParts(byExtruder[extruder])
		if !ok {
			return nil, false
		}
		for _, part := range partitioned.LayerParts() {
			allParts = append(allParts, part.WithAttribute("extruder", extruder))
		}
	}

	return data.NewPartitionedLayer(allParts), true
}
