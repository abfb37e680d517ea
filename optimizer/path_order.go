package optimizer

import "github.com/aligator/goslice/data"

// OrderedPolygon is one polygon in the order chosen by PathOrderOptimizer,
// rotated so that StartIndex is the first point to be emitted.
type OrderedPolygon struct {
	Path       data.Path
	StartIndex int
}

// PathOrderOptimizer implements C9: a greedy nearest-neighbour ordering of a
// set of polygons, given a current XY position, per spec.md §4.9.
type PathOrderOptimizer struct{}

// Order returns polys ordered by repeatedly picking the nearest not-yet-used
// polygon to the current point, and returns the point the optimizer ends at
// (the chosen start vertex of the last emitted polygon, since a closed loop
// ends where it starts).
func (PathOrderOptimizer) Order(current data.MicroPoint, polys data.Paths) ([]OrderedPolygon, data.MicroPoint) {
	used := make([]bool, len(polys))
	var result []OrderedPolygon

	for range polys {
		bestPoly := -1
		bestVertex := -1
		var bestDist data.Micrometer

		for i, poly := range polys {
			if used[i] || len(poly) == 0 {
				continue
			}
			for vi, pt := range poly {
				d := current.Distance(pt)
				if bestPoly == -1 || d < bestDist || (d == bestDist && (i < bestPoly || (i == bestPoly && vi < bestVertex))) {
					bestPoly = i
					bestVertex = vi
					bestDist = d
				}
			}
		}

		if bestPoly == -1 {
			break
		}

		used[bestPoly] = true
		result = append(result, OrderedPolygon{Path: polys[bestPoly], StartIndex: bestVertex})
		current = polys[bestPoly][bestVertex]
	}

	return result, current
}
