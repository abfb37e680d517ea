package data

// Path is an ordered, implicitly-closed sequence of 2D integer points.
// Winding: outers are CCW (positive signed area), holes are CW (negative).
type Path []MicroPoint

// Paths is an ordered sequence of Path, treated as an even-odd region for
// boolean operations performed by the clip package.
type Paths []Path

// IsAlmostFinished reports whether the first and last point of the path are
// within snapDistance of each other, i.e. the path is "almost" closed.
func (p Path) IsAlmostFinished(snapDistance Micrometer) bool {
	if len(p) < 2 {
		return false
	}
	return p[0].Sub(p[len(p)-1]).ShorterThan(snapDistance)
}

// Length returns the total length of the open polyline described by p.
func (p Path) Length() Micrometer {
	var total Micrometer
	for i := 1; i < len(p); i++ {
		total += p[i].Sub(p[i-1]).Size()
	}
	return total
}

// SignedArea returns twice the signed area of the closed polygon described
// by p (positive for CCW, negative for CW); dividing by 2 gives the true
// area but callers that only need the sign skip the division.
func (p Path) SignedArea() int64 {
	if len(p) < 3 {
		return 0
	}
	var area int64
	for i := range p {
		j := (i + 1) % len(p)
		area += int64(p[i].X())*int64(p[j].Y()) - int64(p[j].X())*int64(p[i].Y())
	}
	return area
}

// IsCCW reports whether p winds counter-clockwise (an outer outline).
func (p Path) IsCCW() bool {
	return p.SignedArea() > 0
}

// Reversed returns p with point order reversed, without mutating p.
func (p Path) Reversed() Path {
	out := make(Path, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// EnsureCCW returns p reversed if it isn't already wound CCW.
func (p Path) EnsureCCW() Path {
	if p.IsCCW() {
		return p
	}
	return p.Reversed()
}

// EnsureCW returns p reversed if it isn't already wound CW.
func (p Path) EnsureCW() Path {
	if !p.IsCCW() {
		return p
	}
	return p.Reversed()
}

// Size returns the bounding box of p as (min, max).
func (p Path) Size() (min MicroPoint, max MicroPoint) {
	if len(p) == 0 {
		return MicroPoint{}, MicroPoint{}
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		if pt.X() < min.X() {
			min.SetX(pt.X())
		}
		if pt.Y() < min.Y() {
			min.SetY(pt.Y())
		}
		if pt.X() > max.X() {
			max.SetX(pt.X())
		}
		if pt.Y() > max.Y() {
			max.SetY(pt.Y())
		}
	}
	return min, max
}

// Simplify removes points that are nearly collinear with their neighbours or
// closer together than the given tolerances. A negative tolerance selects a
// small default suitable for post-clip cleanup. This never changes topology,
// only point count.
func (p Path) Simplify(distanceTolerance, areaTolerance Micrometer) Path {
	if distanceTolerance < 0 {
		distanceTolerance = 10
	}
	if areaTolerance < 0 {
		areaTolerance = 50
	}
	if len(p) < 3 {
		return p
	}

	out := make(Path, 0, len(p))
	for _, pt := range p {
		if len(out) == 0 {
			out = append(out, pt)
			continue
		}
		prev := out[len(out)-1]
		if pt.Sub(prev).ShorterThanOrEqual(distanceTolerance) {
			continue
		}
		if len(out) >= 2 {
			a := out[len(out)-2]
			b := pt
			twiceArea := (int64(prev.X())-int64(a.X()))*(int64(b.Y())-int64(a.Y())) -
				(int64(b.X())-int64(a.X()))*(int64(prev.Y())-int64(a.Y()))
			if twiceArea < 0 {
				twiceArea = -twiceArea
			}
			if Micrometer(twiceArea/2) <= areaTolerance {
				out[len(out)-1] = pt
				continue
			}
		}
		out = append(out, pt)
	}
	if len(out) > 1 && out[0].Sub(out[len(out)-1]).ShorterThanOrEqual(distanceTolerance) {
		out = out[:len(out)-1]
	}
	return out
}

// Size returns the combined bounding box of all paths (min, max).
func (p Paths) Size() (min MicroPoint, max MicroPoint) {
	first := true
	for _, path := range p {
		if len(path) == 0 {
			continue
		}
		pMin, pMax := path.Size()
		if first {
			min, max = pMin, pMax
			first = false
			continue
		}
		if pMin.X() < min.X() {
			min.SetX(pMin.X())
		}
		if pMin.Y() < min.Y() {
			min.SetY(pMin.Y())
		}
		if pMax.X() > max.X() {
			max.SetX(pMax.X())
		}
		if pMax.Y() > max.Y() {
			max.SetY(pMax.Y())
		}
	}
	return min, max
}
