package clip

import "github.com/aligator/goslice/data"

// Pattern generates raw (unclipped) infill lines; Clipper.Fill intersects
// them against a part's region. Kept separate from the region so the same
// pattern can be reused across several parts sharing one bounding box
// (top/bottom skin across a whole layer, support across a whole layer).
type Pattern interface {
	Generate() data.Paths
}

// linearPattern generates LINES infill: parallel rays at angle Degree,
// spaced lineSpacing apart, covering the rotated bounding box [min,max].
// GRID infill is the superposition of two linearPatterns 90 degrees apart
// (see NewGridPattern).
type linearPattern struct {
	lineWidth   data.Micrometer
	lineSpacing data.Micrometer
	min, max    data.MicroPoint
	angle       data.Degree
	connectEnds bool
	zigzag      bool
}

// NewLinearPattern builds a LINES infill pattern. lineWidth is used for edge
// overlap bookkeeping by the caller; lineSpacing is the distance between
// adjacent lines. connectEnds alternates line direction so that extremes
// can later be connected into a zig-zag path by the caller. zigzag is stored
// on the pattern but Generate does not read it: the lines are always
// returned as separate two-point segments.
func NewLinearPattern(lineWidth, lineSpacing data.Micrometer, min, max data.MicroPoint, angle data.Degree, connectEnds, zigzag bool) Pattern {
	return &linearPattern{
		lineWidth:   lineWidth,
		lineSpacing: lineSpacing,
		min:         min,
		max:         max,
		angle:       angle,
		connectEnds: connectEnds,
		zigzag:      zigzag,
	}
}

func (p *linearPattern) Generate() data.Paths {
	if p.lineSpacing <= 0 {
		return nil
	}

	// Rotate the bounding box corners into pattern space (angle=0 means
	// lines run along Y), generate lines there, then rotate the result
	// back, so angle>0 patterns don't need special-cased axis math.
	corners := data.Path{
		data.NewMicroPoint(p.min.X(), p.min.Y()),
		data.NewMicroPoint(p.max.X(), p.min.Y()),
		data.NewMicroPoint(p.max.X(), p.max.Y()),
		data.NewMicroPoint(p.min.X(), p.max.Y()),
	}

	inv := -p.angle
	var rMin, rMax data.MicroPoint
	for i, c := range corners {
		r := c.Rotate(inv)
		if i == 0 {
			rMin, rMax = r, r
			continue
		}
		if r.X() < rMin.X() {
			rMin.SetX(r.X())
		}
		if r.Y() < rMin.Y() {
			rMin.SetY(r.Y())
		}
		if r.X() > rMax.X() {
			rMax.SetX(r.X())
		}
		if r.Y() > rMax.Y() {
			rMax.SetY(r.Y())
		}
	}

	var lines data.Paths
	lineNr := 0
	for x := rMin.X(); x <= rMax.X(); x += p.lineSpacing {
		top := data.NewMicroPoint(x, rMax.Y())
		bottom := data.NewMicroPoint(x, rMin.Y())

		var line data.Path
		if p.connectEnds && lineNr%2 == 1 {
			line = data.Path{top, bottom}
		} else {
			line = data.Path{bottom, top}
		}

		lines = append(lines, data.Path{line[0].Rotate(p.angle), line[1].Rotate(p.angle)})
		lineNr++
	}

	return lines
}

// NewGridPattern builds a GRID infill pattern: the superposition of two
// LINES patterns at angle and angle+90, each spaced 2*lineSpacing apart so
// overall density matches a single LINES pass at lineSpacing.
func NewGridPattern(lineWidth, lineSpacing data.Micrometer, min, max data.MicroPoint, angle data.Degree) Pattern {
	return gridPattern{
		a: NewLinearPattern(lineWidth, lineSpacing*2, min, max, angle, false, false),
		b: NewLinearPattern(lineWidth, lineSpacing*2, min, max, angle+90, false, false),
	}
}

type gridPattern struct {
	a, b Pattern
}

func (g gridPattern) Generate() data.Paths {
	return append(g.a.Generate(), g.b.Generate()...)
}
