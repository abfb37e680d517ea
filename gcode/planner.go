package gcode

import (
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/optimizer"
)

type opKind int

const (
	opTravel opKind = iota
	opExtrude
)

type plannerOp struct {
	kind   opKind
	points data.Path
	speed  int
	comb   *data.Path
}

// Planner is the per-layer GCodePlanner (C10): it buffers travel/extrude
// operations as renderers request them, decides combing and retraction once
// the whole layer's operations are known, stretches extrusion speed to meet
// the configured minimum layer time, and only then replays everything into
// the underlying Builder. Buffering (rather than emitting immediately) is
// what makes the minimum-layer-time pass possible: the total time can only
// be known once every operation for the layer has been recorded.
type Planner struct {
	*Builder

	options *data.Options
	pos     data.MicroPoint
	layerNr int
	ops     []plannerOp
}

// NewPlanner returns a Planner that will emit into b once Flush is called.
// layerNr gates the Cooling.FanSpeed.FirstLayerToAllow check in Flush; raft
// layers and the model's layer 0 both pass 0 so the fan stays off while the
// first bed contact is being laid down.
func NewPlanner(b *Builder, options *data.Options, start data.MicroPoint, layerNr int) *Planner {
	return &Planner{Builder: b, options: options, pos: start, layerNr: layerNr}
}

// Position returns the point the planner currently considers itself at (the
// end of the last buffered operation, or the layer start if none yet).
func (p *Planner) Position() data.MicroPoint { return p.pos }

// WritePolygonsByOptimizer orders polys starting from the planner's current
// position (C9 PathOrderOptimizer) and buffers one travel + one extrude
// operation per polygon. comb, if non-nil, is the boundary the travel moves
// should try to stay inside of to avoid a retraction (spec.md §4.10).
func (p *Planner) WritePolygonsByOptimizer(polys data.Paths, comb *data.Path, speed int) {
	ordered, end := optimizer.PathOrderOptimizer{}.Order(p.pos, polys)

	for _, o := range ordered {
		if len(o.Path) == 0 {
			continue
		}
		start := o.Path[o.StartIndex]

		loop := make(data.Path, 0, len(o.Path)+1)
		loop = append(loop, start)
		for i := 1; i <= len(o.Path); i++ {
			loop = append(loop, o.Path[(o.StartIndex+i)%len(o.Path)])
		}

		p.ops = append(p.ops, plannerOp{kind: opTravel, points: data.Path{start}, comb: comb})
		p.ops = append(p.ops, plannerOp{kind: opExtrude, points: loop, speed: speed})
	}

	p.pos = end
}

// WritePathsByOptimizer is like WritePolygonsByOptimizer but for open
// polylines (used by sparse/skin infill line patterns), which are not
// rotated to a start index and are not closed back up.
func (p *Planner) WritePathsByOptimizer(paths data.Paths, comb *data.Path, speed int) {
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		// Greedily pick whichever endpoint is nearer, so zig-zag infill
		// doesn't always travel back to the same side.
		start, rest := path[0], path
		if len(path) > 1 && p.pos.Distance(path[len(path)-1]) < p.pos.Distance(path[0]) {
			start = path[len(path)-1]
			rest = reversePath(path)
		}

		p.ops = append(p.ops, plannerOp{kind: opTravel, points: data.Path{start}, comb: comb})
		p.ops = append(p.ops, plannerOp{kind: opExtrude, points: rest, speed: speed})
		p.pos = rest[len(rest)-1]
	}
}

func reversePath(path data.Path) data.Path {
	out := make(data.Path, len(path))
	for i, p := range path {
		out[len(path)-1-i] = p
	}
	return out
}

// Flush computes the minimum-layer-time speed scaling and fan speed for
// every buffered operation, then replays them into the underlying Builder
// as actual retract/travel/extrude commands, in order. It returns the
// layer's estimated print time in seconds at the scaled speed, so the
// Generator can accumulate a total for the UltiGCode ";TIME:" header field.
// With nothing buffered it writes nothing, not even a fan command.
func (p *Planner) Flush() float64 {
	if len(p.ops) == 0 {
		return 0
	}

	cooling := p.options.Print.Cooling
	minPrintingSpeed := p.options.Print.Speed.MinimumPrinting

	totalTime := p.estimateTime(1)
	scale := 1.0
	minTime := float64(cooling.MinimumLayerTimeSeconds)
	if totalTime > 0 && totalTime < minTime {
		scale = totalTime / minTime
	}

	p.Builder.SetFan(fanPercentFor(scale, cooling.FanSpeed, p.layerNr))
	scaledTime := p.estimateTime(scale)

	minTravel := p.options.Print.Retraction.MinimumTravelToCauseRetract
	minExtrusion := p.options.Print.Retraction.MinimumExtrusionBeforeRetract
	var extrudedSinceRetract data.Micrometer

	for _, op := range p.ops {
		switch op.kind {
		case opTravel:
			dist := p.Builder.positionXY().Distance(op.points[0])
			if dist > minTravel && extrudedSinceRetract >= minExtrusion && !p.stayInsideComb(op) {
				p.Builder.Retract()
				extrudedSinceRetract = 0
			}
			p.Builder.MoveTo(op.points[0], 0, 0)
		case opExtrude:
			p.Builder.Unretract()
			speed := op.speed
			if scale < 1 {
				scaled := int(float64(speed) * scale)
				if scaled < minPrintingSpeed {
					scaled = minPrintingSpeed
				}
				speed = scaled
			}
			for _, pt := range op.points[1:] {
				extrudedSinceRetract += p.Builder.positionXY().Distance(pt)
				p.Builder.ExtrudeTo(pt, speed, 0)
			}
		}
	}

	p.ops = nil
	return scaledTime
}

// fanPercentFor maps the layer's extrude-speed scale factor (1.0 = full
// speed, lower = slowed down to meet the minimum layer time) to a fan
// percentage: at or below a 50% factor the layer is already as slow as it
// needs to be, so the fan runs flat out; above that it ramps linearly down
// to FanSpeed.MinPercent at full speed. The first FirstLayerToAllow layers
// never run the fan regardless, so bed adhesion isn't disturbed.
func fanPercentFor(scale float64, fan data.FanSpeedOptions, layerNr int) int {
	if layerNr < fan.FirstLayerToAllow {
		return 0
	}
	if scale <= 0.5 {
		return fan.MaxPercent
	}
	t := (scale - 0.5) / 0.5
	return fan.MaxPercent - int(t*float64(fan.MaxPercent-fan.MinPercent))
}

// estimateTime returns the wall-clock time (seconds) the buffered
// operations would take at the given speed scale, combining travel moves
// (always at the configured move speed) and extrude moves (at their
// requested speed, scaled).
func (p *Planner) estimateTime(scale float64) float64 {
	pos := p.Builder.positionXY()
	total := 0.0

	for _, op := range p.ops {
		switch op.kind {
		case opTravel:
			d := pos.Distance(op.points[0])
			total += float64(d) / 1000 / float64(p.Builder.moveSpeed)
			pos = op.points[0]
		case opExtrude:
			speed := float64(op.speed) * scale
			if speed <= 0 {
				speed = float64(p.Builder.extrudeSpeed)
			}
			for _, pt := range op.points[1:] {
				d := pos.Distance(pt)
				total += float64(d) / 1000 / speed
				pos = pt
			}
		}
	}

	return total
}

// stayInsideComb approximates "does this travel stay inside the comb
// boundary" by testing only the segment's midpoint for containment: a
// coarse, adequate stand-in for a full segment/polygon clip given how short
// most travel moves are.
func (p *Planner) stayInsideComb(op plannerOp) bool {
	if op.comb == nil {
		return false
	}
	mid := p.Builder.positionXY().Add(op.points[0]).Mul(0.5)
	return pointInPolygon(mid, *op.comb)
}

func pointInPolygon(pt data.MicroPoint, poly data.Path) bool {
	inside := false
	n := len(poly)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y() > pt.Y()) != (pj.Y() > pt.Y()) {
			slope := float64(pj.X()-pi.X()) * float64(pt.Y()-pi.Y()) / float64(pj.Y()-pi.Y())
			if float64(pt.X()) < float64(pi.X())+slope {
				inside = !inside
			}
		}
	}
	return inside
}

// positionXY exposes the Builder's current XY as a MicroPoint without
// otherwise widening Builder's public surface.
func (b *Builder) positionXY() data.MicroPoint {
	return data.NewMicroPoint(b.x, b.y)
}
