package renderer

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/modifier"
)

// Infill renders one infill pass, reading its region from the layer-wide
// attribute AttrName (e.g. "top", "bottom", "infill", "support",
// "supportInterface") and building the line pattern via PatternSetup given
// that region's bounding box. Comments are emitted as TYPE: markers before
// the pass, matching the convention most slicer post-processors rely on for
// per-feature time/filament statistics. One Infill instance per
// region/pattern combination, same as the teacher wires them up.
type Infill struct {
	PatternSetup func(min, max data.MicroPoint) clip.Pattern
	AttrName     string
	Comments     []string
	Speed        func(options *data.Options) int

	// Extruder, if set, picks the extruder this pass should print with (e.g.
	// Support.Extruder for the two support-related Infill instances). A
	// negative return leaves the current extruder untouched, matching
	// SupportOptions.Extruder's -1-disables convention.
	Extruder func(options *data.Options) int
}

func (r *Infill) Init(model data.OptimizedModel) {}

func (r *Infill) Render(p *gcode.Planner, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	parts, err := modifier.PartsAttribute(layer, r.AttrName)
	if err != nil {
		return err
	}
	isSupport := r.AttrName == "support" || r.AttrName == "supportInterface"
	if (isSupport && !options.Print.Support.Enabled) || len(parts) == 0 {
		return nil
	}

	if r.Extruder != nil {
		if idx := r.Extruder(options); idx >= 0 {
			p.SetExtruder(idx, options.Print.Retraction.AmountOnExtruderSwitch)
		}
	}

	for _, c := range r.Comments {
		p.AddComment("%s", c)
	}

	cl := clip.NewClipper()
	speed := options.Print.Speed.Infill
	if r.Speed != nil {
		speed = r.Speed(options)
	}

	for _, part := range parts {
		min, max := data.Paths{part.Outline()}.Size()

		var pattern clip.Pattern
		if ba, ok := part.BridgeAngle(); ok && r.AttrName == "bottom" {
			// A bridge overrides the configured fill angle with the one
			// that spans the unsupported region the furthest (spec.md §4.6).
			pattern = clip.NewLinearPattern(options.Printer.ExtrusionWidth, options.Printer.ExtrusionWidth, min, max, ba, true, false)
		} else {
			pattern = r.PatternSetup(min, max)
		}
		if pattern == nil {
			continue
		}

		lines := cl.Fill(part, pattern)
		if len(lines) == 0 {
			continue
		}

		var comb *data.Path
		if boundary, ok := part.CombBoundary(); ok {
			comb = &boundary
		}
		p.WritePathsByOptimizer(lines, comb, speed)
	}

	return nil
}
