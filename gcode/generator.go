package gcode

import (
	"fmt"
	"strings"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
	"github.com/aligator/goslice/modifier"
)

// ultiPlaceholderWidth is the digit count reserved for each UltiGCode header
// field (spec.md §4.11): the field is written as zeros up front and patched
// in place once the real total is known, so the file length the placeholder
// reserved never has to change.
const ultiPlaceholderWidth = 9

func ultiPlaceholder() string { return strings.Repeat("0", ultiPlaceholderWidth) }

// Renderer contributes G-code for one layer. PreLayer/PostLayer-only
// renderers (header/footer comments, temperature commands) write directly
// through the embedded *Builder; renderers that emit geometry call the
// Planner's WritePolygonsByOptimizer/WritePathsByOptimizer so combing,
// retraction and minimum-layer-time scaling are applied uniformly.
type Renderer interface {
	Init(model data.OptimizedModel)
	Render(p *Planner, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error
}

type generator struct {
	options    *data.Options
	renderers  []Renderer
	raftLayers []modifier.RaftLayer
}

// Option configures a Generator at construction.
type Option func(*generator)

// WithRenderer appends r to the list of renderers invoked for every layer,
// in registration order.
func WithRenderer(r Renderer) Option {
	return func(g *generator) { g.renderers = append(g.renderers, r) }
}

// WithRaftLayers supplies the synthesized raft layers (modifier.BuildRaftLayers)
// to be printed, at their own line spacing, before layer 0 of the model.
// Raft layers don't go through the usual per-layer renderer list: they carry
// no perimeters or skin, only a single dense infill pass.
func WithRaftLayers(raft []modifier.RaftLayer) Option {
	return func(g *generator) { g.raftLayers = raft }
}

// NewGenerator returns the C12-facing GCodeGenerator: it owns no geometry
// itself, only the per-layer Builder/Planner lifecycle and the ordered list
// of renderers that fill them in (spec.md §4.11-4.12).
func NewGenerator(options *data.Options, opts ...Option) handler.GCodeGenerator {
	g := &generator{options: options}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *generator) Init(model data.OptimizedModel) {
	for _, r := range g.renderers {
		r.Init(model)
	}
}

func (g *generator) Generate(layers []data.PartitionedLayer) (string, error) {
	o := g.options
	b := NewBuilder(o.Print.OutputType, o.Printer.FilamentDiameter, o.Printer.ExtrusionMultiplier)
	b.SetRetractionSpeed(o.Print.Retraction.Speed)
	b.SetRetractionAmount(o.Print.Retraction.Amount)
	b.SetRetractionZHop(o.Print.Retraction.ZHop)
	b.SetMoveSpeed(o.Print.MoveSpeed)

	b.AddComment("Generated with GoSlice")

	isUltiGCode := o.Print.OutputType == data.UltiGCode
	if isUltiGCode {
		// UltiGCode firmware keeps start/end code and temperatures in the
		// printer's own material profiles, not in the file (spec.md §4.11):
		// the header carries placeholders for the host software to fill in
		// instead of a start sequence. They are patched to their real values
		// once the whole file has been generated, below.
		b.AddComment("TYPE:UltiGCode")
		b.AddComment("TIME:%s", ultiPlaceholder())
		b.AddComment("MATERIAL:%s", ultiPlaceholder())
		b.AddComment("MATERIAL2:%s", ultiPlaceholder())
	} else if o.Print.StartCode != "" {
		b.AddCommand("%s", o.Print.StartCode)
	} else {
		b.AddCommand("M104 S%d", o.Filament.InitialHotEndTemperature)
		b.AddCommand("M140 S%d", o.Filament.InitialBedTemperature)
		b.AddCommand("M109 S%d", o.Filament.InitialHotEndTemperature)
		b.AddCommand("M190 S%d", o.Filament.InitialBedTemperature)
		b.AddCommand("G28")
		b.AddCommand("G92 E0")
	}

	maxLayer := len(layers) - 1
	z := o.Print.InitialLayerThickness
	var totalTimeSec float64

	if len(g.raftLayers) > 0 {
		var raftZ data.Micrometer
		raftZ, totalTimeSec = g.renderRaft(b)
		z = raftZ + o.Print.InitialLayerThickness
	}

	for layerNr, layer := range layers {
		thickness := o.Print.LayerThickness
		extrusionWidth := o.Printer.ExtrusionWidth
		speed := o.Print.LayerSpeed
		if layerNr == 0 {
			thickness = o.Print.InitialLayerThickness
			extrusionWidth = o.Printer.FirstLayerExtrusionWidth
			speed = o.Print.IntialLayerSpeed
		}
		b.SetExtrusion(thickness, extrusionWidth)
		b.SetExtrudeSpeed(speed)
		b.z = z

		b.AddComment("LAYER:%d", layerNr)

		start := b.positionXY()
		planner := NewPlanner(b, o, start, layerNr)

		for _, r := range g.renderers {
			if err := r.Render(planner, layerNr, maxLayer, layer, z, o); err != nil {
				return "", fmt.Errorf("rendering layer %d: %w", layerNr, err)
			}
		}

		totalTimeSec += planner.Flush()

		z += thickness
	}

	if isUltiGCode {
		// no end code: see the header comment above.
	} else if o.Print.EndCode != "" {
		b.AddCommand("%s", o.Print.EndCode)
	} else {
		b.AddCommand("M104 S0")
		b.AddCommand("M140 S0")
		b.AddCommand("M107")
	}

	out := b.String()
	if isUltiGCode {
		out = patchUltiPlaceholders(out, totalTimeSec, b.ExtrudedLength())
	}

	return out, nil
}

// patchUltiPlaceholders overwrites the TIME/MATERIAL/MATERIAL2 placeholder
// fields written by Generate with their real values now that the whole file
// has been rendered. MATERIAL2 stays at zero: a second extruder's own
// filament usage isn't tracked separately (spec.md's multi-extruder scope is
// limited to tool-change emission, not per-tool material accounting).
func patchUltiPlaceholders(gcode string, totalTimeSec float64, extrudedLength data.Micrometer) string {
	placeholder := ultiPlaceholder()
	gcode = strings.Replace(gcode, "TIME:"+placeholder, fmt.Sprintf("TIME:%0*d", ultiPlaceholderWidth, int(totalTimeSec)), 1)
	gcode = strings.Replace(gcode, "MATERIAL:"+placeholder, fmt.Sprintf("MATERIAL:%0*d", ultiPlaceholderWidth, int(float64(extrudedLength)/1000)), 1)
	gcode = strings.Replace(gcode, "MATERIAL2:"+placeholder, fmt.Sprintf("MATERIAL2:%0*d", ultiPlaceholderWidth, 0), 1)
	return gcode
}

// renderRaft emits the synthesized raft layers (spec.md §4.8) as a single
// dense infill pass each, and returns the Z at which the model's own layer 0
// should start (the raft top plus the configured air gap) and the total
// estimated print time of the raft layers in seconds.
func (g *generator) renderRaft(b *Builder) (data.Micrometer, float64) {
	o := g.options
	cl := clip.NewClipper()
	var lastZ data.Micrometer
	var totalTimeSec float64

	for i, rl := range g.raftLayers {
		b.SetExtrusion(rl.Thickness, o.Printer.ExtrusionWidth)
		b.SetExtrudeSpeed(o.Print.Speed.SupportMaterial)
		b.z = rl.Z
		lastZ = rl.Z

		b.AddComment("LAYER:R%d", i)
		b.AddComment("TYPE:RAFT")

		planner := NewPlanner(b, o, b.positionXY(), 0)

		min, max := data.Paths{rl.Outline.Outline()}.Size()
		pattern := clip.NewLinearPattern(o.Printer.ExtrusionWidth, rl.LineSpacing, min, max, data.Degree(i*90), false, true)
		lines := cl.Fill(rl.Outline, pattern)
		planner.WritePathsByOptimizer(lines, nil, o.Print.Speed.SupportMaterial)

		outline := data.Paths{rl.Outline.Outline()}
		planner.WritePolygonsByOptimizer(outline, nil, o.Print.Speed.SupportMaterial)

		totalTimeSec += planner.Flush()
	}

	return lastZ + o.Print.Raft.AirGap, totalTimeSec
}
