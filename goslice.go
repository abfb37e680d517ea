// Package goslice wires the reader/optimizer/slicer/modifier/generator/writer
// stages (C1-C12) into one Session, the root C12 Pipeline orchestrator.
package goslice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/gcode/renderer"
	"github.com/aligator/goslice/handler"
	"github.com/aligator/goslice/modifier"
	"github.com/aligator/goslice/optimizer"
	"github.com/aligator/goslice/reader"
	"github.com/aligator/goslice/slicer"
	"github.com/aligator/goslice/writer"
)

// Session combines every stage needed to turn one or more input meshes into
// a finished G-code file. It carries no package-level state: every run gets
// its own Session, so concurrent invocations in the same process (e.g. a
// batch job slicing several plates) never interfere with each other.
type Session struct {
	Options   data.Options
	Reader    handler.ModelReader
	Optimizer handler.ModelOptimizer
	Slicer    handler.ModelSlicer
	Modifiers []handler.LayerModifier
	Generator handler.GCodeGenerator
	Writer    handler.GCodeWriter

	generatorOpts []gcode.Option
}

// NewSession builds a Session with the standard stage implementations,
// wired for the given options.
func NewSession(options data.Options) *Session {
	s := &Session{Options: options}

	topBottomPatternFactory := func(min, max data.MicroPoint) clip.Pattern {
		return clip.NewLinearPattern(options.Printer.ExtrusionWidth, options.Printer.ExtrusionWidth, min, max, options.Print.InfillRotationDegree, true, false)
	}

	s.Reader = reader.Reader(&options)
	s.Optimizer = optimizer.NewOptimizer(&options)
	s.Slicer = slicer.NewSlicer(&options)
	s.Modifiers = []handler.LayerModifier{
		modifier.NewPerimeterModifier(&options),
		modifier.NewInfillModifier(&options),
		modifier.NewInternalInfillModifier(&options),
		modifier.NewBridgeModifier(&options),
		modifier.NewBrimModifier(&options),
		modifier.NewSupportDetectorModifier(&options),
		modifier.NewSupportGeneratorModifier(&options),
	}

	patternSpacing := options.Print.Support.PatternSpacing.ToMicrometer()
	supportPatternSetup := func(min, max data.MicroPoint) clip.Pattern {
		// Widen the bounding box so the pattern always has at least two
		// lines even when the support region is narrower than one spacing.
		min = min.Sub(data.NewMicroPoint(patternSpacing, patternSpacing))
		max = max.Add(data.NewMicroPoint(patternSpacing, patternSpacing))
		return clip.NewLinearPattern(options.Printer.ExtrusionWidth, patternSpacing, min, max, 90, false, true)
	}
	interfacePatternSetup := func(min, max data.MicroPoint) clip.Pattern {
		min = min.Sub(data.NewMicroPoint(patternSpacing, patternSpacing))
		max = max.Add(data.NewMicroPoint(patternSpacing, patternSpacing))
		return clip.NewLinearPattern(options.Printer.ExtrusionWidth, options.Printer.ExtrusionWidth, min, max, 0, false, true)
	}

	s.generatorOpts = []gcode.Option{
		gcode.WithRenderer(renderer.PreLayer{}),
		gcode.WithRenderer(renderer.Skirt{}),
		gcode.WithRenderer(renderer.Perimeter{}),

		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: supportPatternSetup,
			AttrName:     "support",
			Comments:     []string{"TYPE:SUPPORT"},
			Speed:        func(o *data.Options) int { return o.Print.Speed.SupportMaterial },
			Extruder:     func(o *data.Options) int { return o.Print.Support.Extruder },
		}),
		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: interfacePatternSetup,
			AttrName:     "supportInterface",
			Comments:     []string{"TYPE:SUPPORT"},
			Speed:        func(o *data.Options) int { return o.Print.Speed.SupportMaterial },
			Extruder:     func(o *data.Options) int { return o.Print.Support.Extruder },
		}),

		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: topBottomPatternFactory,
			AttrName:     "bottom",
			Comments:     []string{"TYPE:FILL", "BOTTOM-FILL"},
		}),
		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: topBottomPatternFactory,
			AttrName:     "top",
			Comments:     []string{"TYPE:FILL", "TOP-FILL"},
		}),
		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: func(min, max data.MicroPoint) clip.Pattern {
				if options.Print.InfillPercent == 0 {
					return nil
				}
				mm10 := data.Millimeter(10).ToMicrometer()
				linesPer10mmFor100Percent := mm10 / options.Printer.ExtrusionWidth
				linesPer10mmForInfillPercent := float64(linesPer10mmFor100Percent) * float64(options.Print.InfillPercent) / 100.0
				lineWidth := data.Micrometer(float64(mm10) / linesPer10mmForInfillPercent)

				if options.Print.InfillType == data.InfillGrid {
					return clip.NewGridPattern(options.Printer.ExtrusionWidth, lineWidth, min, max, options.Print.InfillRotationDegree)
				}
				return clip.NewLinearPattern(options.Printer.ExtrusionWidth, lineWidth, min, max, options.Print.InfillRotationDegree, true, options.Print.InfillZigZag)
			},
			AttrName: "infill",
			Comments: []string{"TYPE:FILL", "INTERNAL-FILL"},
		}),

		gcode.WithRenderer(&renderer.WipeTower{}),
		gcode.WithRenderer(&renderer.WipeShield{}),

		gcode.WithRenderer(renderer.PostLayer{}),
	}
	s.Generator = gcode.NewGenerator(&options, s.generatorOpts...)
	s.Writer = writer.Writer()

	return s
}

// Process runs the full pipeline: load, optimize, slice, modify, render,
// write. It returns the first error encountered as the failing stage
// returned it; only the reader and writer wrap theirs with the ErrLoad and
// ErrOutput sentinels in package data.
func (s *Session) Process() error {
	startTime := time.Now()
	log := s.Options.GoSlice.Logger

	finalGCode, _, err := s.render()
	if err != nil {
		return err
	}

	outputPath := s.Options.GoSlice.OutputFilePath
	if outputPath == "" {
		outputPath = s.Options.GoSlice.InputFilePath + ".gcode"
	}

	if err := s.Writer.Write(finalGCode, outputPath); err != nil {
		return err
	}
	log.Printf("wrote %s in %s", outputPath, time.Since(startTime))

	return nil
}

// render runs load-through-generate for s.Options.GoSlice.InputFilePath and
// returns the resulting G-code along with the optimized model (so a caller
// sequencing several files can compute the next one's placement from this
// one's bounds), without writing anything out.
func (s *Session) render() (string, data.OptimizedModel, error) {
	log := s.Options.GoSlice.Logger

	log.Printf("loading model %s", s.Options.GoSlice.InputFilePath)
	model, err := s.Reader.Read(s.Options.GoSlice.InputFilePath)
	if err != nil {
		return "", nil, err
	}
	log.Printf("model loaded: %d faces, bounds %v - %v", model.FaceCount(), model.Min(), model.Max())

	optimizedModel, err := s.Optimizer.Optimize(model)
	if err != nil {
		return "", nil, err
	}
	log.Printf("model optimized")

	layers, err := s.Slicer.Slice(optimizedModel)
	if err != nil {
		return "", nil, err
	}
	log.Printf("model sliced into %d layers", len(layers))

	for _, m := range s.Modifiers {
		m.Init(optimizedModel)
		if err := m.Modify(layers); err != nil {
			return "", nil, err
		}
		log.Printf("modifier %s applied", m.GetName())
	}

	if len(layers) > 0 {
		if raftLayers := modifier.BuildRaftLayers(&s.Options, layers[0]); len(raftLayers) > 0 {
			opts := append(append([]gcode.Option{}, s.generatorOpts...), gcode.WithRaftLayers(raftLayers))
			s.Generator = gcode.NewGenerator(&s.Options, opts...)
			log.Printf("raft generated: %d layers", len(raftLayers))
		}
	}

	s.Generator.Init(optimizedModel)
	finalGCode, err := s.Generator.Generate(layers)
	if err != nil {
		return "", nil, err
	}

	return finalGCode, optimizedModel, nil
}

// objectSpacing is the XY gap left between sequentially-placed objects in a
// ProcessAll run, on top of the previous object's own footprint.
var objectSpacing = data.Millimeter(10).ToMicrometer()

// ProcessAll slices every input in turn and concatenates their G-code into
// one file, placing each object next to the last along X and, between
// objects, lifting to clear height and travelling to the next origin before
// resuming (spec.md's multi-object "lift and travel to new origin"
// behavior, §REDESIGN FLAGS: modeled as a Session method rather than the
// original's process-wide emitter/file counter). A single input behaves
// exactly like Process.
func (s *Session) ProcessAll(inputs []string) error {
	if len(inputs) == 0 {
		return data.WrapLoad(errors.New("no input files given"), "ProcessAll")
	}
	if len(inputs) == 1 {
		s.Options.GoSlice.InputFilePath = inputs[0]
		return s.Process()
	}

	startTime := time.Now()
	log := s.Options.GoSlice.Logger

	var combined strings.Builder
	var originX data.Micrometer
	clearHeight := s.Options.Printer.MaxObjectHeight + data.Millimeter(5).ToMicrometer()

	for i, input := range inputs {
		opts := s.Options
		opts.GoSlice.InputFilePath = input
		opts.Print.Placement.CenterObjectInXY = false
		opts.Print.Placement.PositionX = originX

		fileSession := NewSession(opts)
		fileSession.Reader = s.Reader
		gcodeOut, model, err := fileSession.render()
		if err != nil {
			return err
		}
		log.Printf("object %d/%d (%s) sliced and rendered", i+1, len(inputs), input)

		if i > 0 {
			combined.WriteString(transitionGCode(clearHeight, originX))
		}
		combined.WriteString(gcodeOut)

		originX += model.Size().X() + objectSpacing
	}

	outputPath := s.Options.GoSlice.OutputFilePath
	if outputPath == "" {
		outputPath = inputs[0] + ".gcode"
	}

	if err := s.Writer.Write(combined.String(), outputPath); err != nil {
		return err
	}
	log.Printf("wrote %s (%d objects) in %s", outputPath, len(inputs), time.Since(startTime))

	return nil
}

// transitionGCode lifts to clearZ and travels to the next object's origin
// (its placed X, Y=0) between two sequentially-printed objects.
func transitionGCode(clearZ, nextOriginX data.Micrometer) string {
	return fmt.Sprintf(";TRANSITION: next object\nG1 Z%.3f F1200\nG0 X%.3f Y%.3f F9000\n",
		float64(clearZ)/1000, float64(nextOriginX)/1000, 0.0)
}
