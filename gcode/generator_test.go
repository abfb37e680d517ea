package gcode

import (
	"regexp"
	"strings"
	"testing"

	"github.com/aligator/goslice/data"
)

// squareRenderer draws one square polygon per layer, so a test generator run
// has some actual travel/extrude time and filament usage to check.
type squareRenderer struct{}

func (squareRenderer) Init(model data.OptimizedModel) {}

func (squareRenderer) Render(p *Planner, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	square := data.Path{
		data.NewMicroPoint(0, 0),
		data.NewMicroPoint(10000, 0),
		data.NewMicroPoint(10000, 10000),
		data.NewMicroPoint(0, 10000),
	}
	p.WritePolygonsByOptimizer(data.Paths{square}, nil, 60)
	return nil
}

func newTestGeneratorOptions(outputType data.OutputType) *data.Options {
	o := data.DefaultOptions()
	o.Print.OutputType = outputType
	return &o
}

func TestGenerateRepRapEmitsStartAndEndCode(t *testing.T) {
	o := newTestGeneratorOptions(data.RepRap)
	gen := NewGenerator(o, WithRenderer(squareRenderer{}))
	gen.Init(nil)

	out, err := gen.Generate([]data.PartitionedLayer{data.NewPartitionedLayer(nil)})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, ";Generated with GoSlice") {
		t.Error("expected the header comment to read 'Generated with GoSlice'")
	}
	if !strings.Contains(out, "M104 S") || !strings.Contains(out, "G28") {
		t.Error("expected RepRap output to include the start-code preamble")
	}
	if !strings.Contains(out, "M104 S0") {
		t.Error("expected RepRap output to include the heater-off postamble")
	}
	if strings.Contains(out, "TYPE:UltiGCode") {
		t.Error("did not expect a RepRap file to carry the UltiGCode header")
	}
}

func TestGenerateUltiGCodeSkipsStartAndEndCodeAndPatchesPlaceholders(t *testing.T) {
	o := newTestGeneratorOptions(data.UltiGCode)
	gen := NewGenerator(o, WithRenderer(squareRenderer{}))
	gen.Init(nil)

	out, err := gen.Generate([]data.PartitionedLayer{data.NewPartitionedLayer(nil)})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if strings.Contains(out, "M104") || strings.Contains(out, "G28") {
		t.Error("expected UltiGCode output to omit the start/end temperature and homing commands")
	}
	if !strings.Contains(out, ";TYPE:UltiGCode") {
		t.Error("expected the UltiGCode type marker")
	}

	timeRe := regexp.MustCompile(`;TIME:(\d{9})`)
	materialRe := regexp.MustCompile(`;MATERIAL:(\d{9})`)
	material2Re := regexp.MustCompile(`;MATERIAL2:(\d{9})`)

	if !timeRe.MatchString(out) {
		t.Error("expected a 9-digit ;TIME: field")
	}
	if m := materialRe.FindStringSubmatch(out); m == nil {
		t.Error("expected a 9-digit ;MATERIAL: field")
	} else if m[1] == "000000000" {
		t.Error("expected ;MATERIAL: to be patched to the actual filament used, not left at the placeholder")
	}
	if m := material2Re.FindStringSubmatch(out); m == nil {
		t.Error("expected a 9-digit ;MATERIAL2: field")
	}
}
