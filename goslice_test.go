package goslice

import (
	"strings"
	"testing"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

// stubReader always returns the same small tetrahedron, regardless of the
// path given, so Session.render can run end to end without touching disk.
// It records every path it was asked to read.
type stubReader struct {
	reads []string
}

func (r *stubReader) Read(filePaths ...string) (data.Model, error) {
	r.reads = append(r.reads, filePaths...)

	return data.Model{
		Volumes: []data.Volume{{
			Vertices: []data.Vertex3{
				{X: 0, Y: 0, Z: 0},
				{X: 10, Y: 0, Z: 0},
				{X: 10, Y: 10, Z: 0},
				{X: 0, Y: 10, Z: 0},
				{X: 5, Y: 5, Z: 10},
			},
			Faces: []data.Face{
				{Vertices: [3]int{0, 1, 2}},
				{Vertices: [3]int{0, 2, 3}},
				{Vertices: [3]int{0, 1, 4}},
				{Vertices: [3]int{1, 2, 4}},
				{Vertices: [3]int{2, 3, 4}},
				{Vertices: [3]int{3, 0, 4}},
			},
		}},
	}, nil
}

// stubWriter captures the final G-code in memory instead of writing to disk.
type stubWriter struct {
	path    string
	content string
}

func (w *stubWriter) Write(gcode string, filename string) error {
	w.path, w.content = filename, gcode
	return nil
}

func testSession() (*Session, *stubReader, *stubWriter) {
	o := data.DefaultOptions()
	o.Print.Raft.Enabled = false
	o.Print.Support.Enabled = false
	o.Print.InitialLayerThickness = data.Millimeter(2).ToMicrometer()
	o.Print.LayerThickness = data.Millimeter(2).ToMicrometer()
	s := NewSession(o)

	reader := &stubReader{}
	writer := &stubWriter{}
	s.Reader = reader
	s.Writer = writer

	return s, reader, writer
}

func TestProcessAllSingleInputBehavesLikeProcess(t *testing.T) {
	s, reader, writer := testSession()

	if err := s.ProcessAll([]string{"one.stl"}); err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}

	if len(reader.reads) != 1 || reader.reads[0] != "one.stl" {
		t.Errorf("expected a single read of one.stl, got %v", reader.reads)
	}
	if writer.path != "one.stl.gcode" {
		t.Errorf("expected the default output path one.stl.gcode, got %q", writer.path)
	}
	if !strings.Contains(writer.content, "Generated with GoSlice") {
		t.Error("expected real G-code output")
	}
}

func TestProcessAllMultipleInputsConcatenatesWithATransition(t *testing.T) {
	s, reader, writer := testSession()

	if err := s.ProcessAll([]string{"a.stl", "b.stl"}); err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}

	if len(reader.reads) != 2 || reader.reads[0] != "a.stl" || reader.reads[1] != "b.stl" {
		t.Errorf("expected both files to be read once each, got %v", reader.reads)
	}
	if writer.path != "a.stl.gcode" {
		t.Errorf("expected the output path derived from the first input, got %q", writer.path)
	}

	if got := strings.Count(writer.content, "Generated with GoSlice"); got != 2 {
		t.Errorf("expected one full header per object (2), got %d", got)
	}
	if !strings.Contains(writer.content, ";TRANSITION") {
		t.Error("expected a transition comment between the two objects")
	}
}

func TestProcessAllNoInputsIsAnError(t *testing.T) {
	s, _, _ := testSession()

	if err := s.ProcessAll(nil); err == nil {
		t.Error("expected an error for an empty input list")
	}
}

func TestTransitionGCodeLiftsAboveClearHeightAndTravelsToTheNextOrigin(t *testing.T) {
	out := transitionGCode(data.Millimeter(205).ToMicrometer(), data.Millimeter(50).ToMicrometer())

	if !strings.Contains(out, "Z205.000") {
		t.Errorf("expected the lift to clear height, got:\n%s", out)
	}
	if !strings.Contains(out, "X50.000") {
		t.Errorf("expected a travel to the next object's origin, got:\n%s", out)
	}
}
