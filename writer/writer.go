package writer

import (
	"os"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type writer struct{}

// Writer can write gcode to a file.
func Writer() handler.GCodeWriter {
	return &writer{}
}

// Write persists gcode to filename, fsyncing before close so a finished
// file on disk is guaranteed complete even if the process is killed right
// after Write returns (spec.md §7).
func (w writer) Write(gcode string, filename string) error {
	buf, err := os.Create(filename)
	if err != nil {
		return data.WrapOutput(err, filename)
	}
	defer buf.Close()

	if _, err := buf.WriteString(gcode); err != nil {
		return data.WrapOutput(err, filename)
	}

	if err := buf.Sync(); err != nil {
		return data.WrapOutput(err, filename)
	}

	return nil
}
