// Package handler declares the seams between the six pipeline stages, so
// that goslice.go can wire concrete implementations without the stages
// importing each other directly.
package handler

import "github.com/aligator/goslice/data"

// ModelReader loads one or more input files into a data.Model.
type ModelReader interface {
	Read(filePath ...string) (data.Model, error)
}

// ModelOptimizer welds vertices and computes face adjacency.
type ModelOptimizer interface {
	Optimize(model data.Model) (data.OptimizedModel, error)
}

// ModelSlicer intersects the mesh with each layer plane and partitions the
// result into LayerParts.
type ModelSlicer interface {
	Slice(model data.OptimizedModel) ([]data.PartitionedLayer, error)
}

// LayerModifier mutates (by replacing) layers in place, e.g. to add
// perimeters, infill, support or skirt/brim attributes.
type LayerModifier interface {
	GetName() string
	Init(model data.OptimizedModel)
	Modify(layers []data.PartitionedLayer) error
}

// GCodeGenerator turns modified layers into the final G-code text.
type GCodeGenerator interface {
	Init(model data.OptimizedModel)
	Generate(layers []data.PartitionedLayer) (string, error)
}

// GCodeWriter persists the final G-code text to disk.
type GCodeWriter interface {
	Write(gcode string, filename string) error
}

// Named gives a modifier a human-readable name for logging; embed it rather
// than re-declaring GetName on every modifier.
type Named struct {
	Name string
}

// GetName returns the modifier's name.
func (n Named) GetName() string { return n.Name }
