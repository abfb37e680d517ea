// Package reader loads STL files (ASCII or binary) into a data.Model,
// delegating the actual parsing to github.com/hschendel/stl — the mesh
// loader is an out-of-scope external collaborator per the core spec; this
// package only owns the STL->data.Model conversion and the "zero triangles"
// LoadError check.
package reader

import (
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
	stl "github.com/hschendel/stl"
)

type stlReader struct {
	options *data.Options
}

// Reader returns a handler.ModelReader backed by github.com/hschendel/stl.
func Reader(options *data.Options) handler.ModelReader {
	return &stlReader{options: options}
}

func (r *stlReader) Read(filePaths ...string) (data.Model, error) {
	var model data.Model

	for volumeIndex, path := range filePaths {
		solid, err := stl.ReadFile(path)
		if err != nil {
			return data.Model{}, data.WrapLoad(err, path)
		}

		if len(solid.Triangles) == 0 {
			return data.Model{}, data.WrapLoad(errZeroTriangles, path)
		}

		volume := data.Volume{
			Extruder: volumeIndex,
		}
		volume.Vertices = make([]data.Vertex3, 0, len(solid.Triangles)*3)
		volume.Faces = make([]data.Face, 0, len(solid.Triangles))

		for _, t := range solid.Triangles {
			base := len(volume.Vertices)
			for _, v := range t.Vertices {
				volume.Vertices = append(volume.Vertices, data.Vertex3{
					X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2]),
				})
			}
			volume.Faces = append(volume.Faces, data.Face{
				Vertices: [3]int{base, base + 1, base + 2},
			})
		}

		model.Volumes = append(model.Volumes, volume)
	}

	return model, nil
}

type loadErr string

func (e loadErr) Error() string { return string(e) }

const errZeroTriangles = loadErr("model has zero triangles")
