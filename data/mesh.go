package data

import "math"

// Vertex3 is a raw, floating-point mesh vertex as read from the model file.
type Vertex3 struct {
	X, Y, Z float64
}

// Face is one input triangle, given as three vertex indices into its
// Volume's vertex table.
type Face struct {
	Vertices [3]int
}

// Volume is an ordered set of triangles forming one input mesh; each volume
// maps to one extruder index.
type Volume struct {
	Vertices []Vertex3
	Faces    []Face
	Extruder int
}

// Model is an ordered sequence of Volumes sharing a common origin.
type Model struct {
	Volumes []Volume
}

// FaceCount returns the total number of triangles across all volumes.
func (m Model) FaceCount() int {
	n := 0
	for _, v := range m.Volumes {
		n += len(v.Faces)
	}
	return n
}

// Min returns the minimum raw (float) vertex coordinate across all volumes.
func (m Model) Min() Vertex3 {
	min := Vertex3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	for _, v := range m.Volumes {
		for _, p := range v.Vertices {
			min.X = minF(min.X, p.X)
			min.Y = minF(min.Y, p.Y)
			min.Z = minF(min.Z, p.Z)
		}
	}
	return min
}

// Max returns the maximum raw (float) vertex coordinate across all volumes.
func (m Model) Max() Vertex3 {
	max := Vertex3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Volumes {
		for _, p := range v.Vertices {
			max.X = maxF(max.X, p.X)
			max.Y = maxF(max.Y, p.Y)
			max.Z = maxF(max.Z, p.Z)
		}
	}
	return max
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// MicroVec3 is a 3D point in integer micrometer space, used for quantized
// mesh vertices and voxel-grid style bookkeeping.
type MicroVec3 struct {
	x, y, z Micrometer
}

// NewMicroVec3 builds a MicroVec3 from its coordinates.
func NewMicroVec3(x, y, z Micrometer) MicroVec3 { return MicroVec3{x, y, z} }

func (v MicroVec3) X() Micrometer { return v.x }
func (v MicroVec3) Y() Micrometer { return v.y }
func (v MicroVec3) Z() Micrometer { return v.z }

// To2D drops the Z coordinate.
func (v MicroVec3) To2D() MicroPoint { return NewMicroPoint(v.x, v.y) }

// OptimizedFace is one triangle after mesh optimization: three indices into
// the welded vertex table, plus precomputed face-adjacency across shared
// edges (NoFace for an edge with no neighbour, i.e. a mesh boundary).
type OptimizedFace struct {
	Vertices        [3]int
	touchingFaces   [3]int
	extruder        int
}

// NoFace marks an edge with no adjoining triangle.
const NoFace = -1

// TouchingFaceIndices returns, per edge (0: v0-v1, 1: v1-v2, 2: v2-v0), the
// index of the triangle sharing that edge, or NoFace.
func (f OptimizedFace) TouchingFaceIndices() [3]int { return f.touchingFaces }

// Extruder returns the extruder index of the volume this face belongs to.
func (f OptimizedFace) Extruder() int { return f.extruder }

// OptimizedModel is the welded, indexed, placed mesh handed to the Slicer.
// Min/Max/Size are expressed in integer micrometers.
type OptimizedModel interface {
	Vertices() []MicroVec3
	Faces() []OptimizedFace
	OptimizedFace(i int) OptimizedFace
	FaceCount() int
	Min() MicroVec3
	Max() MicroVec3
	Size() MicroVec3
}

type optimizedModel struct {
	vertices []MicroVec3
	faces    []OptimizedFace
	min, max MicroVec3
}

// NewOptimizedModel builds an OptimizedModel from a welded vertex table and
// its adjacency-annotated faces.
func NewOptimizedModel(vertices []MicroVec3, faces []OptimizedFace) OptimizedModel {
	m := &optimizedModel{vertices: vertices, faces: faces}
	if len(vertices) > 0 {
		m.min = vertices[0]
		m.max = vertices[0]
		for _, v := range vertices[1:] {
			if v.X() < m.min.x {
				m.min.x = v.X()
			}
			if v.Y() < m.min.y {
				m.min.y = v.Y()
			}
			if v.Z() < m.min.z {
				m.min.z = v.Z()
			}
			if v.X() > m.max.x {
				m.max.x = v.X()
			}
			if v.Y() > m.max.y {
				m.max.y = v.Y()
			}
			if v.Z() > m.max.z {
				m.max.z = v.Z()
			}
		}
	}
	return m
}

func (m *optimizedModel) Vertices() []MicroVec3            { return m.vertices }
func (m *optimizedModel) Faces() []OptimizedFace            { return m.faces }
func (m *optimizedModel) OptimizedFace(i int) OptimizedFace { return m.faces[i] }
func (m *optimizedModel) FaceCount() int                    { return len(m.faces) }
func (m *optimizedModel) Min() MicroVec3                    { return m.min }
func (m *optimizedModel) Max() MicroVec3                    { return m.max }
func (m *optimizedModel) Size() MicroVec3 {
	return MicroVec3{m.max.x - m.min.x, m.max.y - m.min.y, m.max.z - m.min.z}
}

// NewOptimizedFace builds an OptimizedFace. touching defaults to NoFace for
// all three edges; callers fill it in once adjacency is known.
func NewOptimizedFace(vertices [3]int, extruder int) OptimizedFace {
	return OptimizedFace{
		Vertices:      vertices,
		touchingFaces: [3]int{NoFace, NoFace, NoFace},
		extruder:      extruder,
	}
}

// SetTouching records the neighbour triangle index for the given edge
// ordinal (0, 1 or 2).
func (f *OptimizedFace) SetTouching(edge int, faceIndex int) {
	f.touchingFaces[edge] = faceIndex
}
