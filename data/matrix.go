package data

// Matrix3x3 is an affine rotation matrix applied to model vertices before
// quantization and placement.
type Matrix3x3 [3][3]float64

// Identity3x3 returns the 3x3 identity matrix.
func Identity3x3() Matrix3x3 {
	return Matrix3x3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Apply rotates v by the matrix.
func (m Matrix3x3) Apply(v Vertex3) Vertex3 {
	return Vertex3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}
