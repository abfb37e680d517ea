package data

import "math"

// MicroPoint is a 2D point in integer micrometer space.
type MicroPoint struct {
	x, y Micrometer
}

// NewMicroPoint builds a MicroPoint from its coordinates.
func NewMicroPoint(x, y Micrometer) MicroPoint {
	return MicroPoint{x: x, y: y}
}

// X returns the x coordinate.
func (p MicroPoint) X() Micrometer { return p.x }

// Y returns the y coordinate.
func (p MicroPoint) Y() Micrometer { return p.y }

// SetX replaces the x coordinate of p in place.
func (p *MicroPoint) SetX(x Micrometer) { p.x = x }

// SetY replaces the y coordinate of p in place.
func (p *MicroPoint) SetY(y Micrometer) { p.y = y }

// Add returns p+o.
func (p MicroPoint) Add(o MicroPoint) MicroPoint {
	return MicroPoint{p.x + o.x, p.y + o.y}
}

// Sub returns p-o.
func (p MicroPoint) Sub(o MicroPoint) MicroPoint {
	return MicroPoint{p.x - o.x, p.y - o.y}
}

// Mul returns p scaled by factor.
func (p MicroPoint) Mul(factor float64) MicroPoint {
	return MicroPoint{Micrometer(float64(p.x) * factor), Micrometer(float64(p.y) * factor)}
}

// Size returns the euclidean length of p interpreted as a vector.
func (p MicroPoint) Size() Micrometer {
	return Micrometer(math.Hypot(float64(p.x), float64(p.y)))
}

// Size2 returns the squared euclidean length, avoiding the sqrt when only
// relative comparisons are needed.
func (p MicroPoint) Size2() int64 {
	return int64(p.x)*int64(p.x) + int64(p.y)*int64(p.y)
}

// ShorterThan reports whether p, interpreted as a vector, is strictly
// shorter than the given length.
func (p MicroPoint) ShorterThan(length Micrometer) bool {
	return p.Size2() < int64(length)*int64(length)
}

// ShorterThanOrEqual reports whether p, interpreted as a vector, is shorter
// than or equal to the given length.
func (p MicroPoint) ShorterThanOrEqual(length Micrometer) bool {
	return p.Size2() <= int64(length)*int64(length)
}

// Distance returns the euclidean distance between p and o.
func (p MicroPoint) Distance(o MicroPoint) Micrometer {
	return p.Sub(o).Size()
}

// Rotate rotates p by deg degrees around the origin.
func (p MicroPoint) Rotate(deg Degree) MicroPoint {
	rad := ToRadians(float64(deg))
	sin, cos := math.Sincos(rad)
	x := float64(p.x)*cos - float64(p.y)*sin
	y := float64(p.x)*sin + float64(p.y)*cos
	return MicroPoint{Micrometer(math.Round(x)), Micrometer(math.Round(y))}
}
