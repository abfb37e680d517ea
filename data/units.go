// Package data provides the core value types shared by every stage of the
// slicing pipeline: micrometer/degree newtypes, 2D integer geometry,
// mesh and layer representations, and the configuration tree.
package data

import "math"

// Micrometer is the base length unit used everywhere in the pipeline once a
// model has left the loader. All geometry downstream of the optimizer is
// integer micrometers; doubles only ever appear inside geometric kernels.
type Micrometer int64

// Millimeter is a convenience unit for configuration values; it is always
// converted to Micrometer before being stored on data.Options.
type Millimeter float64

// ToMicrometer converts a millimeter value to the integer micrometer space.
func (m Millimeter) ToMicrometer() Micrometer {
	return Micrometer(math.Round(float64(m) * 1000))
}

// Degree is an integer-degree angle, as used for rotation and infill angles.
type Degree int

// ToRadians converts degrees (as a plain float64, for use inside geometric
// kernels) to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Abs returns the absolute value of a Micrometer.
func (m Micrometer) Abs() Micrometer {
	if m < 0 {
		return -m
	}
	return m
}
