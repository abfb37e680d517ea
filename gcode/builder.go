// Package gcode implements C11 (the GCodeEmitter, in Builder) and C10 (the
// GCodePlanner, in Planner), plus the orchestration of per-layer renderers
// (the Generator, serving C8/C12's ordering guarantees).
package gcode

import (
	"fmt"
	"strings"

	"github.com/aligator/goslice/data"
)

// Builder is the low-level G-code emitter (C11): it tracks current X/Y/Z/E
// so a move line only carries the axes that changed (the feedrate is written
// on every move line, changed or not), and branches on the configured
// dialect at the handful of sites that actually differ (E-value presence,
// retraction shape, fan command, header comments), per the rewrite's
// decision to replace per-dialect subtypes with a single tagged Dialect
// field (spec.md §9).
type Builder struct {
	sb strings.Builder

	dialect data.OutputType

	x, y, z, e Micrometer
	f          int // current feedrate, mm/min
	hasPos     bool

	extrusionWidth  data.Micrometer
	layerThickness  data.Micrometer
	filamentArea    float64 // mm^2, derived from filament diameter
	multiplier      float64

	extrudeSpeed         int // mm/s
	extrudeSpeedOverride int
	overrideActive       bool
	moveSpeed            int // mm/s

	retractionSpeed  int
	retractionAmount data.Micrometer
	retractionZHop   data.Micrometer
	retracted        bool

	currentExtruder int
}

// Micrometer is a local alias to keep Builder's arithmetic terse; it is the
// same type as data.Micrometer.
type Micrometer = data.Micrometer

// NewBuilder returns an empty Builder configured for the given dialect.
func NewBuilder(dialect data.OutputType, filamentDiameter data.Micrometer, multiplier float64) *Builder {
	r := float64(filamentDiameter) / 2 / 1000 // mm
	return &Builder{
		dialect:         dialect,
		filamentArea:    3.14159265358979 * r * r,
		multiplier:      multiplier,
		currentExtruder: -1,
		moveSpeed:       150,
		extrudeSpeed:    60,
	}
}

// String returns the accumulated G-code text.
func (b *Builder) String() string { return b.sb.String() }

// AddComment appends a ";"-prefixed comment line.
func (b *Builder) AddComment(format string, args ...interface{}) {
	b.sb.WriteString(";")
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString("\n")
}

// AddCommand appends a raw command line verbatim (used for fixed preamble
// commands such as M104/M140/M109 that don't go through the move tracker).
func (b *Builder) AddCommand(format string, args ...interface{}) {
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString("\n")
}

// SetExtrusion configures the layer thickness and extrusion width used to
// convert a move length into an E (filament) delta.
func (b *Builder) SetExtrusion(layerThickness, extrusionWidth data.Micrometer) {
	b.layerThickness = layerThickness
	b.extrusionWidth = extrusionWidth
}

// SetExtrudeSpeed sets the default speed (mm/s) used for extrude moves.
func (b *Builder) SetExtrudeSpeed(speed int) { b.extrudeSpeed = speed }

// SetMoveSpeed sets the default speed (mm/s) used for travel moves.
func (b *Builder) SetMoveSpeed(speed int) { b.moveSpeed = speed }

// SetExtrudeSpeedOverride forces every extrude move to this speed
// regardless of what's requested, until DisableExtrudeSpeedOverride is
// called (used for the first layer's slower speed).
func (b *Builder) SetExtrudeSpeedOverride(speed int) {
	b.extrudeSpeedOverride = speed
	b.overrideActive = true
}

// DisableExtrudeSpeedOverride clears a speed override set by
// SetExtrudeSpeedOverride.
func (b *Builder) DisableExtrudeSpeedOverride() { b.overrideActive = false }

// SetRetractionSpeed sets the speed (mm/s) used for retraction moves.
func (b *Builder) SetRetractionSpeed(speed int) { b.retractionSpeed = speed }

// SetRetractionAmount sets the length retracted on a standard retraction.
func (b *Builder) SetRetractionAmount(amount data.Micrometer) { b.retractionAmount = amount }

// SetRetractionZHop sets the Z hop performed during a retraction, if any.
func (b *Builder) SetRetractionZHop(hop data.Micrometer) { b.retractionZHop = hop }

func (b *Builder) resolvedExtrudeSpeed(requested int) int {
	if b.overrideActive {
		return b.extrudeSpeedOverride
	}
	if requested > 0 {
		return requested
	}
	return b.extrudeSpeed
}

// effectiveMoveSpeed returns requested, or the configured default when zero.
func (b *Builder) effectiveMoveSpeed(requested int) int {
	if requested > 0 {
		return requested
	}
	return b.moveSpeed
}

func (b *Builder) setFeedrate(mmPerSec int) {
	f := mmPerSec * 60
	if f != b.f {
		b.f = f
	}
}

// eDeltaFor returns the E-axis delta for a move of the given length that
// extrudes a bead extrusionWidth wide and layerThickness tall.
func (b *Builder) eDeltaFor(length data.Micrometer) data.Micrometer {
	if b.filamentArea <= 0 {
		return 0
	}
	widthMM := float64(b.extrusionWidth) / 1000
	heightMM := float64(b.layerThickness) / 1000
	lengthMM := float64(length) / 1000
	volumeMM3 := widthMM * heightMM * lengthMM * b.multiplier
	filamentMM := volumeMM3 / b.filamentArea
	return data.Micrometer(filamentMM * 1000)
}

// MoveTo emits a non-extruding travel move to p at the given speed (mm/s,
// 0 = use the configured default). spiralZ, if non-zero, is used as the Z
// height instead of b.z (continuous-spiral vase mode).
func (b *Builder) MoveTo(p data.MicroPoint, speed int, spiralZ data.Micrometer) {
	speed = b.effectiveMoveSpeed(speed)
	b.setFeedrate(speed)

	z := b.z
	if spiralZ != 0 {
		z = spiralZ
	}

	b.emitMove("G0", p, z, false, 0)
	b.x, b.y, b.z = p.X(), p.Y(), z
	b.hasPos = true
}

// ExtrudeTo emits an extrude move to p at the given speed (mm/s, 0 = use
// the configured/overridden default).
func (b *Builder) ExtrudeTo(p data.MicroPoint, speed int, spiralZ data.Micrometer) {
	speed = b.resolvedExtrudeSpeed(speed)
	b.setFeedrate(speed)

	z := b.z
	if spiralZ != 0 {
		z = spiralZ
	}

	length := data.NewMicroPoint(p.X()-b.x, p.Y()-b.y).Size()
	if z != b.z {
		length = data.NewMicroPoint(length, z-b.z).Size()
	}
	delta := b.eDeltaFor(length)

	b.emitMove("G1", p, z, true, delta)
	b.x, b.y, b.z, b.e = p.X(), p.Y(), z, b.e+delta
	b.hasPos = true
}

func (b *Builder) emitMove(cmd string, p data.MicroPoint, z data.Micrometer, extrude bool, eDelta data.Micrometer) {
	fmt.Fprintf(&b.sb, "%s", cmd)
	if !b.hasPos || p.X() != b.x {
		fmt.Fprintf(&b.sb, " X%.3f", um(p.X()))
	}
	if !b.hasPos || p.Y() != b.y {
		fmt.Fprintf(&b.sb, " Y%.3f", um(p.Y()))
	}
	if z != b.z {
		fmt.Fprintf(&b.sb, " Z%.3f", um(z))
	}
	fmt.Fprintf(&b.sb, " F%d", b.f)
	if extrude && b.dialect != data.UltiGCode {
		fmt.Fprintf(&b.sb, " E%.5f", um(b.e+eDelta))
	} else if extrude {
		// UltiGCode reports extrusion relative to the previous move only.
		fmt.Fprintf(&b.sb, " E%.5f", um(eDelta))
	}
	b.sb.WriteString("\n")
}

// Retract emits a retraction, applying the configured Z hop if any.
func (b *Builder) Retract() {
	if b.retracted || b.retractionAmount <= 0 {
		return
	}
	b.retracted = true

	switch b.dialect {
	case data.BFB:
		b.AddCommand("M227")
	default:
		b.setFeedrate(b.retractionSpeed)
		fmt.Fprintf(&b.sb, "G1 F%d E%.5f\n", b.f, um(b.e-b.retractionAmount))
		b.e -= b.retractionAmount
	}

	if b.retractionZHop > 0 {
		fmt.Fprintf(&b.sb, "G1 Z%.3f\n", um(b.z+b.retractionZHop))
	}
}

// Unretract reverses a previous Retract, undoing any Z hop.
func (b *Builder) Unretract() {
	if !b.retracted {
		return
	}
	b.retracted = false

	if b.retractionZHop > 0 {
		fmt.Fprintf(&b.sb, "G1 Z%.3f\n", um(b.z))
	}

	switch b.dialect {
	case data.BFB:
		b.AddCommand("M226")
	default:
		b.setFeedrate(b.retractionSpeed)
		fmt.Fprintf(&b.sb, "G1 F%d E%.5f\n", b.f, um(b.e+b.retractionAmount))
		b.e += b.retractionAmount
	}
}

// SetExtruder emits a tool-change command if idx differs from the current
// extruder, and reports whether a change happened so the caller can
// interpose a wipe-tower pass (spec.md §4.10).
func (b *Builder) SetExtruder(idx int, switchRetraction data.Micrometer) bool {
	if idx == b.currentExtruder {
		return false
	}

	if b.currentExtruder != -1 {
		save := b.retractionAmount
		b.retractionAmount = switchRetraction
		b.Retract()
		b.retractionAmount = save
	}

	b.AddCommand("T%d", idx)
	b.currentExtruder = idx
	b.e = 0
	b.Unretract()
	return true
}

// SetFan emits the fan-speed command appropriate for the configured
// dialect (percent, 0-100).
func (b *Builder) SetFan(percent int) {
	switch b.dialect {
	case data.BFB:
		fmt.Fprintf(&b.sb, "M106 S%d\n", percent*255/100)
	default:
		if percent <= 0 {
			b.AddCommand("M107")
			return
		}
		fmt.Fprintf(&b.sb, "M106 S%d\n", percent*255/100)
	}
}

func um(m data.Micrometer) float64 { return float64(m) / 1000 }

// ExtrudedLength returns the cumulative E-axis value (filament consumed),
// used to fill in the UltiGCode ";MATERIAL:" header placeholder once a
// whole file has been generated.
func (b *Builder) ExtrudedLength() data.Micrometer { return b.e }
