package data

// LayerPart is one simply-connected region on one layer: an outline plus
// its holes. Everything derived from it downstream (insets, skin, sparse
// infill, support, comb boundary, bridge angle) is stored in Attributes,
// keeping the contract with the boolean/offset kernel narrow: the LayerPart
// owns the vertex buffers, the clip package only ever reads and returns new
// Paths.
type LayerPart struct {
	outline    Path
	holes      Paths
	attributes map[string]interface{}
}

// NewUnknownLayerPart builds a LayerPart from an outline and holes of
// unknown winding (used right after the clipper union), normalizing the
// outline to CCW and every hole to CW.
func NewUnknownLayerPart(outline Path, holes Paths) LayerPart {
	return LayerPart{
		outline:    outline.EnsureCCW(),
		holes:      ensureHolesCW(holes),
		attributes: map[string]interface{}{},
	}
}

func ensureHolesCW(holes Paths) Paths {
	out := make(Paths, len(holes))
	for i, h := range holes {
		out[i] = h.EnsureCW()
	}
	return out
}

// Outline returns the outer boundary of the part (CCW).
func (p LayerPart) Outline() Path { return p.outline }

// Holes returns the hole boundaries of the part (CW).
func (p LayerPart) Holes() Paths { return p.holes }

// Attributes returns the part's attribute map. Callers outside of the owning
// modifier should prefer a typed accessor over touching this directly.
func (p LayerPart) Attributes() map[string]interface{} {
	if p.attributes == nil {
		return map[string]interface{}{}
	}
	return p.attributes
}

// WithAttribute returns a copy of p with the given attribute set.
func (p LayerPart) WithAttribute(key string, value interface{}) LayerPart {
	out := p
	out.attributes = map[string]interface{}{}
	for k, v := range p.attributes {
		out.attributes[k] = v
	}
	out.attributes[key] = value
	return out
}

// CombBoundary returns the part's comb boundary polygon, if computed.
func (p LayerPart) CombBoundary() (Path, bool) {
	v, ok := p.attributes["combBoundary"]
	if !ok {
		return nil, false
	}
	path, ok := v.(Path)
	return path, ok
}

// BridgeAngle returns the bridge override angle for this part's skin
// infill, if one was computed. An optional return instead of a sentinel -1,
// per the rewrite's design note on avoiding sentinel values.
func (p LayerPart) BridgeAngle() (Degree, bool) {
	v, ok := p.attributes["bridgeAngle"]
	if !ok {
		return 0, false
	}
	deg, ok := v.(Degree)
	return deg, ok
}

// Extruder returns the index of the extruder that should print this part,
// if the part carries an extruder attribute. The slicer tags every part it
// produces, single-volume models included; parts built without the
// attribute report false.
func (p LayerPart) Extruder() (int, bool) {
	v, ok := p.attributes["extruder"]
	if !ok {
		return 0, false
	}
	idx, ok := v.(int)
	return idx, ok
}

// Insets returns the inset rings stored by the perimeter modifier, ordered
// outermost-first (index 0 = outline offset by half a wall width).
func (p LayerPart) Insets() []LayerPart {
	v, ok := p.attributes["insets"]
	if !ok {
		return nil
	}
	insets, _ := v.([]LayerPart)
	return insets
}

// PartitionedLayer holds all LayerParts for one Z height, plus layer-wide
// attributes (skirt, brim, wipe-tower, wipe-shield polygons) that aren't
// owned by any single part.
type PartitionedLayer interface {
	LayerParts() []LayerPart
	Attributes() map[string]interface{}
}

type partitionedLayer struct {
	parts      []LayerPart
	attributes map[string]interface{}
}

// NewPartitionedLayer builds a PartitionedLayer from its parts.
func NewPartitionedLayer(parts []LayerPart) PartitionedLayer {
	return &partitionedLayer{parts: parts, attributes: map[string]interface{}{}}
}

func (l *partitionedLayer) LayerParts() []LayerPart           { return l.parts }
func (l *partitionedLayer) Attributes() map[string]interface{} { return l.attributes }

// ExtendedLayer is a PartitionedLayer created by copying an existing one and
// adding/overriding attributes, without mutating the original (modifiers run
// in a pipeline and must not alias earlier results).
type ExtendedLayer struct {
	partitionedLayer
}

// NewExtendedLayer copies the parts and attributes of base into a new,
// independently-mutable layer.
func NewExtendedLayer(base PartitionedLayer) *ExtendedLayer {
	attrs := map[string]interface{}{}
	for k, v := range base.Attributes() {
		attrs[k] = v
	}
	return &ExtendedLayer{partitionedLayer{
		parts:      base.LayerParts(),
		attributes: attrs,
	}}
}

// SetLayerParts replaces the part list of the extended layer.
func (l *ExtendedLayer) SetLayerParts(parts []LayerPart) {
	l.parts = parts
}

// SetAttribute sets a layer-wide attribute.
func (l *ExtendedLayer) SetAttribute(key string, value interface{}) {
	l.attributes[key] = value
}

// Z is printZ (µm) of a layer; LayerZ pairs it with its PartitionedLayer.
type LayerZ struct {
	PartitionedLayer
	Z Micrometer
}
