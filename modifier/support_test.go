package modifier

import (
	"testing"

	"github.com/aligator/goslice/data"
)

func TestSupportDetectorModifierNoopWhenDisabled(t *testing.T) {
	options := &data.Options{}
	options.Print.Support.Enabled = false

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{squarePart(10000)}),
		data.NewPartitionedLayer([]data.LayerPart{squarePart(10000)}),
	}

	m := NewSupportDetectorModifier(options)
	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned an error: %v", err)
	}

	support, err := PartsAttribute(layers[0], "support")
	if err != nil {
		t.Fatalf("PartsAttribute(support): %v", err)
	}
	if support != nil {
		t.Error("expected no support attribute to be written when support is disabled")
	}
}

func TestSupportDetectorModifierFindsOverhang(t *testing.T) {
	options := &data.Options{}
	options.Print.Support.Enabled = true
	options.Print.Support.ThresholdAngle = 45
	options.Print.Support.PatternSpacing = 2
	options.Print.LayerThickness = 200

	// layer 0 is a small square; layer 1 is a much bigger square overhanging
	// it on every side by more than the threshold-angle offset allows, so
	// the detector should find an unsupported region on layer 1.
	small := squarePart(4000)
	big := data.NewUnknownLayerPart(data.Path{
		data.NewMicroPoint(-10000, -10000),
		data.NewMicroPoint(14000, -10000),
		data.NewMicroPoint(14000, 14000),
		data.NewMicroPoint(-10000, 14000),
	}, nil)

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{small}),
		data.NewPartitionedLayer([]data.LayerPart{big}),
		data.NewPartitionedLayer([]data.LayerPart{big}),
	}

	m := NewSupportDetectorModifier(options)
	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned an error: %v", err)
	}

	support, err := PartsAttribute(layers[0], "support")
	if err != nil {
		t.Fatalf("PartsAttribute(support): %v", err)
	}
	if len(support) == 0 {
		t.Error("expected the detector to find support area under the overhanging layer")
	}
}

func TestSupportDetectorModifierTagsConfiguredExtruder(t *testing.T) {
	options := &data.Options{}
	options.Print.Support.Enabled = true
	options.Print.Support.ThresholdAngle = 45
	options.Print.Support.PatternSpacing = 2
	options.Print.LayerThickness = 200
	options.Print.Support.Extruder = 1

	small := squarePart(4000)
	big := data.NewUnknownLayerPart(data.Path{
		data.NewMicroPoint(-10000, -10000),
		data.NewMicroPoint(14000, -10000),
		data.NewMicroPoint(14000, 14000),
		data.NewMicroPoint(-10000, 14000),
	}, nil)

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{small}),
		data.NewPartitionedLayer([]data.LayerPart{big}),
		data.NewPartitionedLayer([]data.LayerPart{big}),
	}

	m := NewSupportDetectorModifier(options)
	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned an error: %v", err)
	}

	support, err := PartsAttribute(layers[0], "support")
	if err != nil {
		t.Fatalf("PartsAttribute(support): %v", err)
	}
	if len(support) == 0 {
		t.Fatal("expected the detector to find support area under the overhanging layer")
	}
	for _, part := range support {
		extruder, ok := part.Extruder()
		if !ok || extruder != 1 {
			t.Errorf("expected every support part to carry the configured extruder 1, got %v, ok=%v", extruder, ok)
		}
	}
}

func TestSupportDetectorModifierLeavesExtruderUntaggedByDefault(t *testing.T) {
	options := &data.Options{}
	options.Print.Support.Enabled = true
	options.Print.Support.ThresholdAngle = 45
	options.Print.Support.PatternSpacing = 2
	options.Print.LayerThickness = 200
	options.Print.Support.Extruder = -1

	small := squarePart(4000)
	big := data.NewUnknownLayerPart(data.Path{
		data.NewMicroPoint(-10000, -10000),
		data.NewMicroPoint(14000, -10000),
		data.NewMicroPoint(14000, 14000),
		data.NewMicroPoint(-10000, 14000),
	}, nil)

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{small}),
		data.NewPartitionedLayer([]data.LayerPart{big}),
		data.NewPartitionedLayer([]data.LayerPart{big}),
	}

	m := NewSupportDetectorModifier(options)
	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned an error: %v", err)
	}

	support, err := PartsAttribute(layers[0], "support")
	if err != nil {
		t.Fatalf("PartsAttribute(support): %v", err)
	}
	if len(support) == 0 {
		t.Fatal("expected the detector to find support area under the overhanging layer")
	}
	for _, part := range support {
		if _, ok := part.Extruder(); ok {
			t.Error("expected no extruder tag when Support.Extruder is -1")
		}
	}
}
