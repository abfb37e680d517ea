package data

import "github.com/aligator/goslice/internal/slog"

// InfillType selects the sparse/support fill pattern.
type InfillType int

const (
	InfillLines InfillType = iota
	InfillGrid
)

// ParseInfillType maps a configuration string to an InfillType.
func ParseInfillType(s string) (InfillType, bool) {
	switch s {
	case "LINES", "lines":
		return InfillLines, true
	case "GRID", "grid":
		return InfillGrid, true
	}
	return 0, false
}

// SupportType selects the support fill pattern; it reuses InfillType's two
// values (GRID, LINES) per spec.md §6.
type SupportType = InfillType

// OutputType selects the G-code dialect emitted by the GCodeEmitter.
type OutputType int

const (
	RepRap OutputType = iota
	UltiGCode
	BFB
	MakerBot
	Mach3
)

// ParseOutputType maps a configuration string to an OutputType.
func ParseOutputType(s string) (OutputType, bool) {
	switch s {
	case "REPRAP", "reprap":
		return RepRap, true
	case "ULTIGCODE", "ultigcode":
		return UltiGCode, true
	case "BFB", "bfb":
		return BFB, true
	case "MAKERBOT", "makerbot":
		return MakerBot, true
	case "MACH3", "mach3":
		return Mach3, true
	}
	return 0, false
}

// GoSliceOptions are the top-level, per-invocation options: I/O paths and
// the logger handle. These are never serialized into a config file; they
// always come from the CLI.
type GoSliceOptions struct {
	InputFilePath  string
	OutputFilePath string
	Logger         *slog.Logger
}

// PrinterOptions describe the physical machine.
type PrinterOptions struct {
	ExtrusionWidth         Micrometer
	FirstLayerExtrusionWidth Micrometer
	FilamentDiameter       Micrometer
	ExtrusionMultiplier    float64
	MaxObjectHeight        Micrometer
}

// SupportOptions configure support-structure generation.
type SupportOptions struct {
	Enabled         bool
	Extruder        int // -1 disables
	XYDistance      Micrometer
	Gap             Micrometer
	LineSpacing     Millimeter
	PatternSpacing  Millimeter
	Type            SupportType
	ThresholdAngle  Degree
	TopGapLayers    int
	InterfaceLayers int
}

// RaftOptions configure the sacrificial raft printed beneath the model.
type RaftOptions struct {
	Enabled             bool
	BaseThickness       Micrometer
	InterfaceThickness  Micrometer
	SurfaceLayers       int
	SurfaceThickness    Micrometer
	AirGap              Micrometer
	ExtraDistanceAround Micrometer
}

// SkirtOptions configure the priming skirt around layer 0.
type SkirtOptions struct {
	NumberOfLoops int
	Distance      Micrometer
	MinLength     Micrometer
}

// MultiMaterialOptions configure multi-extruder auxiliary structures.
type MultiMaterialOptions struct {
	WipeTowerSize               Micrometer
	WipeShieldDistanceFromShapes Micrometer
	OverlapPercent               int
}

// RetractionOptions configure filament retraction behaviour.
type RetractionOptions struct {
	Amount                        Micrometer
	Speed                         int
	ZHop                          Micrometer
	AmountOnExtruderSwitch        Micrometer
	MinimumExtrusionBeforeRetract Micrometer
	MinimumTravelToCauseRetract   Micrometer
}

// SpeedOptions configure per-feature print speeds (mm/s).
type SpeedOptions struct {
	Travel             int
	Infill             int
	OutsidePerimeter   int
	InsidePerimeters   int
	SupportMaterial    int
	FirstLayer         int
	MinimumPrinting    int
}

// FanSpeedOptions configures cooling-fan behaviour.
type FanSpeedOptions struct {
	MinPercent          int
	MaxPercent          int
	FirstLayerToAllow   int
	LayerToSpeedLUT     map[int]int
}

// CoolingOptions configure minimum layer time and fan scheduling.
type CoolingOptions struct {
	MinimumLayerTimeSeconds int
	DoCoolHeadLift          bool
	FanSpeed                FanSpeedOptions
}

// FilamentOptions describe filament- and temperature-related settings.
type FilamentOptions struct {
	InitialHotEndTemperature     int
	InitialBedTemperature        int
	HotEndTemperature            int
	BedTemperature                int
	InitialTemperatureLayerCount int
	RetractionSpeed              int
	RetractionLength             Micrometer
	FanSpeed                     FanSpeedOptions
}

// PlacementOptions control model rotation and XY positioning.
type PlacementOptions struct {
	RotationMatrix     Matrix3x3
	PositionX          Micrometer
	PositionY          Micrometer
	CenterObjectInXY   bool
	BottomClipAmount   Micrometer
}

// PrintOptions is the bulk of the slicing configuration: shells, infill,
// speeds, spiralize, combing, raft/skirt/support.
type PrintOptions struct {
	LayerThickness          Micrometer
	InitialLayerThickness   Micrometer

	NumberOfPerimeters   int
	NumberOfTopLayers    int
	NumberOfBottomLayers int

	InfillPercent             int
	InfillType                InfillType
	InfillRotationDegree      Degree
	InfillExtendIntoPerimeter Micrometer
	InfillZigZag              bool

	Support  SupportOptions
	Raft     RaftOptions
	Skirt    SkirtOptions
	MultiMaterial MultiMaterialOptions
	Retraction    RetractionOptions

	LayerSpeed       int
	MoveSpeed        int
	IntialLayerSpeed int
	Speed            SpeedOptions
	Cooling          CoolingOptions

	ContinuousSpiralOuterPerimeter bool
	SpiralizeBottomBoost           int

	AvoidCrossingPerimeters bool

	Placement PlacementOptions

	OutputType OutputType

	StartCode string
	EndCode   string
}

// Options is the full configuration tree for one GoSlice invocation.
type Options struct {
	GoSlice  GoSliceOptions
	Printer  PrinterOptions
	Print    PrintOptions
	Filament FilamentOptions
}

// DefaultOptions returns an Options tree with the same defaults a 20mm-cube
// test print would use (spec.md §8, scenario S1).
func DefaultOptions() Options {
	o := Options{}
	o.GoSlice.Logger = slog.Default()

	o.Printer.ExtrusionWidth = 400
	o.Printer.FirstLayerExtrusionWidth = 400
	o.Printer.FilamentDiameter = Millimeter(1.75).ToMicrometer()
	o.Printer.ExtrusionMultiplier = 1.0
	o.Printer.MaxObjectHeight = Millimeter(200).ToMicrometer()

	o.Print.LayerThickness = 200
	o.Print.InitialLayerThickness = 300
	o.Print.NumberOfPerimeters = 2
	o.Print.NumberOfTopLayers = 4
	o.Print.NumberOfBottomLayers = 4
	o.Print.InfillPercent = 20
	o.Print.InfillType = InfillLines
	o.Print.InfillExtendIntoPerimeter = 200
	o.Print.SpiralizeBottomBoost = 5

	o.Print.Support.XYDistance = 700
	o.Print.Support.Gap = 100
	o.Print.Support.LineSpacing = 2
	o.Print.Support.PatternSpacing = 2
	o.Print.Support.Type = InfillGrid
	o.Print.Support.ThresholdAngle = 45
	o.Print.Support.TopGapLayers = 1
	o.Print.Support.InterfaceLayers = 2
	o.Print.Support.Extruder = -1

	o.Print.Raft.BaseThickness = Millimeter(0.3).ToMicrometer()
	o.Print.Raft.InterfaceThickness = Millimeter(0.27).ToMicrometer()
	o.Print.Raft.SurfaceLayers = 2
	o.Print.Raft.SurfaceThickness = Millimeter(0.1).ToMicrometer()
	o.Print.Raft.AirGap = Millimeter(0.22).ToMicrometer()
	o.Print.Raft.ExtraDistanceAround = Millimeter(3).ToMicrometer()

	o.Print.Skirt.NumberOfLoops = 1
	o.Print.Skirt.Distance = Millimeter(3).ToMicrometer()
	o.Print.Skirt.MinLength = Millimeter(150).ToMicrometer()

	o.Print.MultiMaterial.WipeTowerSize = 0
	o.Print.MultiMaterial.WipeShieldDistanceFromShapes = Millimeter(2).ToMicrometer()
	o.Print.MultiMaterial.OverlapPercent = 15

	o.Print.Retraction.Amount = Millimeter(1).ToMicrometer()
	o.Print.Retraction.Speed = 40
	o.Print.Retraction.AmountOnExtruderSwitch = Millimeter(16).ToMicrometer()
	o.Print.Retraction.MinimumExtrusionBeforeRetract = Millimeter(1).ToMicrometer()
	o.Print.Retraction.MinimumTravelToCauseRetract = Millimeter(1.5).ToMicrometer()

	o.Print.LayerSpeed = 60
	o.Print.MoveSpeed = 150
	o.Print.IntialLayerSpeed = 20
	o.Print.Speed = SpeedOptions{
		Travel: 150, Infill: 60, OutsidePerimeter: 40, InsidePerimeters: 60,
		SupportMaterial: 60, FirstLayer: 20, MinimumPrinting: 10,
	}
	o.Print.Cooling = CoolingOptions{
		MinimumLayerTimeSeconds: 5,
		FanSpeed: FanSpeedOptions{
			MinPercent: 0, MaxPercent: 100, FirstLayerToAllow: 2,
			LayerToSpeedLUT: map[int]int{},
		},
	}

	o.Print.Placement.RotationMatrix = Identity3x3()
	o.Print.Placement.CenterObjectInXY = true

	o.Print.OutputType = RepRap

	o.Filament.InitialHotEndTemperature = 200
	o.Filament.InitialBedTemperature = 60
	o.Filament.HotEndTemperature = 200
	o.Filament.BedTemperature = 60
	o.Filament.InitialTemperatureLayerCount = 1
	o.Filament.RetractionSpeed = 40
	o.Filament.RetractionLength = Millimeter(1).ToMicrometer()
	o.Filament.FanSpeed = FanSpeedOptions{
		MinPercent: 0, MaxPercent: 100, FirstLayerToAllow: 2,
		LayerToSpeedLUT: map[int]int{},
	}

	return o
}
