// Package topology builds the hex-sphere tiling (a Goldberg polyhedron
// derived from an icosahedron) and owns the per-tile array that every later
// generation stage reads and writes. It is the base layer: nothing in this
// package depends on tectonics, hydrology, or climate.
package topology

import "github.com/go-gl/mathgl/mgl64"

// TileID indexes Sphere.Tiles. -1 means "unassigned" wherever an owning
// field (PlateID, WaterbodyID, ...) uses it.
type TileID int32

// CrustKind classifies a tile's lithosphere.
type CrustKind uint8

const (
	CrustOceanic CrustKind = iota
	CrustContinental
	CrustTransitional
)

// BoundaryKind classifies the plate-boundary relationship at a tile.
type BoundaryKind uint8

const (
	BoundaryNone BoundaryKind = iota
	BoundaryConvergent
	BoundaryDivergent
	BoundaryTransform
)

// RockType is one of ~35 rock classifications assigned by the features
// package's rock-type pass (spec.md 4.6).
type RockType uint8

const (
	RockNone RockType = iota
	RockBasalt
	RockGranite
	RockGabbro
	RockAndesite
	RockRhyolite
	RockObsidian
	RockPumice
	RockLimestone
	RockSandstone
	RockShale
	RockConglomerate
	RockChalk
	RockCoal
	RockRockSalt
	RockGypsum
	RockMarble
	RockQuartzite
	RockSlate
	RockSchist
	RockGneiss
	RockPeridotite
	RockDunite
	RockSerpentinite
	RockDiorite
	RockTuff
	RockBrecchia
	RockChert
	RockDolomite
	RockLaterite
	RockLoess
	RockTill
	RockPermafrostRock
	RockEvaporite
	RockIronFormation
	RockCount // sentinel, not a real rock
)

// FeatureKind tags the dominant geomorphic feature stamped on a tile.
type FeatureKind uint8

const (
	FeatureNone FeatureKind = iota
	FeatureOrogenyBelt
	FeatureFoothills
	FeatureRiftValley
	FeatureRiftShoulder
	FeatureTransformRidge
	FeatureShelf
	FeatureHotspotVolcano
	FeatureAncientOrogeny
	FeatureAncientUplift
)

// LockLevel is the per-property constraint-manager lock state (spec.md 4.9).
type LockLevel uint8

const (
	LockFree LockLevel = iota
	LockPartial
	LockFull
)

// Flag bits packed into Tile.Flags (spec.md 3).
const (
	FlagBoundary uint32 = 1 << iota
	FlagUplift
	FlagFossil
	FlagHasRiver
	FlagHasLake
	FlagHasGlacier
	FlagCoastal
	FlagEroded
	FlagLand
	FlagPentagon
)

// Soil holds the per-tile soil composition. "Clay" corrects the source's
// SoilCite misnomer per spec.md 9.
type Soil struct {
	Clay    float32
	Silt    float32
	Sand    float32
	Organic float32
	Depth   float32
	Sediment float32
}

// Climate holds the per-tile climate outputs sampled from the coarse grid.
type Climate struct {
	TempJan   float32
	TempJul   float32
	RainJan   float32
	RainJul   float32
	Koppen    byte
	BiomeID   uint16
	Variant   uint8
	FloraForest float32
	FloraGrass  float32
	FloraShrub  float32
	FloraDesert float32
}

// Tile is the value-typed per-tile record, stored contiguously in
// Sphere.Tiles and indexed by TileID.
type Tile struct {
	// Geometric (written once by topology construction, read-only after).
	Pos    mgl64.Vec3 // unit-sphere Cartesian position
	LatDeg float64
	LonDeg float64
	Pentagon bool
	FaceID   uint8

	// Tectonic.
	PlateID       int32 // -1 = unassigned
	MicroplateID  int32 // -1 = none
	Crust         CrustKind
	CrustAge      float32 // [0,1]
	CrustThickness float32 // km
	Boundary      BoundaryKind
	Rock          RockType
	Feature       FeatureKind
	Elevation     float32 // meters, relative to sea level
	OrogenyID     int32   // -1 = none; indexes the owning kernel.OrogenyRecord's caller-assigned id
	HotspotID     int32   // -1 = none; indexes features.Hotspot
	VolcanoID     int32   // -1 = none; indexes features.Volcano
	RegionTag     uint16  // geological-province tag written by the brush stamper

	// Hydrology.
	WaterbodyID   int32 // -1 = none
	FlowAccum     float32
	LakeDriver    float32
	IceThickness  float32
	HasRiverFlag  bool
	RiverFlowDir  int8 // neighbor index [0,6) or -1 = sink

	Soil Soil

	Climate Climate

	Flags uint32

	// Lock state, one LockLevel per lockable property group. Index meaning
	// is shared with orchestrator.Property.
	Locks [8]LockLevel
}

// HasFlag reports whether bit is set.
func (t *Tile) HasFlag(bit uint32) bool { return t.Flags&bit != 0 }

// SetFlag sets or clears bit.
func (t *Tile) SetFlag(bit uint32, on bool) {
	if on {
		t.Flags |= bit
	} else {
		t.Flags &^= bit
	}
}
