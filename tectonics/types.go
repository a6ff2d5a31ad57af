// Package tectonics implements the plate-seeding, fractal-fill, microplate,
// velocity, boundary-classification, crust-age, base-elevation, and
// boundary-feature stages of the generation pipeline (spec.md 4.5),
// grounded on the teacher's sphere-based Voronoi/plate pipeline
// (plates.go, tectonics.go, improved_tectonics.go,
// realistic_plates_simple.go) rather than its voxel/grid pipeline.
package tectonics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// tierCrustFractions is the fixed distribution cycled by plate tier
// (spec.md 4.5 step 1).
var tierCrustFractions = [4]float64{0.75, 0.275, 0.04, 0.015}

// Plate is one tectonic plate: a seed-grown owner of a Hamilton-quota share
// of tiles, carrying a rigid tangent velocity used for boundary
// classification and feature placement.
type Plate struct {
	ID            int32
	Kind          topology.CrustKind // CrustContinental or CrustOceanic
	Tier          int
	CrustFraction float64
	Seed          topology.TileID
	Center        mgl64.Vec3 // weighted centroid of owned tiles, unit sphere
	Velocity      mgl64.Vec3 // tangent to Center, magnitude = speed
	Speed         float64    // [0.2, 1.0]
	TileCount     int
	Microplates   []int32
}

// Microplate is a constrained sub-region of a single parent plate.
type Microplate struct {
	ID          int32
	ParentPlate int32
	Seed        topology.TileID
	Tiles       []topology.TileID
}

// Params configures one tectonic pipeline run (spec.md 4.5, 6).
type Params struct {
	BaseSeed           uint64
	PlateCount         int
	ContinentalRatio   float64 // fraction of plates that are continental
	MinSeedHopDistance int     // D, default 5
	MicroplatesPerSeed int     // M, default 3
	VotingThreshold    float64 // default 0.525
	TransformBand      float64 // |dot| below this is Transform, default 0.25
	CrustAgeSpread     float64 // default 2.5
	MaxRetries         int     // default 10
	ContinentalBaseMin float64 // default +500m
	ContinentalBaseMax float64 // default +1000m
	OceanicBaseMin     float64 // default -5000m
	OceanicBaseMax     float64 // default -3000m
	SeaLevel           float64 // meters, default 0
}

// DefaultParams returns spec.md 4.5/6's documented defaults with the given
// plate count, continental ratio and seed filled in by the caller.
func DefaultParams(baseSeed uint64, plateCount int, continentalRatio float64) Params {
	return Params{
		BaseSeed:           baseSeed,
		PlateCount:         plateCount,
		ContinentalRatio:   continentalRatio,
		MinSeedHopDistance: 5,
		MicroplatesPerSeed: 3,
		VotingThreshold:    0.525,
		TransformBand:      0.25,
		CrustAgeSpread:     2.5,
		MaxRetries:         10,
		ContinentalBaseMin: 500,
		ContinentalBaseMax: 1000,
		OceanicBaseMin:     -5000,
		OceanicBaseMax:     -3000,
		SeaLevel:           0,
	}
}

// Result is the full output of one tectonic pipeline run, in addition to
// the per-tile fields written directly onto sphere.Tiles.
type Result struct {
	Plates      []Plate
	Microplates []Microplate
	Attempt     int  // 1-based retry attempt that produced this result
	ShortFill   bool // true if the final attempt still has a validation defect
}
