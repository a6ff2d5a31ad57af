// Package hydrology implements spec.md 4.7: sorted flow accumulation,
// lake flood-fill, A*-based river carving, fjord/glacier stamping, and the
// final waterbody flood fill that assigns every maximal water component a
// stable id. Grounded on erosion.go's fluvial/coastal erosion passes
// (height-based, neighbor-aware) for the general "water interacts with
// elevation neighbor-by-neighbor" shape, and conceptually on the teacher's
// deleted voxel physics/water_flow.go height-difference flow model (see
// DESIGN.md) for flow-direction assignment, even though that file itself
// was dropped along with the rest of the grid-based pipeline.
package hydrology

import (
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// Waterbody is a slot-map entry referenced by Tile.WaterbodyID: a maximal
// connected water component with a stable id, its tile set, and its
// perimeter (spec.md 3: "waterbody tiles form maximal connected water
// components; perimeter set equals their boundary").
type Waterbody struct {
	ID        int32
	Tiles     []topology.TileID
	Perimeter []topology.TileID
	IsLake    bool
}

// Params configures the hydrology pipeline (spec.md 6).
type Params struct {
	BaseSeed uint64

	FlowIncrement float64 // fixed per-tile increment added every accumulation step

	LakeSizeScale    float64 // target lake size = ceil(driver / scale)
	RiverFlowThreshold float64

	FjordCandidateLatDeg float64 // high-latitude threshold for fjord candidates
	FjordMaxLength       int

	GlacierPasses        int
	GlacierBaseLatDeg    float64
	GlacierLatLoosenPerPass float64
	GlacierBaseElevation float64
	GlacierElevLoosenPerPass float64
}

// DefaultParams returns spec.md 4.7's documented defaults.
func DefaultParams(baseSeed uint64) Params {
	return Params{
		BaseSeed:                 baseSeed,
		FlowIncrement:            1.0,
		LakeSizeScale:            8.0,
		RiverFlowThreshold:       40.0,
		FjordCandidateLatDeg:     55,
		FjordMaxLength:           10,
		GlacierPasses:            4,
		GlacierBaseLatDeg:        65,
		GlacierLatLoosenPerPass:  5,
		GlacierBaseElevation:     1500,
		GlacierElevLoosenPerPass: 400,
	}
}

func neighborAdapter(sphere *topology.Sphere) func(int32) []int32 {
	return func(tile int32) []int32 {
		nbrs := sphere.Neighbors(topology.TileID(tile))
		out := make([]int32, len(nbrs))
		for i, n := range nbrs {
			out[i] = int32(n)
		}
		return out
	}
}
