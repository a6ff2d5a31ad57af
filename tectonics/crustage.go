package tectonics

import (
	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// samePlateNeighbors returns a NeighborFunc that never crosses a plate
// boundary: a tile's neighbor is only reachable if it shares the same
// PlateID, per spec.md 4.5 step 6 ("propagation never crosses plates").
func samePlateNeighbors(sphere *topology.Sphere) kernel.NeighborFunc {
	return func(tile int32) []int32 {
		ownPlate := sphere.Tiles[tile].PlateID
		var out []int32
		for _, n := range sphere.Neighbors(topology.TileID(tile)) {
			if sphere.Tiles[n].PlateID == ownPlate {
				out = append(out, int32(n))
			}
		}
		return out
	}
}

// AssignCrustAge runs a multi-source weighted BFS from every
// Boundary-Divergent tile, incrementing age by physical chord distance
// between neighbors times ageSpread, clamped at 1.0 (spec.md 4.5 step 6).
// Divergent seeds are processed in a Fisher-Yates-shuffled order first so
// tie-break ordering doesn't bias propagation direction; tiles unreached
// by any divergent source default to 1.0 (oldest, i.e. far-field abyssal
// crust).
func AssignCrustAge(sphere *topology.Sphere, ageSpread float64, src *rng.Source) {
	var divergent []int32
	for i := range sphere.Tiles {
		if sphere.Tiles[i].Boundary == topology.BoundaryDivergent {
			divergent = append(divergent, int32(i))
		}
	}
	src.Shuffle(len(divergent), func(i, j int) { divergent[i], divergent[j] = divergent[j], divergent[i] })

	n := sphere.TileCount()
	for i := range sphere.Tiles {
		sphere.Tiles[i].CrustAge = 1.0
	}
	if len(divergent) == 0 {
		return
	}

	edgeCost := func(from, to int32) float64 {
		d := sphere.Tiles[from].Pos.Sub(sphere.Tiles[to].Pos).Len()
		return d * ageSpread
	}

	kernel.WeightedCostField(n, samePlateNeighbors(sphere), divergent, edgeCost, func(tile int32, d float64) {
		age := float32(d)
		if age > 1.0 {
			age = 1.0
		}
		sphere.Tiles[tile].CrustAge = age
	})
}
