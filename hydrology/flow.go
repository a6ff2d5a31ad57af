package hydrology

import (
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// ComputeFlowAccumulation implements spec.md 4.7's waterflow accumulation:
// sort all land tiles by elevation descending, then for each tile (in that
// order) add a fixed increment to its own flow and *assign* (not add) that
// flow to its strictly lowest neighbor, if one exists, creating discrete
// single-path channels rather than merging tributaries additively. Flat
// regions (no strictly lower neighbor) keep their flow locally and mark a
// potential sink via LakeDriver (spec.md 4.7, 3). Also sets
// Tile.RiverFlowDir to the neighbor index the flow was assigned to, or -1
// for a sink.
func ComputeFlowAccumulation(sphere *topology.Sphere, params Params) {
	var land []topology.TileID
	for i := range sphere.Tiles {
		if sphere.Tiles[i].HasFlag(topology.FlagLand) {
			land = append(land, topology.TileID(i))
			sphere.Tiles[i].FlowAccum = 0
			sphere.Tiles[i].LakeDriver = 0
			sphere.Tiles[i].RiverFlowDir = -1
		}
	}

	sort.Slice(land, func(i, j int) bool {
		return sphere.Tiles[land[i]].Elevation > sphere.Tiles[land[j]].Elevation
	})

	for _, t := range land {
		sphere.Tiles[t].FlowAccum += float32(params.FlowIncrement)

		nbrs := sphere.Neighbors(t)
		lowestIdx := -1
		lowestElev := sphere.Tiles[t].Elevation
		for idx, n := range nbrs {
			if sphere.Tiles[n].Elevation < lowestElev {
				lowestElev = sphere.Tiles[n].Elevation
				lowestIdx = idx
			}
		}

		if lowestIdx == -1 {
			sphere.Tiles[t].LakeDriver += sphere.Tiles[t].FlowAccum
			sphere.Tiles[t].RiverFlowDir = -1
			continue
		}

		target := nbrs[lowestIdx]
		sphere.Tiles[target].FlowAccum = sphere.Tiles[t].FlowAccum
		sphere.Tiles[t].RiverFlowDir = int8(lowestIdx)
	}
}
