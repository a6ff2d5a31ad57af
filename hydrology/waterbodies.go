package hydrology

import (
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// AssignWaterbodies implements spec.md 4.7's final pass: one flood fill
// over every non-land or lake tile assigns a stable id, tile set, and
// perimeter to each maximal connected water component (spec.md 3's
// waterbody invariant). Runs last, after lakes/rivers/fjords/glaciers have
// all run, so lake basins and fjords merge with the open ocean wherever
// they touch it. Carved river channels keep FlagLand and are not counted
// as water here.
func AssignWaterbodies(sphere *topology.Sphere) []Waterbody {
	n := sphere.TileCount()
	neighbors := neighborAdapter(sphere)
	claimed := make([]int32, n)
	for i := range claimed {
		claimed[i] = -1
	}

	isWater := func(i int) bool {
		t := &sphere.Tiles[i]
		return !t.HasFlag(topology.FlagLand) || t.HasFlag(topology.FlagHasLake)
	}

	var waterbodies []Waterbody
	nextID := int32(0)

	var allWater []int
	for i := range sphere.Tiles {
		if isWater(i) {
			allWater = append(allWater, i)
		}
	}
	sort.Ints(allWater)

	for _, start := range allWater {
		if claimed[start] != -1 {
			continue
		}
		id := nextID
		nextID++

		visited := kernel.BFS(kernel.BFSConfig{
			Neighbors: neighbors,
			Seeds:     []int32{int32(start)},
			Allow: func(tile int32) bool {
				return claimed[tile] == -1 && isWater(int(tile))
			},
		})

		wb := Waterbody{ID: id, IsLake: sphere.Tiles[start].HasFlag(topology.FlagHasLake)}
		visitedSet := make(map[int32]bool, len(visited))
		for _, tile := range visited {
			claimed[tile] = id
			sphere.Tiles[tile].WaterbodyID = id
			wb.Tiles = append(wb.Tiles, topology.TileID(tile))
			visitedSet[tile] = true
		}

		for _, tile := range visited {
			for _, n := range sphere.Neighbors(topology.TileID(tile)) {
				if !visitedSet[int32(n)] {
					wb.Perimeter = append(wb.Perimeter, topology.TileID(tile))
					break
				}
			}
		}

		waterbodies = append(waterbodies, wb)
	}

	return waterbodies
}
