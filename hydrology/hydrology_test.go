package hydrology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomgom50/aethelgard-worldgen/tectonics"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

func buildWorld(t *testing.T, n, plateCount int, seed uint64) *topology.Sphere {
	t.Helper()
	sphere, err := topology.Build(n)
	require.NoError(t, err)

	params := tectonics.DefaultParams(seed, plateCount, 0.4)
	_, _, err = tectonics.Run(sphere, params)
	require.NoError(t, err)
	return sphere
}

func TestFlowDirectionPointsToStrictLowerNeighborOrSink(t *testing.T) {
	sphere := buildWorld(t, 8, 8, 21)
	ComputeFlowAccumulation(sphere, DefaultParams(21))

	for i := range sphere.Tiles {
		tile := &sphere.Tiles[i]
		if !tile.HasFlag(topology.FlagLand) {
			continue
		}
		if tile.RiverFlowDir == -1 {
			continue
		}
		nbrs := sphere.Neighbors(topology.TileID(i))
		require.Less(t, int(tile.RiverFlowDir), len(nbrs))
		target := nbrs[tile.RiverFlowDir]
		assert.Less(t, sphere.Tiles[target].Elevation, tile.Elevation)
	}
}

func TestFlowAcyclicity(t *testing.T) {
	sphere := buildWorld(t, 8, 8, 22)
	ComputeFlowAccumulation(sphere, DefaultParams(22))

	n := sphere.TileCount()
	for i := range sphere.Tiles {
		if !sphere.Tiles[i].HasFlag(topology.FlagLand) {
			continue
		}
		current := topology.TileID(i)
		steps := 0
		for steps <= n {
			dir := sphere.Tiles[current].RiverFlowDir
			if dir == -1 {
				break
			}
			nbrs := sphere.Neighbors(current)
			if int(dir) >= len(nbrs) {
				break
			}
			current = nbrs[dir]
			steps++
			if !sphere.Tiles[current].HasFlag(topology.FlagLand) {
				break
			}
		}
		assert.LessOrEqual(t, steps, n, "flow direction cycle from tile %d", i)
	}
}

func TestAssignWaterbodiesProducesMaximalComponents(t *testing.T) {
	sphere := buildWorld(t, 8, 8, 23)
	params := DefaultParams(23)
	ComputeFlowAccumulation(sphere, params)
	result := Run(sphere, params, 23)

	seen := make(map[topology.TileID]int32)
	for _, wb := range result.Waterbodies {
		for _, tile := range wb.Tiles {
			seen[tile] = wb.ID
			assert.Equal(t, wb.ID, sphere.Tiles[tile].WaterbodyID)
		}
		for _, tile := range wb.Tiles {
			for _, n := range sphere.Neighbors(tile) {
				if other, ok := seen[n]; ok {
					assert.Equal(t, wb.ID, other, "waterbody %d tile %d neighbors tile %d in a different waterbody", wb.ID, tile, n)
				}
			}
		}
	}
}
