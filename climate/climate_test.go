package climate

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

func TestBilinearWeightsSumToOne(t *testing.T) {
	grid := NewGrid(16)
	cases := []struct{ lat, lon float64 }{
		{0, 0}, {89.9, 179.9}, {-89.9, -179.9}, {12.34, -56.78}, {-45, 170},
	}
	for _, c := range cases {
		_, _, _, _, w00, w10, w01, w11 := grid.BilinearWeights(c.lat, c.lon)
		assert.InDelta(t, 1.0, w00+w10+w01+w11, 1e-9)
	}
}

func TestDistanceToSeaIsZeroAtSeaCellsAndGrowsInland(t *testing.T) {
	sphere := buildWorld(t, 10, 8, 31)
	grid := BinTiles(sphere, 32)
	ComputeDistanceToSea(grid)

	for i := range grid.Cells {
		c := &grid.Cells[i]
		if c.LandFraction() < landFractionSeaThreshold {
			assert.Equal(t, 0.0, c.DistToSea)
		} else {
			// An inland cell is exactly one hop further from the sea than
			// its nearest neighbor.
			nearest := c.DistToSea
			for _, nb := range neighborAdapter4(grid.G)(int32(i)) {
				if grid.Cells[nb].DistToSea < nearest {
					nearest = grid.Cells[nb].DistToSea
				}
			}
			assert.Equal(t, c.DistToSea-1, nearest)
		}
	}
}

func TestClassifyZonesIsSymmetricAboutEquator(t *testing.T) {
	grid := NewGrid(64)
	ClassifyZones(grid)

	for y := 0; y < grid.G/2; y++ {
		north := grid.At(0, y).ZoneFlags
		south := grid.At(0, grid.G-1-y).ZoneFlags
		// Both rows should carry the same count of set hemisphere bits,
		// mirrored about the equator (north bits vs south bits).
		assert.Equal(t, bitCount(north), bitCount(south))
	}
}

func bitCount(v uint16) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

func TestRunProducesValidKoppenAndNormalizedFlora(t *testing.T) {
	sphere := buildWorld(t, 10, 8, 32)
	params := DefaultParams(32)
	params.GridSize = 32

	result := Run(sphere, params)
	require.NotNil(t, result.Grid)
	require.NotEmpty(t, result.Rules)

	for i := range sphere.Tiles {
		tile := &sphere.Tiles[i]
		if !tile.HasFlag(topology.FlagLand) {
			assert.Equal(t, uint16(BiomeOcean), tile.Climate.BiomeID)
			continue
		}
		assert.NotEqual(t, byte(0), tile.Climate.Koppen, "tile %d should classify to some Koppen code", i)

		sum := tile.Climate.FloraForest + tile.Climate.FloraGrass + tile.Climate.FloraShrub + tile.Climate.FloraDesert
		assert.InDelta(t, 1.0, float64(sum), 1e-4, "tile %d flora weights should renormalize to 1", i)
	}
}

func TestClassifyKoppenIceCapBelowFreezing(t *testing.T) {
	tile := &topology.Tile{}
	tile.Climate.TempJan = -30
	tile.Climate.TempJul = -25
	tile.Climate.RainJan = 5
	tile.Climate.RainJul = 5
	ClassifyKoppen(tile)
	assert.Equal(t, KoppenIceCap, tile.Climate.Koppen)
}

func TestClassifyKoppenTropicalRainforest(t *testing.T) {
	tile := &topology.Tile{}
	tile.Climate.TempJan = 26
	tile.Climate.TempJul = 27
	tile.Climate.RainJan = 200
	tile.Climate.RainJul = 220
	ClassifyKoppen(tile)
	assert.Equal(t, KoppenTropicalRainforest, tile.Climate.Koppen)
}
