package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/tectonics"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

func buildWorld(t *testing.T, n, plateCount int, seed uint64) (*topology.Sphere, *tectonics.Result) {
	t.Helper()
	sphere, err := topology.Build(n)
	require.NoError(t, err)

	params := tectonics.DefaultParams(seed, plateCount, 0.4)
	result, _, err := tectonics.Run(sphere, params)
	require.NoError(t, err)
	return sphere, result
}

func TestGenerateHotspotsStaysWithinOnePlate(t *testing.T) {
	sphere, result := buildWorld(t, 8, 8, 7)
	src := rng.New(7, 1)
	hotspots := GenerateHotspots(sphere, result.Plates, DefaultParams(7), &src)

	for _, h := range hotspots {
		require.NotEmpty(t, h.Path)
		plate := sphere.Tiles[h.Path[0]].PlateID
		for _, tile := range h.Path {
			assert.Equal(t, plate, sphere.Tiles[tile].PlateID, "hotspot trace crossed a plate boundary")
		}
		assert.Len(t, h.Intensity, len(h.Path))
		assert.InDelta(t, 1.0, h.Intensity[0], 1e-9)
	}
}

func TestApplyVolcanismOnlyTagsCandidateTiles(t *testing.T) {
	sphere, _ := buildWorld(t, 8, 8, 11)
	src := rng.New(11, 2)
	volcanoes := ApplyVolcanism(sphere, DefaultDistributions(), &src)

	for _, v := range volcanoes {
		_, ok := candidateContext(&sphere.Tiles[v.Tile])
		assert.True(t, ok, "volcano placed on a non-candidate tile")
		assert.Equal(t, v.ID, sphere.Tiles[v.Tile].VolcanoID)
	}
}

func TestAssignRockTypesCoversEveryTile(t *testing.T) {
	sphere, _ := buildWorld(t, 6, 6, 3)
	src := rng.New(3, 3)
	AssignRockTypes(sphere, DefaultRockRules(), &src)

	for i := range sphere.Tiles {
		assert.NotEqual(t, topology.RockNone, sphere.Tiles[i].Rock, "tile %d left without a rock type", i)
	}
}

func TestStampShelvesShallowerNearCoastThanDeepTarget(t *testing.T) {
	sphere, _ := buildWorld(t, 10, 8, 11)
	src := rng.New(11, 5)
	StampShelves(sphere, DefaultParams(11), &src)

	found := false
	for i := range sphere.Tiles {
		tile := &sphere.Tiles[i]
		if tile.Feature != topology.FeatureShelf {
			continue
		}
		adjacentToLand := false
		for _, n := range sphere.Neighbors(topology.TileID(i)) {
			if sphere.Tiles[n].HasFlag(topology.FlagLand) {
				adjacentToLand = true
				break
			}
		}
		if !adjacentToLand {
			continue
		}
		found = true
		assert.Greater(t, float64(tile.Elevation), -250.0,
			"coastal shelf tile landed near the deep-water target instead of the shallow one")
	}
	assert.True(t, found, "expected at least one coastal shelf tile in this world")
}

func TestScatterAncientFeaturesOnlyOnContinentalLowland(t *testing.T) {
	sphere, _ := buildWorld(t, 8, 8, 5)
	params := DefaultParams(5)
	src := rng.New(5, 4)
	ScatterAncientFeatures(sphere, params, &src)

	for i := range sphere.Tiles {
		f := sphere.Tiles[i].Feature
		if f == topology.FeatureAncientOrogeny || f == topology.FeatureAncientUplift {
			assert.Equal(t, topology.CrustContinental, sphere.Tiles[i].Crust)
		}
	}
}
