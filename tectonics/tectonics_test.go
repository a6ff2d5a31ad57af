package tectonics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

func buildTestSphere(t *testing.T, n int) *topology.Sphere {
	t.Helper()
	sphere, err := topology.Build(n)
	require.NoError(t, err)
	return sphere
}

func TestSeedPlatesRespectsMinHopDistance(t *testing.T) {
	sphere := buildTestSphere(t, 6)
	src := rng.New(42, 0)

	seeds, err := SeedPlates(sphere, 8, 3, &src)
	require.NoError(t, err)
	assert.Len(t, seeds, 8)

	for i, a := range seeds {
		forbidden := withinHops(sphere, a, 2) // minHopDistance-1
		for j, b := range seeds {
			if i == j {
				continue
			}
			assert.False(t, forbidden[b], "seed %d is too close to seed %d", b, a)
		}
	}
}

func TestAssignKindsAndTiersRespectsRatio(t *testing.T) {
	plates := make([]Plate, 10)
	src := rng.New(1, 0)
	AssignKindsAndTiers(plates, 0.4, &src)

	continental := 0
	for _, p := range plates {
		if p.Kind == topology.CrustContinental {
			continental++
		}
		assert.Less(t, p.Tier, len(tierCrustFractions))
	}
	assert.Equal(t, 4, continental)
}

func TestMajorFillCoversEveryTile(t *testing.T) {
	sphere := buildTestSphere(t, 5)
	src := rng.New(7, 0)

	seedSrc := src.Fork("seed")
	seeds, err := SeedPlates(sphere, 6, 3, &seedSrc)
	require.NoError(t, err)

	plates := make([]Plate, len(seeds))
	for i, s := range seeds {
		plates[i] = Plate{ID: int32(i), Seed: s, CrustFraction: 1}
	}

	fillSrc := src.Fork("fill")
	result, err := MajorFill(sphere, seeds, plates, &fillSrc)
	require.NoError(t, err)

	for _, o := range result.Owner {
		assert.NotEqual(t, int32(-1), o)
	}
	for i := range sphere.Tiles {
		assert.GreaterOrEqual(t, sphere.Tiles[i].PlateID, int32(0))
	}
}

func TestBuildMicroplatesNeverCrossesParentPlate(t *testing.T) {
	sphere := buildTestSphere(t, 5)
	src := rng.New(9, 0)

	seedSrc := src.Fork("seed")
	seeds, err := SeedPlates(sphere, 5, 3, &seedSrc)
	require.NoError(t, err)

	plates := make([]Plate, len(seeds))
	for i, s := range seeds {
		plates[i] = Plate{ID: int32(i), Seed: s, CrustFraction: 1}
	}

	fillSrc := src.Fork("fill")
	_, err = MajorFill(sphere, seeds, plates, &fillSrc)
	require.NoError(t, err)

	microSrc := src.Fork("micro")
	microplates, err := BuildMicroplates(sphere, plates, 2, &microSrc)
	require.NoError(t, err)

	parentOf := map[int32]int32{}
	for _, mp := range microplates {
		parentOf[mp.ID] = mp.ParentPlate
	}

	for i := range sphere.Tiles {
		mp := sphere.Tiles[i].MicroplateID
		if mp < 0 {
			continue
		}
		assert.Equal(t, sphere.Tiles[i].PlateID, parentOf[mp])
	}
}

func TestClassifyBoundariesOnlyFlagsCrossPlateTiles(t *testing.T) {
	sphere := buildTestSphere(t, 5)
	src := rng.New(3, 0)

	seedSrc := src.Fork("seed")
	seeds, err := SeedPlates(sphere, 6, 3, &seedSrc)
	require.NoError(t, err)

	plates := make([]Plate, len(seeds))
	for i, s := range seeds {
		plates[i] = Plate{ID: int32(i), Seed: s, CrustFraction: 1}
	}

	fillSrc := src.Fork("fill")
	_, err = MajorFill(sphere, seeds, plates, &fillSrc)
	require.NoError(t, err)

	velSrc := src.Fork("vel")
	AssignVelocities(sphere, plates, &velSrc)

	boundaryTiles := ClassifyBoundaries(sphere, plates, 0.525, 0.25)

	total := 0
	for _, tiles := range boundaryTiles {
		total += len(tiles)
	}
	assert.Greater(t, total, 0)

	for i := range sphere.Tiles {
		if !sphere.Tiles[i].HasFlag(topology.FlagBoundary) {
			assert.Equal(t, topology.BoundaryNone, sphere.Tiles[i].Boundary)
			continue
		}
		hasCrossPlateNeighbor := false
		for _, n := range sphere.Neighbors(topology.TileID(i)) {
			if sphere.Tiles[n].PlateID != sphere.Tiles[i].PlateID {
				hasCrossPlateNeighbor = true
			}
		}
		assert.True(t, hasCrossPlateNeighbor)
	}
}

func TestClassifyBoundariesConvergentWhenPlatesCloseTogether(t *testing.T) {
	sphere := buildTestSphere(t, 5)

	tile := topology.TileID(0)
	neighbor := sphere.Neighbors(tile)[0]

	for i := range sphere.Tiles {
		sphere.Tiles[i].PlateID = 0
	}
	sphere.Tiles[neighbor].PlateID = 1

	// Own plate's relative velocity points straight at the neighbor tile,
	// i.e. the plates are closing the gap between them — physically a
	// convergent boundary, not a divergent one.
	direction := sphere.Tiles[neighbor].Pos.Sub(sphere.Tiles[tile].Pos).Normalize()
	plates := []Plate{
		{ID: 0, Velocity: direction.Mul(0.5)},
		{ID: 1, Velocity: mgl64.Vec3{}},
	}

	ClassifyBoundaries(sphere, plates, 0.525, 0.25)
	assert.Equal(t, topology.BoundaryConvergent, sphere.Tiles[tile].Boundary,
		"plates moving toward each other must classify as convergent, not divergent")
}

func TestAssignCrustAgeIsMonotonicAlongSamePlatePath(t *testing.T) {
	sphere := buildTestSphere(t, 5)
	src := rng.New(11, 0)

	seedSrc := src.Fork("seed")
	seeds, err := SeedPlates(sphere, 5, 3, &seedSrc)
	require.NoError(t, err)

	plates := make([]Plate, len(seeds))
	for i, s := range seeds {
		plates[i] = Plate{ID: int32(i), Seed: s, CrustFraction: 1}
	}

	fillSrc := src.Fork("fill")
	_, err = MajorFill(sphere, seeds, plates, &fillSrc)
	require.NoError(t, err)

	velSrc := src.Fork("vel")
	AssignVelocities(sphere, plates, &velSrc)
	ClassifyBoundaries(sphere, plates, 0.525, 0.25)

	crustSrc := src.Fork("crust")
	AssignCrustAge(sphere, 2.5, &crustSrc)

	for i := range sphere.Tiles {
		assert.GreaterOrEqual(t, sphere.Tiles[i].CrustAge, float32(0))
		assert.LessOrEqual(t, sphere.Tiles[i].CrustAge, float32(1.0))

		// A tile aged by propagation (neither a divergent source nor
		// clamped) has a same-plate neighbor that is younger than itself.
		age := sphere.Tiles[i].CrustAge
		if age <= 0 || age >= 1 {
			continue
		}
		younger := false
		for _, n := range sphere.Neighbors(topology.TileID(i)) {
			if sphere.Tiles[n].PlateID == sphere.Tiles[i].PlateID && sphere.Tiles[n].CrustAge < age {
				younger = true
			}
		}
		assert.True(t, younger, "tile %d has no younger same-plate neighbor", i)
	}
}

func TestRunProducesFullPlateCoverage(t *testing.T) {
	sphere := buildTestSphere(t, 6)
	params := DefaultParams(42, 8, 0.4)
	params.MinSeedHopDistance = 2

	result, records, err := Run(sphere, params)
	require.NoError(t, err)
	assert.Len(t, result.Plates, 8)

	for i := range sphere.Tiles {
		assert.GreaterOrEqual(t, sphere.Tiles[i].PlateID, int32(0))
		assert.Less(t, sphere.Tiles[i].PlateID, int32(8))
	}

	_ = records
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	params := DefaultParams(99, 6, 0.5)
	params.MinSeedHopDistance = 2

	sphereA := buildTestSphere(t, 5)
	resultA, _, err := Run(sphereA, params)
	require.NoError(t, err)

	sphereB := buildTestSphere(t, 5)
	resultB, _, err := Run(sphereB, params)
	require.NoError(t, err)

	assert.Equal(t, len(resultA.Plates), len(resultB.Plates))
	for i := range sphereA.Tiles {
		assert.Equal(t, sphereA.Tiles[i].PlateID, sphereB.Tiles[i].PlateID)
		assert.Equal(t, sphereA.Tiles[i].Elevation, sphereB.Tiles[i].Elevation)
	}
}
