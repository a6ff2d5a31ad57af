package hydrology

import (
	"math"
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/noise"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// GenerateLakes implements spec.md 4.7's lake pass: from every tile with a
// positive lake-driver and no ice, run a fractal flood fill sized
// ceil(driver/scale), marking claimed tiles as water (FlagHasLake) and
// setting HasRiverFlag false since a lake tile is a terminus, not a
// channel. Final waterbody ids are assigned later by AssignWaterbodies, so
// this pass only marks which tiles are lake water. Grounded on the
// kernel's FractalFill (spec.md 4.3), run once per lake-driver seed since
// each seed is an independent basin rather than a shared quota pool.
func GenerateLakes(sphere *topology.Sphere, params Params, src *rng.Source) {
	lakeSrc := src.Fork("lakes")
	lakeNoise := noise.NewFractalSource(int64(lakeSrc.NextU64()), 3, 0.5, 2.0, 8.0)
	neighbors := neighborAdapter(sphere)
	n := sphere.TileCount()

	var seeds []int32
	for i := range sphere.Tiles {
		if sphere.Tiles[i].LakeDriver > 0 && sphere.Tiles[i].IceThickness == 0 {
			seeds = append(seeds, int32(i))
		}
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })

	claimedGlobally := make([]bool, n)

	for _, seed := range seeds {
		if claimedGlobally[seed] {
			continue
		}
		target := int(math.Ceil(float64(sphere.Tiles[seed].LakeDriver) / params.LakeSizeScale))
		if target < 1 {
			target = 1
		}

		gate := func(tile int32) bool {
			return !claimedGlobally[tile] && !sphere.Tiles[tile].HasFlag(topology.FlagHasGlacier)
		}

		cfg := kernel.FractalFillConfig{
			TileCount: n,
			Neighbors: neighbors,
			Seeds:     []int32{seed},
			Weights:   []float64{1},
			Total:     target,
			Gate:      gate,
			Score: func(tile, owner, distance int32) float64 {
				p := sphere.Tiles[tile].Pos
				return lakeNoise.Eval(p.X(), p.Y(), p.Z())*0.5 - float64(distance)
			},
		}

		result := kernel.FractalFill(cfg)
		for tile, owner := range result.Owner {
			if owner == -1 {
				continue
			}
			claimedGlobally[tile] = true
			sphere.Tiles[tile].SetFlag(topology.FlagHasLake, true)
			sphere.Tiles[tile].HasRiverFlag = false
		}
	}
}
