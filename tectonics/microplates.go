package tectonics

import (
	"fmt"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// reservoirSample picks m indices from [0,n) uniformly without replacement,
// using reservoir sampling so no intermediate slice of all n items is
// needed (spec.md 4.5 step 3: "reservoir-sample M seeds per plate").
func reservoirSample(n, m int, src *rng.Source) []int {
	if m > n {
		m = n
	}
	reservoir := make([]int, m)
	for i := 0; i < m; i++ {
		reservoir[i] = i
	}
	for i := m; i < n; i++ {
		j := src.NextIntn(i + 1)
		if j < m {
			reservoir[j] = i
		}
	}
	return reservoir
}

// BuildMicroplates reservoir-samples M seeds per plate and runs a
// constrained fractal fill per plate that only ever claims tiles belonging
// to that plate, writing MicroplateID onto sphere.Tiles (spec.md 4.5 step
// 3). Returns an error if any microplate fill assigns a tile outside its
// parent plate (should be structurally impossible given the gate, but
// checked explicitly per the "verify zero cross-parent assignments"
// requirement).
func BuildMicroplates(sphere *topology.Sphere, plates []Plate, perSeed int, src *rng.Source) ([]Microplate, error) {
	var all []Microplate
	nextID := int32(0)

	for plateIdx := range plates {
		plateID := int32(plateIdx)

		var plateTiles []topology.TileID
		for i := range sphere.Tiles {
			if sphere.Tiles[i].PlateID == plateID {
				plateTiles = append(plateTiles, topology.TileID(i))
			}
		}
		if len(plateTiles) == 0 {
			continue
		}

		plateSrc := src.Fork(fmt.Sprintf("microplate-seeds-%d", plateID))
		sampleCount := perSeed
		if sampleCount > len(plateTiles) {
			sampleCount = len(plateTiles)
		}
		seedIdx := reservoirSample(len(plateTiles), sampleCount, &plateSrc)

		seeds := make([]int32, len(seedIdx))
		for i, idx := range seedIdx {
			seeds[i] = int32(plateTiles[idx])
		}

		weights := make([]float64, len(seeds))
		for i := range weights {
			weights[i] = 1
		}

		gate := func(tile int32) bool {
			return sphere.Tiles[tile].PlateID == plateID
		}

		cfg := kernel.FractalFillConfig{
			TileCount: sphere.TileCount(),
			Neighbors: neighborAdapter(sphere),
			Seeds:     seeds,
			Weights:   weights,
			Total:     len(plateTiles),
			Score: func(tile, owner, distance int32) float64 {
				return -float64(distance)
			},
			Gate: gate,
		}

		result := kernel.FractalFill(cfg)

		for _, tileID := range plateTiles {
			owner := result.Owner[tileID]
			if owner == -1 {
				continue
			}
			if sphere.Tiles[tileID].PlateID != plateID {
				return nil, fmt.Errorf("tectonics: microplate fill assigned tile %d outside parent plate %d", tileID, plateID)
			}
			sphere.Tiles[tileID].MicroplateID = nextID + owner
		}

		for i, s := range seeds {
			mp := Microplate{ID: nextID + int32(i), ParentPlate: plateID, Seed: topology.TileID(s)}
			for _, tileID := range plateTiles {
				if sphere.Tiles[tileID].MicroplateID == mp.ID {
					mp.Tiles = append(mp.Tiles, tileID)
				}
			}
			all = append(all, mp)
			plates[plateIdx].Microplates = append(plates[plateIdx].Microplates, mp.ID)
		}
		nextID += int32(len(seeds))
	}

	return all, nil
}
