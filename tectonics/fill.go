package tectonics

import (
	"fmt"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/noise"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// neighborAdapter exposes sphere neighbors to the kernel's int32-based
// NeighborFunc, since kernel stays topology-agnostic (see kernel/floodfill.go).
func neighborAdapter(sphere *topology.Sphere) kernel.NeighborFunc {
	return func(tile int32) []int32 {
		nbrs := sphere.Neighbors(topology.TileID(tile))
		out := make([]int32, len(nbrs))
		for i, n := range nbrs {
			out[i] = int32(n)
		}
		return out
	}
}

// MajorFill runs the per-plate fractal fill with Hamilton-quota
// distribution and decorrelated per-plate noise offsets (spec.md 4.5 step
// 2), writing PlateID directly onto sphere.Tiles. Validates full coverage
// and the minimum-plate-size bound N/(5K).
func MajorFill(sphere *topology.Sphere, seeds []topology.TileID, plates []Plate, src *rng.Source) (kernel.FractalFillResult, error) {
	n := sphere.TileCount()
	k := len(seeds)

	weights := make([]float64, k)
	offsets := make([]noise.Expr, k)
	for i := range seeds {
		weights[i] = plates[i].CrustFraction
		plateSrc := src.Fork(fmt.Sprintf("plate-offset-%d", i))
		offsets[i] = noise.NewFractalSource(int64(plateSrc.NextU64()), 4, 0.5, 2.0, 1.5)
	}

	kernelSeeds := make([]int32, k)
	for i, s := range seeds {
		kernelSeeds[i] = int32(s)
	}

	cfg := kernel.FractalFillConfig{
		TileCount: n,
		Neighbors: neighborAdapter(sphere),
		Seeds:     kernelSeeds,
		Weights:   weights,
		Total:     n,
		Score: func(tile, owner, distance int32) float64 {
			p := sphere.Tiles[tile].Pos
			noiseVal := offsets[owner].Eval(p.X(), p.Y(), p.Z())
			return noiseVal*0.5 - float64(distance)
		},
		NearestSeed: func(tile int32) int32 {
			p := sphere.Tiles[tile].Pos
			best := int32(0)
			bestDist := 1e18
			for i, s := range seeds {
				d := p.Sub(sphere.Tiles[s].Pos).Len()
				if d < bestDist {
					bestDist = d
					best = int32(i)
				}
			}
			return best
		},
	}

	result := kernel.FractalFill(cfg)

	for i, o := range result.Owner {
		sphere.Tiles[i].PlateID = o
	}
	for i := range plates {
		plates[i].TileCount = result.Claimed[i]
	}

	minSize := n / (5 * k)
	for i, c := range result.Claimed {
		if c < minSize {
			return result, fmt.Errorf("tectonics: plate %d has %d tiles, below minimum %d (N/(5K))", i, c, minSize)
		}
	}
	for _, o := range result.Owner {
		if o == -1 {
			return result, fmt.Errorf("tectonics: major fill left an unowned tile")
		}
	}

	return result, nil
}
