package hydrology

import (
	"math"
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/noise"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// GenerateFjords implements spec.md 4.7's fjord pass: trace inland paths
// from randomly selected high-latitude coastal candidates, applying a
// tapered U-valley profile (elevation lowered most at the path center,
// less at its shoulder ring) and converting path tiles to water (clearing
// FlagLand so the final waterbody pass merges them into the adjoining
// ocean). Grounded on erosion.go's applyGlacialErosion, which already ties
// erosion intensity to polarFactor (|Y| of position) the way this pass
// ties candidate selection to latitude, generalized from a uniform
// elevation-lowering pass into a directed inland trace.
func GenerateFjords(sphere *topology.Sphere, params Params, src *rng.Source) {
	fjordSrc := src.Fork("fjords")

	var candidates []topology.TileID
	for i := range sphere.Tiles {
		t := &sphere.Tiles[i]
		if !t.HasFlag(topology.FlagLand) {
			continue
		}
		if math.Abs(t.LatDeg) < params.FjordCandidateLatDeg {
			continue
		}
		for _, n := range sphere.Neighbors(topology.TileID(i)) {
			if !sphere.Tiles[n].HasFlag(topology.FlagLand) {
				candidates = append(candidates, topology.TileID(i))
				break
			}
		}
	}
	if len(candidates) == 0 {
		return
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	fjordCount := len(candidates) / 6
	if fjordCount < 1 {
		fjordCount = 1
	}

	for f := 0; f < fjordCount; f++ {
		seed := candidates[fjordSrc.NextIntn(len(candidates))]
		path := []topology.TileID{seed}
		current := seed
		visited := map[topology.TileID]bool{seed: true}

		for step := 0; step < params.FjordMaxLength; step++ {
			var best topology.TileID = -1
			bestElev := float32(math.Inf(1))
			for _, n := range sphere.Neighbors(current) {
				if visited[n] || !sphere.Tiles[n].HasFlag(topology.FlagLand) {
					continue
				}
				if sphere.Tiles[n].Elevation < bestElev {
					bestElev = sphere.Tiles[n].Elevation
					best = n
				}
			}
			if best == -1 {
				break
			}
			visited[best] = true
			path = append(path, best)
			current = best
		}

		for i, tile := range path {
			taper := 1.0 - float64(i)/float64(maxI(1, len(path)))
			sphere.Tiles[tile].Elevation -= float32(300 * taper)
			sphere.Tiles[tile].SetFlag(topology.FlagLand, false)
			for _, n := range sphere.Neighbors(tile) {
				if sphere.Tiles[n].HasFlag(topology.FlagLand) {
					sphere.Tiles[n].Elevation -= float32(80 * taper)
				}
			}
		}
	}
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// GenerateGlaciers runs params.GlacierPasses passes (4 when unset), each
// with a latitude and elevation threshold loosened by a fixed step per
// pass. A pass flags every not-yet-glaciated tile that lies poleward of its
// latitude threshold, is water or land at or above its elevation
// threshold, and whose noise mask reaches a pass-dependent cutoff; each
// such tile gets FlagHasGlacier and added IceThickness. Every tile is
// tested on its own: no flood fill grows out from the flagged tiles, and
// neighbors play no part. Grounded on erosion.go's applyGlacialErosion
// polar-factor gating, generalized from a single elevation-lowering sweep
// to a multi-pass loosening schedule.
func GenerateGlaciers(sphere *topology.Sphere, params Params, src *rng.Source) {
	glacierSrc := src.Fork("glaciers")
	glacierNoise := noise.NewFractalSource(int64(glacierSrc.NextU64()), 3, 0.5, 2.0, 10.0)

	passes := params.GlacierPasses
	if passes <= 0 {
		passes = 4
	}

	for pass := 0; pass < passes; pass++ {
		latThreshold := params.GlacierBaseLatDeg - float64(pass)*params.GlacierLatLoosenPerPass
		elevThreshold := params.GlacierBaseElevation - float64(pass)*params.GlacierElevLoosenPerPass

		var frontier []topology.TileID
		for i := range sphere.Tiles {
			t := &sphere.Tiles[i]
			if t.HasFlag(topology.FlagHasGlacier) {
				continue
			}
			if math.Abs(t.LatDeg) < latThreshold {
				continue
			}
			if t.HasFlag(topology.FlagLand) && float64(t.Elevation) < elevThreshold {
				continue
			}
			p := t.Pos
			mask := glacierNoise.Eval(p.X(), p.Y(), p.Z())
			if mask < -0.2+float64(pass)*0.05 {
				continue
			}
			frontier = append(frontier, topology.TileID(i))
		}
		sort.Slice(frontier, func(i, j int) bool { return frontier[i] < frontier[j] })

		for _, t := range frontier {
			sphere.Tiles[t].SetFlag(topology.FlagHasGlacier, true)
			sphere.Tiles[t].IceThickness += float32(200 - pass*30)
		}
	}
}
