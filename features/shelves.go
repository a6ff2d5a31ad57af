package features

import (
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/noise"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// StampShelves implements spec.md 4.6's continental-shelf pass: a
// multi-layer stamp outward from coastline tiles, restricted to same-plate
// ocean neighbors, with three target-depth zones (~-100,-200,-500m) and a
// noise-masked irregular edge. Grounded on continents.go's
// applyFractalTerrain "continental shelf" branch (a -0.3..0 noise-band
// elevation target), generalized from a global noise threshold to a
// selector-and-stamp outward from the actual coastline the tectonic
// pipeline produced.
func StampShelves(sphere *topology.Sphere, params Params, src *rng.Source) {
	shelfSrc := src.Fork("shelves")
	edgeNoise := noise.NewFractalSource(int64(shelfSrc.NextU64()), 3, 0.5, 2.0, 6.0)

	n := sphere.TileCount()
	neighbors := neighborAdapter(sphere)

	var coastalOcean []int32
	for i := range sphere.Tiles {
		t := &sphere.Tiles[i]
		if t.Crust == topology.CrustContinental || t.HasFlag(topology.FlagLand) {
			continue
		}
		for _, nb := range sphere.Neighbors(topology.TileID(i)) {
			if sphere.Tiles[nb].HasFlag(topology.FlagLand) && sphere.Tiles[nb].PlateID == t.PlateID {
				coastalOcean = append(coastalOcean, int32(i))
				break
			}
		}
	}
	if len(coastalOcean) == 0 {
		return
	}
	sort.Slice(coastalOcean, func(i, j int) bool { return coastalOcean[i] < coastalOcean[j] })

	allow := func(tile int32) bool {
		t := &sphere.Tiles[tile]
		if t.HasFlag(topology.FlagLand) {
			return false
		}
		p := t.Pos
		mask := edgeNoise.Eval(p.X(), p.Y(), p.Z())
		return mask > -0.4
	}

	sel := kernel.AreaSelect(kernel.AreaSelectorConfig{
		Neighbors: neighbors,
		Seeds:     coastalOcean,
		MinStep:   6,
		MaxStep:   6,
		Allow:     allow,
	})

	field := make([]float64, n)
	for i := range field {
		field[i] = float64(sphere.Tiles[i].Elevation)
	}

	// Stamp applies layers in slice order, each pulling a tile's value
	// toward its own target by a strength that falls off with distance
	// (a full overwrite only at distance 0), so near the coast the layer
	// applied last has the strongest say. The deepest/widest zone
	// therefore goes first and the shallowest/narrowest last — otherwise the
	// radius-6 layer would dominate coastal tiles it has no business
	// touching last.
	layers := []kernel.Layer{
		{Radius: 6, Action: kernel.ActionSmoothstep, Target: params.ShelfDepths[2]},
		{Radius: 4, Action: kernel.ActionSmoothstep, Target: params.ShelfDepths[1]},
		{Radius: 2, Action: kernel.ActionSmoothstep, Target: params.ShelfDepths[0]},
	}
	kernel.Stamp(field, sel.Distance, layers, func(tile int32, bits uint32) {})

	for tile := range sel.Distance {
		if sphere.Tiles[tile].Feature == topology.FeatureNone {
			sphere.Tiles[tile].Feature = topology.FeatureShelf
		}
		sphere.Tiles[tile].Elevation = float32(field[tile])
	}
}
