package features

import (
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// candidateContext classifies a tile into the volcanism context that
// applies to it, or reports none. Convergent boundary tiles take priority
// over a stale rift/hotspot tag (a tile can't be both at once in practice
// since boundary classification and hotspot tracing write disjoint
// fields, but convergent is checked first to match spec.md 4.6's listed
// order "convergent/hotspot/rift/old-orogeny").
func candidateContext(t *topology.Tile) (Context, bool) {
	switch {
	case t.Boundary == topology.BoundaryConvergent:
		return ContextConvergent, true
	case t.HotspotID >= 0:
		return ContextHotspot, true
	case t.Boundary == topology.BoundaryDivergent:
		return ContextRift, true
	case t.Feature == topology.FeatureAncientOrogeny || t.Feature == topology.FeatureAncientUplift:
		return ContextOldOrogeny, true
	default:
		return 0, false
	}
}

// pickType selects a VolcanoTypeWeight by cumulative-weight categorical
// draw (spec.md 4.6).
func pickType(types []VolcanoTypeWeight, roll float64) VolcanoTypeWeight {
	total := 0.0
	for _, tw := range types {
		total += tw.Weight
	}
	target := roll * total
	acc := 0.0
	for _, tw := range types {
		acc += tw.Weight
		if target <= acc {
			return tw
		}
	}
	return types[len(types)-1]
}

// ApplyVolcanism implements spec.md 4.6's volcano placement pass: iterate
// candidate tiles, look up the context distribution, accept with a spawn
// roll, pick a type by cumulative-weight categorical, sample relief
// uniformly within the type's range. Grounded on volcanism.go's
// applySubductionVolcanism/applyDivergentVolcanism (probability roll then
// uniform-range uplift), generalized from the teacher's per-tick
// probability (scaled by elapsed deltaYears) to a single deterministic
// per-tile roll since this pipeline has no simulated time axis.
func ApplyVolcanism(sphere *topology.Sphere, distributions map[Context]ContextDistribution, src *rng.Source) []Volcano {
	volcSrc := src.Fork("volcanism")

	var candidates []topology.TileID
	for i := range sphere.Tiles {
		if _, ok := candidateContext(&sphere.Tiles[i]); ok {
			candidates = append(candidates, topology.TileID(i))
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	var volcanoes []Volcano
	nextID := int32(0)

	for _, tileID := range candidates {
		ctx, ok := candidateContext(&sphere.Tiles[tileID])
		if !ok {
			continue
		}
		dist, ok := distributions[ctx]
		if !ok || len(dist.Types) == 0 {
			continue
		}
		if volcSrc.NextF64() >= dist.SpawnThreshold {
			continue
		}

		typeRoll := volcSrc.NextF64()
		tw := pickType(dist.Types, typeRoll)
		relief := volcSrc.NextRange(tw.MinHeight, tw.MaxHeight)

		v := Volcano{ID: nextID, Tile: tileID, Context: ctx, Type: tw.Type, Relief: relief}
		volcanoes = append(volcanoes, v)

		sphere.Tiles[tileID].VolcanoID = nextID
		sphere.Tiles[tileID].Elevation += float32(relief)
		if sphere.Tiles[tileID].Feature == topology.FeatureNone {
			sphere.Tiles[tileID].Feature = topology.FeatureHotspotVolcano
		}
		nextID++
	}

	return volcanoes
}
