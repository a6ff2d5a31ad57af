package features

import (
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// ancientElevationThreshold caps candidate tiles to low-relief continental
// interior, mirroring geological_processes.go's applyCratonStability gate
// (v.Height > 0.005, i.e. "stable" land that has sat above sea level, but
// here inverted to *below* a modest relief cap since ancient features are
// old, worn-down terrain rather than active uplift).
const ancientElevationThreshold = 1500

// ScatterAncientFeatures implements spec.md 4.6's ancient-feature pass:
// density proportional to planet area, scattering continental tiles under
// an elevation threshold and stamping a lightweight (low-amplitude)
// orogeny or a simple hill uplift. Grounded on
// geological_processes.go:applyCratonStability, generalized from a binary
// IsCraton flag to an actual stamped record plus a FlagFossil marker so
// downstream rock-type rules can see "old, stable" terrain the way
// spec.md 4.6's rock-rule table names it ("crust age, region kind").
func ScatterAncientFeatures(sphere *topology.Sphere, params Params, src *rng.Source) []kernel.OrogenyRecord {
	ancientSrc := src.Fork("ancient-features")
	neighbors := neighborAdapter(sphere)

	var candidates []int32
	for i := range sphere.Tiles {
		t := &sphere.Tiles[i]
		if t.Crust == topology.CrustContinental && t.HasFlag(topology.FlagLand) && t.Elevation < ancientElevationThreshold {
			candidates = append(candidates, int32(i))
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	n := sphere.TileCount()
	count := int(float64(n)*params.AncientDensityPerArea + 0.5)
	if count < 1 {
		count = 1
	}
	if count > len(candidates) {
		count = len(candidates)
	}

	field := make([]float64, n)
	for i := range field {
		field[i] = float64(sphere.Tiles[i].Elevation)
	}

	var records []kernel.OrogenyRecord
	nextID := int32(0)
	used := make(map[int32]bool)

	for k := 0; k < count; k++ {
		idx := ancientSrc.NextIntn(len(candidates))
		start := candidates[idx]
		if used[start] {
			continue
		}
		used[start] = true

		weathered := ancientSrc.NextF64() < 0.5
		along := map[int32]bool{start: true}
		for _, nb := range neighbors(start) {
			if used[nb] {
				continue
			}
			along[nb] = true
		}

		var layers []kernel.Layer
		var feature topology.FeatureKind
		if weathered {
			layers = []kernel.Layer{{Radius: 2, Action: kernel.ActionAdd, Target: 150}}
			feature = topology.FeatureAncientOrogeny
		} else {
			layers = []kernel.Layer{{Radius: 1, Action: kernel.ActionAdd, Target: 250}}
			feature = topology.FeatureAncientUplift
		}

		rec := kernel.StampOrogeny(nextID, -1, start, along, neighbors, layers, field, nil)
		nextID++
		records = append(records, rec)

		for t := range rec.Severity {
			if sphere.Tiles[t].Feature == topology.FeatureNone && sphere.Tiles[t].Crust == topology.CrustContinental {
				sphere.Tiles[t].Feature = feature
			}
			sphere.Tiles[t].SetFlag(topology.FlagFossil, true)
			sphere.Tiles[t].Elevation = float32(field[t])
			used[t] = true
		}
	}

	return records
}
