package features

import (
	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/tectonics"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// Result is the full output of one feature-generation run (spec.md 4.6
// step 9), handed to the orchestrator alongside the boundary-orogeny
// records the tectonic pipeline already produced.
type Result struct {
	Hotspots        []Hotspot
	Volcanoes       []Volcano
	AncientOrogenies []kernel.OrogenyRecord
}

// Run executes spec.md 4.5 step 9 in order: shelves, hotspots, ancient
// features, volcanism, rock types (first pass only — RefineWithClimate
// runs the second pass once the climate stage has populated
// rainfall/temperature).
func Run(sphere *topology.Sphere, plates []tectonics.Plate, params Params, src *rng.Source) Result {
	StampShelves(sphere, params, src)
	hotspots := GenerateHotspots(sphere, plates, params, src)
	ancient := ScatterAncientFeatures(sphere, params, src)
	volcanoes := ApplyVolcanism(sphere, DefaultDistributions(), src)
	AssignRockTypes(sphere, DefaultRockRules(), src)

	peakThreshold := 2500.0
	StampRockProvinces(sphere, peakThreshold, nil, src)

	return Result{Hotspots: hotspots, Volcanoes: volcanoes, AncientOrogenies: ancient}
}
