// Package features implements spec.md 4.6: hotspot tracing and volcano
// stamping, continental shelves, ancient (weathered) orogenies, and the
// multi-pass rock-type assignment that runs after the tectonic pipeline's
// boundary-feature stamping. Grounded on the teacher's
// geological_processes.go (applyAdvancedHotspotVolcanism, applyCratonStability)
// and volcanism.go's spawn-roll + categorical type selection, generalized
// from the teacher's per-tick mutation loop into the tectonic pipeline's
// one-shot stamp-and-record model.
package features

import (
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// VolcanoType mirrors the teacher's context-specific volcano distributions
// (subduction-arc andesite/rhyolite stratovolcanoes, divergent-ridge
// basaltic pillow volcanoes, hotspot shield volcanoes).
type VolcanoType uint8

const (
	VolcanoStrato VolcanoType = iota
	VolcanoShield
	VolcanoCinderCone
	VolcanoCaldera
	VolcanoPillowBasalt
)

// VolcanoTypeWeight is one categorical-distribution entry for a volcano
// context (spec.md 4.6: "pick type by cumulative-weight categorical").
type VolcanoTypeWeight struct {
	Type       VolcanoType
	Weight     float64
	MinHeight  float64 // parameter range sampled uniformly within, meters of added relief
	MaxHeight  float64
}

// Context is a volcanism candidate context: convergent, hotspot, rift, or
// old-orogeny tiles each carry a distinct spawn threshold and type table
// (spec.md 4.6).
type Context uint8

const (
	ContextConvergent Context = iota
	ContextHotspot
	ContextRift
	ContextOldOrogeny
)

// ContextDistribution is the {spawn threshold, type weights} pair spec.md
// 4.6 names per context.
type ContextDistribution struct {
	SpawnThreshold float64 // roll < threshold spawns a volcano
	Types          []VolcanoTypeWeight
}

// DefaultDistributions returns the teacher-grounded per-context spawn
// tables: volcanism.go's applySubductionVolcanism used prob ~0.005,
// applyDivergentVolcanism ~0.02, applyHotspotVolcanism ~0.03 per candidate
// tile per pass; this module runs one pass, so thresholds are scaled up
// accordingly to still produce a visually plausible arc/ridge/chain density
// at tile (not per-tick) granularity.
func DefaultDistributions() map[Context]ContextDistribution {
	return map[Context]ContextDistribution{
		ContextConvergent: {
			SpawnThreshold: 0.12,
			Types: []VolcanoTypeWeight{
				{Type: VolcanoStrato, Weight: 0.7, MinHeight: 800, MaxHeight: 2500},
				{Type: VolcanoCaldera, Weight: 0.3, MinHeight: 300, MaxHeight: 900},
			},
		},
		ContextRift: {
			SpawnThreshold: 0.2,
			Types: []VolcanoTypeWeight{
				{Type: VolcanoPillowBasalt, Weight: 0.85, MinHeight: 100, MaxHeight: 600},
				{Type: VolcanoCinderCone, Weight: 0.15, MinHeight: 50, MaxHeight: 250},
			},
		},
		ContextHotspot: {
			SpawnThreshold: 0.6,
			Types: []VolcanoTypeWeight{
				{Type: VolcanoShield, Weight: 1.0, MinHeight: 1000, MaxHeight: 4000},
			},
		},
		ContextOldOrogeny: {
			SpawnThreshold: 0.05,
			Types: []VolcanoTypeWeight{
				{Type: VolcanoCinderCone, Weight: 1.0, MinHeight: 100, MaxHeight: 400},
			},
		},
	}
}

// Hotspot is a slot-map entry for a mantle-plume trace: a chain of tiles
// stepped from an oceanic seed, each with a linearly-decaying intensity
// from newest to oldest (spec.md 3, 4.6).
type Hotspot struct {
	ID        int32
	Seed      topology.TileID
	Path      []topology.TileID
	Intensity []float64 // parallel to Path, newest (Path[0]) = 1.0 decaying to oldest
}

// Volcano is a slot-map entry referenced by Tile.VolcanoID.
type Volcano struct {
	ID      int32
	Tile    topology.TileID
	Context Context
	Type    VolcanoType
	Relief  float64 // meters added to Elevation
}

// Params configures feature generation (spec.md 6).
type Params struct {
	BaseSeed            uint64
	HotspotsPerAreaUnit float64 // count ~ planet area; area unit = tile count here
	HotspotMaxSteps     int
	ShelfDepths         [3]float64 // target depths, default -100,-200,-500
	AncientDensityPerArea float64
}

// DefaultParams returns spec.md 4.6's documented defaults.
func DefaultParams(baseSeed uint64) Params {
	return Params{
		BaseSeed:              baseSeed,
		HotspotsPerAreaUnit:   1.0 / 2500.0,
		HotspotMaxSteps:       14,
		ShelfDepths:           [3]float64{-100, -200, -500},
		AncientDensityPerArea: 1.0 / 4000.0,
	}
}

// neighborAdapter mirrors tectonics.neighborAdapter; features stays
// topology-aware (unlike kernel) but still hands the kernel the
// int32-indexed adapter it expects.
func neighborAdapter(sphere *topology.Sphere) func(int32) []int32 {
	return func(tile int32) []int32 {
		nbrs := sphere.Neighbors(topology.TileID(tile))
		out := make([]int32, len(nbrs))
		for i, n := range nbrs {
			out[i] = int32(n)
		}
		return out
	}
}
