package climate

import "github.com/gomgom50/aethelgard-worldgen/topology"

// Biome ids (spec.md Glossary: "BiomeID: uint16"). Kept as a small
// explicit enum rather than a generated table, matching the scale of
// rules below.
const (
	BiomeOcean uint16 = iota
	BiomeIceSheet
	BiomeTundra
	BiomeTaiga
	BiomeTemperateForest
	BiomeTemperateGrassland
	BiomeTropicalRainforest
	BiomeTropicalSavanna
	BiomeDesert
	BiomeShrubland
	BiomeMediterranean
	BiomeMontane
)

// BiomeRule is one priority-ordered entry in the biome matcher (same
// first-match shape as features.RockRule, generalized from rock
// properties to the full climate+elevation tile state).
type BiomeRule struct {
	Name    string
	Match   func(t *topology.Tile) bool
	Biome   uint16
	Variant func(t *topology.Tile) uint8
}

func variantFromFlora(t *topology.Tile) uint8 {
	// Pick the dominant flora weight as a coarse sub-variant index so two
	// tiles in the same biome with different flora mixes render
	// differently (spec.md Glossary: "Variant: uint8").
	best := uint8(0)
	bestW := t.Climate.FloraForest
	if t.Climate.FloraGrass > bestW {
		best, bestW = 1, t.Climate.FloraGrass
	}
	if t.Climate.FloraShrub > bestW {
		best, bestW = 2, t.Climate.FloraShrub
	}
	if t.Climate.FloraDesert > bestW {
		best, bestW = 3, t.Climate.FloraDesert
	}
	return best
}

// DefaultBiomeRules returns the priority-ordered rule table spec.md 4.8
// calls for: first match wins, water and elevation-driven montane
// overrides first, then Köppen-driven biomes.
func DefaultBiomeRules() []BiomeRule {
	isGroup := func(lo, hi byte) func(*topology.Tile) bool {
		return func(t *topology.Tile) bool {
			return t.Climate.Koppen >= lo && t.Climate.Koppen <= hi
		}
	}
	return []BiomeRule{
		{
			Name:  "ocean",
			Match: func(t *topology.Tile) bool { return !t.HasFlag(topology.FlagLand) },
			Biome: BiomeOcean,
		},
		{
			Name:  "ice-cap",
			Match: func(t *topology.Tile) bool { return t.Climate.Koppen == KoppenIceCap },
			Biome: BiomeIceSheet,
		},
		{
			Name:    "montane",
			Match:   func(t *topology.Tile) bool { return t.HasFlag(topology.FlagLand) && t.Elevation > 2800 },
			Biome:   BiomeMontane,
			Variant: variantFromFlora,
		},
		{
			Name:    "tundra",
			Match:   isGroup(KoppenTundra, KoppenTundra),
			Biome:   BiomeTundra,
			Variant: variantFromFlora,
		},
		{
			Name:    "subarctic-taiga",
			Match:   isGroup(KoppenSubarctic, KoppenSubarctic),
			Biome:   BiomeTaiga,
			Variant: variantFromFlora,
		},
		{
			Name:    "continental-cold",
			Match:   isGroup(KoppenHumidContinentalCold, KoppenHumidContinentalCold),
			Biome:   BiomeTaiga,
			Variant: variantFromFlora,
		},
		{
			Name:    "continental-warm",
			Match:   isGroup(KoppenHumidContinentalWarm, KoppenHumidContinentalWarm),
			Biome:   BiomeTemperateForest,
			Variant: variantFromFlora,
		},
		{
			Name:    "oceanic",
			Match:   isGroup(KoppenOceanic, KoppenOceanic),
			Biome:   BiomeTemperateForest,
			Variant: variantFromFlora,
		},
		{
			Name:    "humid-subtropical",
			Match:   isGroup(KoppenHumidSubtropical, KoppenHumidSubtropical),
			Biome:   BiomeTemperateForest,
			Variant: variantFromFlora,
		},
		{
			Name:    "mediterranean",
			Match:   isGroup(KoppenMediterranean, KoppenMediterranean),
			Biome:   BiomeMediterranean,
			Variant: variantFromFlora,
		},
		{
			Name:    "steppe",
			Match:   isGroup(KoppenSteppe, KoppenSteppe),
			Biome:   BiomeTemperateGrassland,
			Variant: variantFromFlora,
		},
		{
			Name:    "desert",
			Match:   isGroup(KoppenDesert, KoppenDesert),
			Biome:   BiomeDesert,
			Variant: variantFromFlora,
		},
		{
			Name:    "savanna",
			Match:   isGroup(KoppenTropicalSavanna, KoppenTropicalSavanna),
			Biome:   BiomeTropicalSavanna,
			Variant: variantFromFlora,
		},
		{
			Name:    "monsoon",
			Match:   isGroup(KoppenTropicalMonsoon, KoppenTropicalMonsoon),
			Biome:   BiomeTropicalRainforest,
			Variant: variantFromFlora,
		},
		{
			Name:    "rainforest",
			Match:   isGroup(KoppenTropicalRainforest, KoppenTropicalRainforest),
			Biome:   BiomeTropicalRainforest,
			Variant: variantFromFlora,
		},
		{
			Name:    "shrubland-fallback",
			Match:   func(t *topology.Tile) bool { return true },
			Biome:   BiomeShrubland,
			Variant: variantFromFlora,
		},
	}
}

// ClassifyBiome evaluates rules in order and writes the first match's
// BiomeID/Variant into t.Climate.
func ClassifyBiome(t *topology.Tile, rules []BiomeRule) {
	for _, r := range rules {
		if r.Match(t) {
			t.Climate.BiomeID = r.Biome
			if r.Variant != nil {
				t.Climate.Variant = r.Variant(t)
			}
			return
		}
	}
}
