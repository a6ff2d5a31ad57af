package climate

import (
	"math"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/noise"
)

// biotemperature clamps monthly mean temperatures to [0,30] C (Holdridge's
// convention: growth is assumed to halt outside that range) before
// averaging, per spec.md Glossary's "Holdridge: biotemperature".
func biotemperature(tempJan, tempJul float64) float64 {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 30 {
			return 30
		}
		return v
	}
	return (clamp(tempJan) + clamp(tempJul)) / 2
}

// potentialEvapotranspirationRatio is Holdridge's PET ratio: annual
// potential evapotranspiration (58.93 * biotemperature, his empirical
// constant) divided by annual precipitation in millimeters.
func potentialEvapotranspirationRatio(biotemp, annualPrecipMM float64) float64 {
	if annualPrecipMM <= 0 {
		return math.Inf(1)
	}
	pet := 58.93 * biotemp
	return pet / annualPrecipMM
}

// floraWeights is the fixed Holdridge-triangle-derived table spec.md 4.8
// names ("fixed 2-D life-zone table"): each life zone maps to a base
// flora-weight vector (forest, grass, shrub, desert), chosen by
// increasing aridity (PET ratio) and decreasing biotemperature, following
// the standard Holdridge life-zone chart's broad bands rather than its
// full hexagonal lattice.
type floraWeights struct {
	forest, grass, shrub, desert float32
}

func holdridgeFlora(biotemp, petRatio float64) floraWeights {
	switch {
	case petRatio >= 4:
		return floraWeights{desert: 1}
	case petRatio >= 2:
		if biotemp < 12 {
			return floraWeights{shrub: 0.6, desert: 0.4}
		}
		return floraWeights{shrub: 0.5, grass: 0.3, desert: 0.2}
	case petRatio >= 1:
		if biotemp < 6 {
			return floraWeights{shrub: 0.4, grass: 0.6}
		}
		return floraWeights{grass: 0.6, shrub: 0.4}
	case petRatio >= 0.5:
		if biotemp < 6 {
			return floraWeights{forest: 0.3, shrub: 0.3, grass: 0.4}
		}
		return floraWeights{forest: 0.6, grass: 0.4}
	default:
		if biotemp < 3 {
			return floraWeights{shrub: 0.5, grass: 0.5} // tundra: too cold for closed forest
		}
		return floraWeights{forest: 0.9, grass: 0.1}
	}
}

// holdridgeNoiseSource is forked once per pipeline run so flora-weight
// perturbation is reproducible (spec.md 4.8: "perturbed by noise and
// renormalized").
func holdridgeNoiseSource(baseSeed uint64) *noise.FractalSource {
	src := rng.New(baseSeed, 200)
	return noise.NewFractalSource(int64(src.NextU64()), 3, 0.5, 2.1, 4.0)
}

// ClassifyHoldridge writes t.Climate.Flora{Forest,Grass,Shrub,Desert}
// from the tile's sampled climate fields, perturbed by pos-seeded noise
// and renormalized to sum to 1.
func ClassifyHoldridge(t *tileAccessor, src *noise.FractalSource) {
	biotemp := biotemperature(float64(t.Climate.TempJan), float64(t.Climate.TempJul))
	annualPrecip := (float64(t.Climate.RainJan) + float64(t.Climate.RainJul)) / 2 * 12
	petRatio := potentialEvapotranspirationRatio(biotemp, annualPrecip)

	w := holdridgeFlora(biotemp, petRatio)

	n := src.Eval(t.Pos.X(), t.Pos.Y(), t.Pos.Z()) // in [-1,1]
	jitter := float32(0.15 * n)

	forest := clampNonNeg(w.forest + jitter)
	grass := clampNonNeg(w.grass - jitter*0.5)
	shrub := clampNonNeg(w.shrub + jitter*0.25)
	desert := clampNonNeg(w.desert - jitter*0.25)

	sum := forest + grass + shrub + desert
	if sum <= 0 {
		forest, grass, shrub, desert, sum = 0, 1, 0, 0, 1
	}
	t.Climate.FloraForest = forest / sum
	t.Climate.FloraGrass = grass / sum
	t.Climate.FloraShrub = shrub / sum
	t.Climate.FloraDesert = desert / sum
}

func clampNonNeg(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}
