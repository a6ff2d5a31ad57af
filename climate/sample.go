package climate

import (
	"math"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/noise"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// noiseFieldOffsets is the fixed seed-offset table spec.md 4.8 step 6
// names ("seed offsets from a fixed table"): one offset per synthesized
// field so temperature and rainfall noise are decorrelated from each
// other and from pass to pass.
var noiseFieldOffsets = [4]int64{1013, 7919, 31337, 52361}

// latitudeBaseline returns a smooth equator-to-pole temperature baseline
// in degrees C, linearly interpolated between params.BaselineEquatorC and
// params.BaselinePoleC by |lat|/90.
func latitudeBaseline(latDeg float64, params Params) float64 {
	t := math.Abs(latDeg) / 90
	return params.BaselineEquatorC + (params.BaselinePoleC-params.BaselineEquatorC)*t
}

// PostProcess implements spec.md 4.8 step 6: sample per-cell noise fields
// for temperature and rainfall, combine with the latitude baseline, a
// lapse-rate correction from the cell's average elevation, an
// ocean-influence factor exp(-distance_to_sea/falloff), and a
// continentality modulation of seasonal amplitude (July-January swing
// widens with higher sweep-averaged inlandness). pass distinguishes the
// two calls Run makes: pass 0 uses a noise amplitude of 4, any later pass
// uses 7 with differently seeded noise sources. Every call assigns the
// cell's temperature and rainfall fields afresh, so the result of an
// earlier pass is replaced, not added to.
func PostProcess(grid *Grid, params Params, baseSeed uint64, pass int) {
	src := rng.New(baseSeed, uint32(100+pass))
	var sources [4]*noise.FractalSource
	for i, offset := range noiseFieldOffsets {
		seed := int64(src.NextU64()) ^ offset ^ int64(pass)*7
		sources[i] = noise.NewFractalSource(seed, 4, 0.5, 2.0, 2.5)
	}

	noiseAmp := 4.0
	if pass > 0 {
		noiseAmp = 7.0
	}

	g := grid.G
	for y := 0; y < g; y++ {
		latDeg := (float64(y)+0.5)/float64(g)*180 - 90
		for x := 0; x < g; x++ {
			lonDeg := (float64(x)+0.5)/float64(g)*360 - 180
			cell := grid.At(x, y)

			pos := topology.GeoToCartesian(latDeg, lonDeg)
			tempNoise := sources[0].Eval(pos.X(), pos.Y(), pos.Z()) * noiseAmp
			rainNoise := sources[1].Eval(pos.X(), pos.Y(), pos.Z())
			seasonNoiseJan := sources[2].Eval(pos.X(), pos.Y(), pos.Z()) * noiseAmp * 0.5
			seasonNoiseJul := sources[3].Eval(pos.X(), pos.Y(), pos.Z()) * noiseAmp * 0.5

			baseline := latitudeBaseline(latDeg, params)
			lapse := cell.AvgElevation() / 1000 * params.LapseRatePerKm
			oceanInfluence := math.Exp(-cell.DistToSea / (params.OceanFalloffKm / 1000))

			inland := (cell.Sweep[0] + cell.Sweep[1] + cell.Sweep[2] + cell.Sweep[3]) / 4
			seasonalAmplitude := 4 + inland*20 // wider swing far from the sea

			tempMean := baseline - lapse + tempNoise*(1-oceanInfluence*0.5)
			cell.TempJan = tempMean - seasonalAmplitude*signedHemisphere(latDeg) + seasonNoiseJan
			cell.TempJul = tempMean + seasonalAmplitude*signedHemisphere(latDeg) + seasonNoiseJul

			rainBase := 1200*oceanInfluence + 300*(1-math.Abs(latDeg)/90) - inland*400
			rainSeasonality := 200 * (1 - oceanInfluence)
			rain := rainBase + rainNoise*300
			if rain < 0 {
				rain = 0
			}
			cell.RainJan = math.Max(0, rain-rainSeasonality*signedHemisphere(latDeg))
			cell.RainJul = math.Max(0, rain+rainSeasonality*signedHemisphere(latDeg))
		}
	}
}

// signedHemisphere returns +1 in the northern hemisphere, -1 in the
// southern, so July/January asymmetry flips naturally across the equator.
func signedHemisphere(latDeg float64) float64 {
	if latDeg < 0 {
		return -1
	}
	return 1
}

// SampleTile bilinearly samples the grid's Jan/Jul temperature and
// rainfall fields into a tile's Climate struct (spec.md 4.8's bilinear
// sampling contract, spec.md 8 property 10).
func SampleTile(grid *Grid, t *topology.Tile) {
	x0, y0, x1, y1, w00, w10, w01, w11 := grid.BilinearWeights(t.LatDeg, t.LonDeg)
	c00, c10, c01, c11 := grid.At(x0, y0), grid.At(x1, y0), grid.At(x0, y1), grid.At(x1, y1)

	t.Climate.TempJan = float32(w00*c00.TempJan + w10*c10.TempJan + w01*c01.TempJan + w11*c11.TempJan)
	t.Climate.TempJul = float32(w00*c00.TempJul + w10*c10.TempJul + w01*c01.TempJul + w11*c11.TempJul)
	t.Climate.RainJan = float32(w00*c00.RainJan + w10*c10.RainJan + w01*c01.RainJan + w11*c11.RainJan)
	t.Climate.RainJul = float32(w00*c00.RainJul + w10*c10.RainJul + w01*c01.RainJul + w11*c11.RainJul)
}
