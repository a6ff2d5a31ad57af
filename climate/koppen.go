package climate

// Köppen group/subtype codes (spec.md Glossary: "Koppen: byte code";
// packed two nibbles, group in the high nibble, subtype in the low
// nibble, 0 reserved for "unclassified").
const (
	koppenGroupTropical    = 1 << 4
	koppenGroupArid        = 2 << 4
	koppenGroupTemperate   = 3 << 4
	koppenGroupContinental = 4 << 4
	koppenGroupPolar       = 5 << 4
)

const (
	KoppenTropicalRainforest byte = koppenGroupTropical | 1
	KoppenTropicalMonsoon    byte = koppenGroupTropical | 2
	KoppenTropicalSavanna    byte = koppenGroupTropical | 3

	KoppenDesert byte = koppenGroupArid | 1
	KoppenSteppe byte = koppenGroupArid | 2

	KoppenMediterranean    byte = koppenGroupTemperate | 1
	KoppenHumidSubtropical byte = koppenGroupTemperate | 2
	KoppenOceanic          byte = koppenGroupTemperate | 3

	KoppenHumidContinentalWarm byte = koppenGroupContinental | 1
	KoppenHumidContinentalCold byte = koppenGroupContinental | 2
	KoppenSubarctic            byte = koppenGroupContinental | 3

	KoppenTundra byte = koppenGroupPolar | 1
	KoppenIceCap byte = koppenGroupPolar | 2
)

// classifyKoppen implements spec.md 4.8's Köppen decision tree: a
// deterministic, ordered set of checks over mean annual/seasonal
// temperature and rainfall collapsing to a single byte code. It follows
// the standard Köppen-Geiger decision order (driest-month / coldest-month
// / warmest-month thresholds) rather than any teacher precedent, since
// the teacher carries no climate classification at all.
func classifyKoppen(tempJan, tempJul, rainJan, rainJul float64) byte {
	tMin := tempJan
	tMax := tempJul
	if tempJan > tempJul {
		tMin, tMax = tempJul, tempJan
	}
	rMin := rainJan
	if rainJul < rMin {
		rMin = rainJul
	}
	rAnnual := (rainJan + rainJul) / 2 * 12

	switch {
	case tMax < 10:
		if tMax < 0 {
			return KoppenIceCap
		}
		return KoppenTundra
	case tMin >= 18 && rAnnual >= 1500:
		if rMin >= 60 {
			return KoppenTropicalRainforest
		}
		return KoppenTropicalMonsoon
	case tMin >= 18 && rMin < 60:
		return KoppenTropicalSavanna
	case rAnnual < 400:
		if rAnnual < 200 {
			return KoppenDesert
		}
		return KoppenSteppe
	case tMin >= 0:
		if rMin < 40 {
			return KoppenMediterranean
		}
		if tMax >= 22 {
			return KoppenHumidSubtropical
		}
		return KoppenOceanic
	case tMin >= -38:
		if tMax >= 22 {
			return KoppenHumidContinentalWarm
		}
		return KoppenHumidContinentalCold
	default:
		return KoppenSubarctic
	}
}

// ClassifyKoppen writes t.Climate.Koppen from the tile's already-sampled
// Jan/Jul temperature and rainfall fields.
func ClassifyKoppen(t *tileAccessor) {
	t.Climate.Koppen = classifyKoppen(
		float64(t.Climate.TempJan), float64(t.Climate.TempJul),
		float64(t.Climate.RainJan), float64(t.Climate.RainJul),
	)
}
