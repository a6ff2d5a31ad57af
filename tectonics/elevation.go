package tectonics

import (
	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/noise"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// AssignBaseElevation gives continental tiles a random base in
// [ContinentalBaseMin, ContinentalBaseMax] and oceanic tiles a random base
// in [OceanicBaseMin, OceanicBaseMax], adds two-octave noise, and derives
// Crust + the Land flag from the result vs. SeaLevel (spec.md 4.5 step 7).
func AssignBaseElevation(sphere *topology.Sphere, plates []Plate, params Params, src *rng.Source) {
	elevSrc := src.Fork("base-elevation")
	detailNoise := noise.NewFractalSource(int64(elevSrc.NextU64()), 2, 0.5, 2.0, 3.0)

	for i := range sphere.Tiles {
		plateID := sphere.Tiles[i].PlateID
		if plateID < 0 || int(plateID) >= len(plates) {
			continue
		}
		plate := plates[plateID]

		var base float64
		if plate.Kind == topology.CrustContinental {
			base = elevSrc.NextRange(params.ContinentalBaseMin, params.ContinentalBaseMax)
			sphere.Tiles[i].Crust = topology.CrustContinental
			sphere.Tiles[i].CrustThickness = 35 + float32(elevSrc.NextRange(0, 10))
		} else {
			base = elevSrc.NextRange(params.OceanicBaseMin, params.OceanicBaseMax)
			sphere.Tiles[i].Crust = topology.CrustOceanic
			sphere.Tiles[i].CrustThickness = 6 + float32(elevSrc.NextRange(0, 3))
		}

		p := sphere.Tiles[i].Pos
		detail := detailNoise.Eval(p.X(), p.Y(), p.Z()) * 500

		elevation := base + detail
		sphere.Tiles[i].Elevation = float32(elevation)
		sphere.Tiles[i].SetFlag(topology.FlagLand, elevation > params.SeaLevel)
	}
}
