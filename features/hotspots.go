package features

import (
	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/tectonics"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// GenerateHotspots implements spec.md 4.6's hotspot tracing: count
// proportional to planet area (tile count here, since the sphere's area is
// fixed at unit radius and tile count is the natural area proxy), each
// starting on a low-elevation oceanic tile and stepping L times toward the
// neighbor whose outward direction most aligns with that tile's owning
// plate's velocity, stopping at a plate boundary or the step cap.
// Grounded on geological_processes.go's applyAdvancedHotspotVolcanism
// (random sphere position -> nearest vertex -> radius-based uplift),
// generalized from a fixed-position mantle plume wandering in place to a
// directed trace along plate motion, since spec.md 4.6 explicitly says
// "trace L steps choosing ... the neighbor whose outward direction
// maximizes dot(dir, plate_velocity)" rather than leaving hotspots static.
func GenerateHotspots(sphere *topology.Sphere, plates []tectonics.Plate, params Params, src *rng.Source) []Hotspot {
	n := sphere.TileCount()
	count := int(float64(n)*params.HotspotsPerAreaUnit + 0.5)
	if count < 1 {
		count = 1
	}

	var oceanicLow []topology.TileID
	for i := range sphere.Tiles {
		t := &sphere.Tiles[i]
		if t.Crust == topology.CrustOceanic && t.Elevation < -2000 {
			oceanicLow = append(oceanicLow, topology.TileID(i))
		}
	}
	if len(oceanicLow) == 0 {
		return nil
	}

	hotspotSrc := src.Fork("hotspots")
	var hotspots []Hotspot

	for h := 0; h < count; h++ {
		seed := oceanicLow[hotspotSrc.NextIntn(len(oceanicLow))]
		path := []topology.TileID{seed}
		current := seed

		for step := 0; step < params.HotspotMaxSteps; step++ {
			plateID := sphere.Tiles[current].PlateID
			if plateID < 0 || int(plateID) >= len(plates) {
				break
			}
			vel := plates[plateID].Velocity

			var best topology.TileID = -1
			bestDot := -2.0
			crossedBoundary := false
			for _, nb := range sphere.Neighbors(current) {
				if sphere.Tiles[nb].PlateID != plateID {
					crossedBoundary = true
					continue
				}
				dir := sphere.Tiles[nb].Pos.Sub(sphere.Tiles[current].Pos).Normalize()
				dot := dir.Dot(vel)
				if dot > bestDot {
					bestDot = dot
					best = nb
				}
			}
			if crossedBoundary || best == -1 {
				break
			}
			current = best
			path = append(path, current)
		}

		intensity := make([]float64, len(path))
		for i := range path {
			// newest (index 0, the seed) decays toward oldest (last step).
			t := float64(i) / float64(maxInt(1, len(path)-1))
			intensity[i] = 1.0 - t*0.8
		}

		hotspots = append(hotspots, Hotspot{ID: int32(h), Seed: seed, Path: path, Intensity: intensity})

		for i, tileID := range path {
			sphere.Tiles[tileID].HotspotID = int32(h)
			relief := intensity[i] * 1500
			sphere.Tiles[tileID].Elevation += float32(relief)
			if sphere.Tiles[tileID].Elevation > float32(-200) {
				sphere.Tiles[tileID].Feature = topology.FeatureHotspotVolcano
			}
		}
	}

	return hotspots
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
