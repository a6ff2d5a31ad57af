package climate

import "github.com/gomgom50/aethelgard-worldgen/kernel"

// landFractionSeaThreshold below which a cell counts as "sea" for the
// distance-to-sea BFS (spec.md 4.8 step 2).
const landFractionSeaThreshold = 0.5

// ComputeDistanceToSea implements spec.md 4.8 step 2: BFS from cells whose
// land fraction is below threshold, using kernel's generic weighted cost
// field with a uniform unit edge cost (a pure hop-count BFS expressed as
// Dijkstra, since the kernel only exposes the weighted form — spec.md 4.3
// names WeightedCostField as serving exactly this use, "distance-to-coast
// ... fields").
func ComputeDistanceToSea(grid *Grid) {
	neighbors := neighborAdapter4(grid.G)
	var sources []int32
	for i := range grid.Cells {
		if grid.Cells[i].LandFraction() < landFractionSeaThreshold {
			sources = append(sources, int32(i))
		}
	}
	if len(sources) == 0 {
		for i := range grid.Cells {
			grid.Cells[i].DistToSea = 1e9
		}
		return
	}

	unitCost := func(from, to int32) float64 { return 1 }
	dist := kernel.WeightedCostField(len(grid.Cells), neighbors, sources, unitCost, nil)
	for i, d := range dist {
		grid.Cells[i].DistToSea = d
	}
}
