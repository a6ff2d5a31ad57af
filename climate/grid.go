package climate

import (
	"gonum.org/v1/gonum/floats"

	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// BinTiles implements spec.md 4.8 step 1: bin every tile into its nearest
// grid cell by nearest-cell rounding (not full bilinear split — binning
// counts land/water and sums elevation per cell, while sampling back out
// uses the bilinear weights), accumulating water/land counts and an
// elevation sum per cell.
func BinTiles(sphere *topology.Sphere, g int) *Grid {
	grid := NewGrid(g)
	for i := range sphere.Tiles {
		t := &sphere.Tiles[i]
		fx, fy := gridCoord(g, t.LatDeg, t.LonDeg)
		x := int(fx)
		y := int(fy)
		cell := grid.At(x, y)
		if t.HasFlag(topology.FlagLand) {
			cell.LandCount++
		} else {
			cell.WaterCount++
		}
		cell.ElevSum += float64(t.Elevation)
	}
	return grid
}

// columnLandFractions returns, for column x, the land fraction of every
// row in row order (y = 0 first) — used by saldo integration.
func (grid *Grid) columnLandFractions(x int) []float64 {
	out := make([]float64, grid.G)
	for y := 0; y < grid.G; y++ {
		out[y] = grid.At(x, y).LandFraction()
	}
	return out
}

// meanLandFraction returns the grid-wide mean land fraction via
// gonum/floats, used by continentality's ocean/land decay normalization.
func (grid *Grid) meanLandFraction() float64 {
	vals := make([]float64, len(grid.Cells))
	for i := range grid.Cells {
		vals[i] = grid.Cells[i].LandFraction()
	}
	if len(vals) == 0 {
		return 0
	}
	return floats.Sum(vals) / float64(len(vals))
}
