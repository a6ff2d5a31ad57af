package climate

import "math"

// ComputeSaldo implements spec.md 4.8 step 3: for every column, integrate
// sin(latitude_angle) * land_fraction / G from the pole row down to each
// row, splitting the running sum into its positive and negative parts
// (spec.md 3's Climate-cell "saldo-positive, saldo-negative" fields) — a
// coarse proxy for accumulated seasonal insolation, positive where the
// column has been net-land-heavy at high sun angle, negative where it has
// not.
func ComputeSaldo(grid *Grid) {
	g := grid.G
	for x := 0; x < g; x++ {
		landFractions := grid.columnLandFractions(x)
		posAcc, negAcc := 0.0, 0.0
		for y := 0; y < g; y++ {
			latDeg := (float64(y)+0.5)/float64(g)*180 - 90
			latRad := latDeg * math.Pi / 180
			cell := grid.At(x, y)
			term := math.Sin(latRad) * landFractions[y] / float64(g)
			if term >= 0 {
				posAcc += term
			} else {
				negAcc += term
			}
			cell.SaldoPositive = posAcc
			cell.SaldoNegative = negAcc
		}
	}
}
