package topology

import "github.com/go-gl/mathgl/mgl64"

const lloydIterations = 10

// lloydRelax runs Lloyd relaxation: each iteration moves every tile to the
// normalized centroid of itself and its current neighbors, then the spatial grid and
// neighbor table are rebuilt from scratch (spec.md 4.2 step 5). Relaxation
// converges to a stable, nearly-uniform tiling; the final neighbor table
// (post relaxation) is what Sphere keeps.
func lloydRelax(tiles []Tile) ([][]TileID, error) {
	grid := newSpatialGrid()
	grid.build(tiles)
	neighbors, err := buildNeighbors(tiles, grid)
	if err != nil {
		return nil, err
	}

	for iter := 0; iter < lloydIterations; iter++ {
		moved := make([]mgl64.Vec3, len(tiles))
		for i := range tiles {
			var sum mgl64.Vec3
			for _, n := range neighbors[i] {
				sum = sum.Add(tiles[n].Pos)
			}
			sum = sum.Add(tiles[i].Pos) // include self so pentagons/hexagons both pull toward a stable centroid
			moved[i] = sum.Normalize()
		}
		for i := range tiles {
			tiles[i].Pos = moved[i]
			tiles[i].LatDeg, tiles[i].LonDeg = cartesianToLatLon(moved[i])
		}

		grid.build(tiles)
		neighbors, err = buildNeighbors(tiles, grid)
		if err != nil {
			return nil, err
		}
	}

	return neighbors, nil
}
