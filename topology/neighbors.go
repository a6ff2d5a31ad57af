package topology

import (
	"fmt"
	"sort"
)

// maxNeighbors bounds every tile to at most 6 neighbors (hexagon) or 5
// (pentagon); §8 property 2.
const maxNeighbors = 6

// buildNeighbors computes, for every tile, an ordered neighbor list whose
// positional index doubles as the "direction index" used by river flow and
// stamping (spec.md 4.2 contract). Candidates are drawn from the spatial
// grid by k-NN within an adaptive ring radius, then filtered to those whose
// squared chord distance is <= (1.5 * closest)^2 (spec.md 4.2 step 4).
func buildNeighbors(tiles []Tile, grid *spatialGrid) ([][]TileID, error) {
	neighbors := make([][]TileID, len(tiles))

	for i := range tiles {
		want := 6
		if tiles[i].Pentagon {
			want = 5
		}

		ring := 1
		var cands []TileID
		for {
			cands = grid.candidatesNear(tiles[i].LatDeg, tiles[i].LonDeg, ring)
			// Need at least want+1 (including self) before distances are
			// meaningful; widen the ring until the grid has enough points.
			if len(cands) >= want+4 || ring > 8 {
				break
			}
			ring++
		}

		type distPair struct {
			id   TileID
			dist float64
		}
		pairs := make([]distPair, 0, len(cands))
		for _, c := range cands {
			if int(c) == i {
				continue
			}
			d := chordDistSq(tiles[i].Pos, tiles[c].Pos)
			pairs = append(pairs, distPair{c, d})
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].dist < pairs[b].dist })

		if len(pairs) == 0 {
			return nil, fmt.Errorf("topology: tile %d has no neighbor candidates", i)
		}

		closest := pairs[0].dist
		threshold := 2.25 * closest // (1.5 * closest)^2 already squared-space: closest is itself squared

		var accepted []TileID
		for _, p := range pairs {
			if p.dist <= threshold {
				accepted = append(accepted, p.id)
			}
			if len(accepted) >= maxNeighbors {
				break
			}
		}

		if len(accepted) != want {
			return nil, fmt.Errorf("topology: tile %d got %d neighbors, want %d (pentagon=%v)",
				i, len(accepted), want, tiles[i].Pentagon)
		}

		neighbors[i] = accepted
	}

	if err := verifySymmetric(neighbors); err != nil {
		return nil, err
	}

	return neighbors, nil
}

func chordDistSq(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

// verifySymmetric enforces §8 property 3: t in neighbors(n) whenever
// n in neighbors(t).
func verifySymmetric(neighbors [][]TileID) error {
	present := func(list []TileID, v TileID) bool {
		for _, x := range list {
			if x == v {
				return true
			}
		}
		return false
	}
	for t, list := range neighbors {
		for _, n := range list {
			if !present(neighbors[n], TileID(t)) {
				return fmt.Errorf("topology: neighbor asymmetry between tile %d and %d", t, n)
			}
		}
	}
	return nil
}
