package tectonics

import (
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// ClassifyBoundaries implements spec.md 4.5 step 5: for every tile with at
// least one cross-plate neighbor, vote across neighbor edges by projecting
// relative velocity onto the edge direction, classify each edge as
// Transform if |dot| < transformBand else Convergent/Divergent by sign, and
// let the class with > votingThreshold share of edge votes win (else
// Transform). The winning class is recorded on the tile and mirrored into
// the owning plate's boundary tile list. Grounded on the teacher's
// determineBoundaryType (plates.go), generalized from a single
// plate-pair decision to a per-tile multi-edge vote.
func ClassifyBoundaries(sphere *topology.Sphere, plates []Plate, votingThreshold, transformBand float64) map[int32][]topology.TileID {
	boundaryTiles := make(map[int32][]topology.TileID)

	for i := range sphere.Tiles {
		tile := topology.TileID(i)
		ownPlate := sphere.Tiles[i].PlateID
		if ownPlate < 0 {
			continue
		}

		votes := map[topology.BoundaryKind]int{}
		totalEdges := 0

		for _, n := range sphere.Neighbors(tile) {
			otherPlate := sphere.Tiles[n].PlateID
			if otherPlate == ownPlate || otherPlate < 0 {
				continue
			}
			totalEdges++

			relVel := plates[ownPlate].Velocity.Sub(plates[otherPlate].Velocity)
			direction := sphere.Tiles[n].Pos.Sub(sphere.Tiles[i].Pos).Normalize()
			dot := relVel.Dot(direction)

			switch {
			case absF(dot) < transformBand:
				votes[topology.BoundaryTransform]++
			case dot > 0:
				votes[topology.BoundaryConvergent]++
			default:
				votes[topology.BoundaryDivergent]++
			}
		}

		if totalEdges == 0 {
			continue
		}

		sphere.Tiles[i].SetFlag(topology.FlagBoundary, true)

		winner := topology.BoundaryTransform
		bestCount := 0
		for kind, count := range votes {
			if count > bestCount {
				bestCount = count
				winner = kind
			}
		}
		if float64(bestCount) <= votingThreshold*float64(totalEdges) {
			winner = topology.BoundaryTransform
		}

		sphere.Tiles[i].Boundary = winner
		boundaryTiles[ownPlate] = append(boundaryTiles[ownPlate], tile)
	}

	return boundaryTiles
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
