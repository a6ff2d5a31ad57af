package tectonics

import (
	"fmt"
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// convergentLayers, divergentLayers, transformLayers are the per-class
// layer sets spec.md 4.5 step 8 names: "convergent -> main belt + foothills
// + uplift; divergent -> rift valley + shoulders; transform -> narrow
// fault ridges". Grounded on the teacher's applyConvergentBoundary /
// applyDivergentBoundary / applyTransformBoundary (tectonics.go), whose
// hand-tuned uplift/subduct/rift rates are the source of these falloff
// radii and target deltas, re-expressed as kernel.Layer stamps instead of
// the teacher's bespoke influence-distance loops.
func convergentLayers() []kernel.Layer {
	return []kernel.Layer{
		{Radius: 1, Action: kernel.ActionAdd, Target: 4000, FlagBits: uint32(topology.FlagUplift), FlagThreshold: 2000},
		{Radius: 3, Action: kernel.ActionAdd, Target: 1200},
		{Radius: 6, Action: kernel.ActionAdd, Target: 300},
	}
}

func divergentLayers() []kernel.Layer {
	return []kernel.Layer{
		{Radius: 1, Action: kernel.ActionAdd, Target: -1500},
		{Radius: 3, Action: kernel.ActionAdd, Target: 400},
	}
}

func transformLayers() []kernel.Layer {
	return []kernel.Layer{
		{Radius: 1, Action: kernel.ActionAdd, Target: 200},
	}
}

func featureForClass(kind topology.BoundaryKind) topology.FeatureKind {
	switch kind {
	case topology.BoundaryConvergent:
		return topology.FeatureOrogenyBelt
	case topology.BoundaryDivergent:
		return topology.FeatureRiftValley
	case topology.BoundaryTransform:
		return topology.FeatureTransformRidge
	default:
		return topology.FeatureNone
	}
}

// StampBoundaryFeatures groups every boundary tile by (owning plate,
// boundary class) into contiguous segments, traces a spine through each
// with kernel.OrogenySpine, and stamps class-specific layers with
// kernel.StampOrogeny (spec.md 4.5 step 8). Elevation deltas are written
// directly onto sphere.Tiles' Elevation field; tiles touched by a stamp get
// their Feature set to the class's feature kind if not already more
// specific.
func StampBoundaryFeatures(sphere *topology.Sphere, boundaryTiles map[int32][]topology.TileID) ([]kernel.OrogenyRecord, error) {
	neighbors := neighborAdapter(sphere)

	n := sphere.TileCount()
	field := make([]float64, n)
	for i := range field {
		field[i] = float64(sphere.Tiles[i].Elevation)
	}

	var records []kernel.OrogenyRecord
	nextID := int32(0)

	// Stable plate iteration order so segment grouping is deterministic.
	var plateIDs []int32
	for pid := range boundaryTiles {
		plateIDs = append(plateIDs, pid)
	}
	sort.Slice(plateIDs, func(i, j int) bool { return plateIDs[i] < plateIDs[j] })

	for _, pid := range plateIDs {
		byClass := map[topology.BoundaryKind]map[int32]bool{}
		for _, t := range boundaryTiles[pid] {
			kind := sphere.Tiles[t].Boundary
			if byClass[kind] == nil {
				byClass[kind] = map[int32]bool{}
			}
			byClass[kind][int32(t)] = true
		}

		kinds := make([]topology.BoundaryKind, 0, len(byClass))
		for kind := range byClass {
			kinds = append(kinds, kind)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

		for _, kind := range kinds {
			along := byClass[kind]
			if kind == topology.BoundaryNone || len(along) == 0 {
				continue
			}

			var layers []kernel.Layer
			switch kind {
			case topology.BoundaryConvergent:
				layers = convergentLayers()
			case topology.BoundaryDivergent:
				layers = divergentLayers()
			case topology.BoundaryTransform:
				layers = transformLayers()
			}

			remaining := map[int32]bool{}
			for t := range along {
				remaining[t] = true
			}

			for len(remaining) > 0 {
				var start int32 = -1
				for t := range remaining {
					if start == -1 || t < start {
						start = t
					}
				}
				if start == -1 {
					break
				}

				feature := featureForClass(kind)
				setFlag := func(tile int32, bits uint32) {
					if bits&uint32(topology.FlagUplift) != 0 {
						sphere.Tiles[tile].SetFlag(topology.FlagUplift, true)
					}
				}

				rec := kernel.StampOrogeny(nextID, pid, start, along, neighbors, layers, field, setFlag)
				nextID++
				records = append(records, rec)

				for _, t := range rec.Spine {
					delete(remaining, t)
					if sphere.Tiles[t].Feature == topology.FeatureNone {
						sphere.Tiles[t].Feature = feature
					}
				}
				for t := range rec.Severity {
					if sphere.Tiles[t].Feature == topology.FeatureNone {
						sphere.Tiles[t].Feature = feature
					}
					sphere.Tiles[t].OrogenyID = rec.ID
				}
			}
		}
	}

	for i := range sphere.Tiles {
		sphere.Tiles[i].Elevation = float32(field[i])
	}

	if len(records) == 0 && totalBoundaryTiles(boundaryTiles) > 0 {
		return records, fmt.Errorf("tectonics: boundary tiles present but no orogeny records produced")
	}
	return records, nil
}

func totalBoundaryTiles(m map[int32][]topology.TileID) int {
	n := 0
	for _, v := range m {
		n += len(v)
	}
	return n
}
