package tectonics

import (
	"fmt"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// withinHops returns every tile reachable from start in <= maxDepth hops,
// via plain breadth-first expansion. Grounded on the teacher's
// growRegion/findVertexNeighbors stack-based walk in plates.go, generalized
// to a depth limit instead of a terrain-similarity predicate since seed
// spacing (spec.md 4.5 step 1) only cares about hop count.
func withinHops(sphere *topology.Sphere, start topology.TileID, maxDepth int) map[topology.TileID]bool {
	visited := map[topology.TileID]bool{start: true}
	frontier := []topology.TileID{start}
	for d := 0; d < maxDepth; d++ {
		var next []topology.TileID
		for _, t := range frontier {
			for _, n := range sphere.Neighbors(t) {
				if !visited[n] {
					visited[n] = true
					next = append(next, n)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return visited
}

// SeedPlates picks k tiles with pairwise graph distance >= minHopDistance,
// retrying rejected candidates up to a fixed attempt budget before giving
// up (spec.md 4.5 step 1: "pick K tiles with minimum pairwise graph
// distance >= D; retry on conflict"). Each accepted seed's "forbidden zone"
// (every tile within minHopDistance-1 hops) is computed once and reused to
// reject future candidates in O(1).
func SeedPlates(sphere *topology.Sphere, k, minHopDistance int, src *rng.Source) ([]topology.TileID, error) {
	if k <= 0 {
		return nil, fmt.Errorf("tectonics: plate count must be positive, got %d", k)
	}

	n := sphere.TileCount()
	const maxAttemptsPerSeed = 4096

	seeds := make([]topology.TileID, 0, k)
	forbidden := make(map[topology.TileID]bool)

	for len(seeds) < k {
		placed := false
		for attempt := 0; attempt < maxAttemptsPerSeed; attempt++ {
			cand := topology.TileID(src.NextIntn(n))
			if forbidden[cand] {
				continue
			}
			seeds = append(seeds, cand)
			for t := range withinHops(sphere, cand, minHopDistance-1) {
				forbidden[t] = true
			}
			placed = true
			break
		}
		if !placed {
			return nil, fmt.Errorf("tectonics: could not place seed %d of %d with min hop distance %d after %d attempts",
				len(seeds)+1, k, minHopDistance, maxAttemptsPerSeed)
		}
	}

	return seeds, nil
}

// AssignKindsAndTiers assigns each plate a kind (continental share per
// continentalRatio) and a tier cycling the fixed crust-fraction
// distribution (spec.md 4.5 step 1). Continental plates are assigned
// first (deterministically shuffled) so the ratio lands on whole plates.
func AssignKindsAndTiers(plates []Plate, continentalRatio float64, src *rng.Source) {
	order := make([]int, len(plates))
	for i := range order {
		order[i] = i
	}
	src.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	continentalCount := int(float64(len(plates))*continentalRatio + 0.5)
	isContinental := make(map[int]bool, continentalCount)
	for i := 0; i < continentalCount && i < len(order); i++ {
		isContinental[order[i]] = true
	}

	for i := range plates {
		if isContinental[i] {
			plates[i].Kind = topology.CrustContinental
		} else {
			plates[i].Kind = topology.CrustOceanic
		}
		plates[i].Tier = i % len(tierCrustFractions)
		plates[i].CrustFraction = tierCrustFractions[plates[i].Tier]
	}
}
