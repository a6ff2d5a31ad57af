package kernel

import "container/heap"

// EdgeCostFunc returns the traversal cost of moving from -> to. Must be
// non-negative for Dijkstra correctness.
type EdgeCostFunc func(from, to int32) float64

// distItem is the heap element for WeightedCostField's internal Dijkstra.
type distItem struct {
	tile int32
	dist float64
}

type distHeap []distItem

func (h distHeap) Len() int { return len(h) }
func (h distHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].tile < h[j].tile
}
func (h distHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)        { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// WeightedCostField runs a generic Dijkstra from sources over the caller's
// edge-cost function, invoking visit(tile, dist) the first time each tile
// is finalized (spec.md 4.3: "used for distance-to-coast and rift-age
// fields"). Returns the distance array, with unreached tiles left at
// 1e18.
func WeightedCostField(tileCount int, neighbors NeighborFunc, sources []int32, edgeCost EdgeCostFunc, visit func(tile int32, dist float64)) []float64 {
	const inf = 1e18
	dist := make([]float64, tileCount)
	for i := range dist {
		dist[i] = inf
	}
	visited := make([]bool, tileCount)

	h := &distHeap{}
	heap.Init(h)
	for _, s := range sources {
		if dist[s] > 0 {
			dist[s] = 0
			heap.Push(h, distItem{s, 0})
		}
	}

	for h.Len() > 0 {
		item := heap.Pop(h).(distItem)
		if visited[item.tile] {
			continue
		}
		visited[item.tile] = true
		if visit != nil {
			visit(item.tile, item.dist)
		}
		for _, n := range neighbors(item.tile) {
			if visited[n] {
				continue
			}
			nd := item.dist + edgeCost(item.tile, n)
			if nd < dist[n] {
				dist[n] = nd
				heap.Push(h, distItem{n, nd})
			}
		}
	}

	return dist
}

// AreaSelectorConfig configures the distance-window area selector (spec.md
// 4.3): randomized per-step expansion length, optional gates.
type AreaSelectorConfig struct {
	Neighbors  NeighborFunc
	Seeds      []int32
	MinStep    int
	MaxStep    int
	NextStep   func() int // returns a value in [MinStep, MaxStep]; caller supplies RNG
	Allow      GateFunc   // combined land/water + same-plate + noise-mask gate
}

// AreaSelectorResult holds both the collected tile set and a hop-distance
// field, since different callers (area fill vs. distance-based stamping)
// want one or the other.
type AreaSelectorResult struct {
	Tiles    []int32
	Distance map[int32]int
}

// AreaSelect expands from Seeds by a randomized number of BFS steps drawn
// from [MinStep, MaxStep] via NextStep, gated by Allow, collecting every
// visited tile and its hop distance.
func AreaSelect(cfg AreaSelectorConfig) AreaSelectorResult {
	steps := cfg.MaxStep
	if cfg.NextStep != nil {
		steps = cfg.NextStep()
		if steps < cfg.MinStep {
			steps = cfg.MinStep
		}
		if steps > cfg.MaxStep {
			steps = cfg.MaxStep
		}
	}

	visited := make(map[int32]int)
	frontier := append([]int32(nil), cfg.Seeds...)
	for _, s := range cfg.Seeds {
		visited[s] = 0
	}

	for d := 1; d <= steps; d++ {
		var next []int32
		for _, t := range frontier {
			for _, n := range cfg.Neighbors(t) {
				if _, seen := visited[n]; seen {
					continue
				}
				if cfg.Allow != nil && !cfg.Allow(n) {
					continue
				}
				visited[n] = d
				next = append(next, n)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}

	tiles := make([]int32, 0, len(visited))
	for t := range visited {
		tiles = append(tiles, t)
	}
	return AreaSelectorResult{Tiles: tiles, Distance: visited}
}
