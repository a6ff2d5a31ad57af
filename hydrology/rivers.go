package hydrology

import (
	"container/heap"
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/topology"
)

func isWaterOrCoast(sphere *topology.Sphere, tile topology.TileID) bool {
	t := &sphere.Tiles[tile]
	if !t.HasFlag(topology.FlagLand) {
		return true
	}
	if t.HasFlag(topology.FlagHasLake) {
		return true
	}
	for _, n := range sphere.Neighbors(tile) {
		if !sphere.Tiles[n].HasFlag(topology.FlagLand) {
			return true
		}
	}
	return false
}

// nearestWaterOrCoast runs a plain BFS from start until it hits a water or
// coastal tile, returning that tile (or -1 if the whole reachable set has
// none — should not happen on any sphere with an ocean).
func nearestWaterOrCoast(sphere *topology.Sphere, start topology.TileID) topology.TileID {
	visited := map[topology.TileID]bool{start: true}
	queue := []topology.TileID{start}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if isWaterOrCoast(sphere, t) {
			return t
		}
		for _, n := range sphere.Neighbors(t) {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return -1
}

type aStarItem struct {
	tile topology.TileID
	f    float64
	g    float64
	idx  int
}

type aStarHeap []*aStarItem

func (h aStarHeap) Len() int { return len(h) }
func (h aStarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].tile < h[j].tile
}
func (h aStarHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].idx = i; h[j].idx = j }
func (h *aStarHeap) Push(x any) {
	item := x.(*aStarItem)
	item.idx = len(*h)
	*h = append(*h, item)
}
func (h *aStarHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// aStarPath implements spec.md 4.7's A*-based river carving search: cost
// penalizes elevation gain (uphill edges cost more than downhill/flat
// ones), heuristic is chord distance to the target scaled to roughly match
// edge-cost units. Returns the path from start to target inclusive, or nil
// if unreachable.
func aStarPath(sphere *topology.Sphere, start, target topology.TileID, upliftPenalty float64) []topology.TileID {
	goalPos := sphere.Tiles[target].Pos

	g := map[topology.TileID]float64{start: 0}
	cameFrom := map[topology.TileID]topology.TileID{}

	heuristic := func(t topology.TileID) float64 {
		return sphere.Tiles[t].Pos.Sub(goalPos).Len() * 6371
	}

	open := &aStarHeap{}
	heap.Init(open)
	heap.Push(open, &aStarItem{tile: start, f: heuristic(start), g: 0})
	closed := map[topology.TileID]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*aStarItem)
		if closed[cur.tile] {
			continue
		}
		closed[cur.tile] = true

		if cur.tile == target {
			var path []topology.TileID
			t := target
			for {
				path = append([]topology.TileID{t}, path...)
				if t == start {
					break
				}
				t = cameFrom[t]
			}
			return path
		}

		for _, n := range sphere.Neighbors(cur.tile) {
			if closed[n] {
				continue
			}
			gain := float64(sphere.Tiles[n].Elevation) - float64(sphere.Tiles[cur.tile].Elevation)
			cost := 1.0
			if gain > 0 {
				cost += gain * upliftPenalty
			}
			ng := cur.g + cost
			if existing, ok := g[n]; !ok || ng < existing {
				g[n] = ng
				cameFrom[n] = cur.tile
				heap.Push(open, &aStarItem{tile: n, f: ng + heuristic(n), g: ng})
			}
		}
	}
	return nil
}

// CarveRivers implements spec.md 4.7's river pass: select tiles exceeding
// the flow threshold, A*-path each to the nearest water/coast tile, and
// carve the path by interpolating elevation monotonically from source to
// mouth and lowering any point above that interpolant. Optionally widens
// the channel to neighbors proportional to flow. Grounded on erosion.go's
// applyFluvialErosion (elevation-lowering pass) generalized from a
// uniform per-tile erosion rate to a path-following carve so rivers form
// continuous monotonic channels rather than independently-eroding points.
func CarveRivers(sphere *topology.Sphere, params Params) {
	var sources []topology.TileID
	for i := range sphere.Tiles {
		t := &sphere.Tiles[i]
		if t.HasFlag(topology.FlagLand) && float64(t.FlowAccum) >= params.RiverFlowThreshold && !t.HasFlag(topology.FlagHasLake) {
			sources = append(sources, topology.TileID(i))
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	for _, src := range sources {
		target := nearestWaterOrCoast(sphere, src)
		if target < 0 {
			continue
		}
		path := aStarPath(sphere, src, target, 3.0)
		if len(path) < 2 {
			continue
		}

		startElev := float64(sphere.Tiles[path[0]].Elevation)
		endElev := float64(sphere.Tiles[path[len(path)-1]].Elevation)

		for i, tile := range path {
			frac := float64(i) / float64(len(path)-1)
			interp := startElev + (endElev-startElev)*frac
			if float64(sphere.Tiles[tile].Elevation) > interp {
				sphere.Tiles[tile].Elevation = float32(interp)
			}
			sphere.Tiles[tile].HasRiverFlag = true
			sphere.Tiles[tile].SetFlag(topology.FlagHasRiver, true)

			if i < len(path)-1 {
				next := path[i+1]
				for idx, n := range sphere.Neighbors(tile) {
					if n == next {
						sphere.Tiles[tile].RiverFlowDir = int8(idx)
						break
					}
				}
			} else {
				sphere.Tiles[tile].RiverFlowDir = -1
			}

			widenRadius := int(float64(sphere.Tiles[tile].FlowAccum) / params.RiverFlowThreshold)
			if widenRadius > 2 {
				widenRadius = 2
			}
			if widenRadius >= 1 {
				for _, n := range sphere.Neighbors(tile) {
					if !sphere.Tiles[n].HasFlag(topology.FlagHasRiver) {
						sphere.Tiles[n].SetFlag(topology.FlagHasRiver, true)
					}
				}
			}
		}
	}
}
