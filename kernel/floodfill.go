package kernel

// NeighborFunc returns tile's ordered neighbor ids. Kernel algorithms are
// topology-agnostic: callers (topology.Sphere, a coarse climate grid, ...)
// supply this adapter instead of the kernel importing topology directly.
type NeighborFunc func(tile int32) []int32

// ScoreFunc computes a candidate's score given its tile, the owner
// expanding into it, and the path distance (hops) from that owner's seed.
// Per spec.md 4.3: score = noise(tile.pos + owner_offset)*weight -
// distance_penalty*path_distance; callers close over noise/weight/penalty
// and hand the kernel a pure function of (tile, owner, distance).
type ScoreFunc func(tile, owner, distance int32) float64

// GateFunc reports whether tile may be claimed at all (constraint-manager
// locks, land/water masks, ...).
type GateFunc func(tile int32) bool

// FractalFillConfig configures a per-owner fractal flood fill (spec.md 4.3:
// plates, microplates, lakes, glaciers).
type FractalFillConfig struct {
	TileCount int
	Neighbors NeighborFunc
	Seeds     []int32 // one seed tile per owner, index = owner id
	Weights   []float64
	Total     int // total tiles to claim across all owners
	Score     ScoreFunc
	Gate      GateFunc // optional; nil means every tile is claimable

	// NearestSeed resolves an orphan tile (one that never got reached) to
	// the closest owner by great-circle distance, for the post-pass
	// cleanup spec.md 4.3 requires. If nil, orphans remain unclaimed.
	NearestSeed func(tile int32) int32
}

// FractalFillResult is the outcome of one fractal flood fill.
type FractalFillResult struct {
	Owner      []int32 // len == TileCount, -1 if never claimed
	Quotas     []int   // per-owner target tile count (Hamilton allocation)
	Claimed    []int   // per-owner actual claimed count
	ShortFill  bool    // true if any owner's quota wasn't reached and no orphan pass filled it
	OrphanFill int     // tiles assigned by the nearest-seed cleanup pass
}

// FractalFill runs the per-owner fractal flood fill described in spec.md
// 4.3: seeds are pre-claimed, candidates are scored and enqueued in
// priority order, and claiming stops once every owner's Hamilton quota is
// met or the frontier drains. Owners are processed in registration order
// (their index in Seeds/Weights) only insofar as that determines seeding
// order; expansion itself interleaves across owners via the shared
// priority queue, so the result is the same regardless of how many
// goroutines a caller might otherwise have used to generate candidates,
// as long as candidates are pushed in the same order (spec.md 4.3 & 5).
func FractalFill(cfg FractalFillConfig) FractalFillResult {
	owner := make([]int32, cfg.TileCount)
	for i := range owner {
		owner[i] = -1
	}

	quotas := HamiltonQuotas(cfg.Weights, cfg.Total)
	claimed := make([]int, len(cfg.Seeds))

	gate := cfg.Gate
	if gate == nil {
		gate = func(int32) bool { return true }
	}

	frontier := NewFrontier()

	claim := func(tile, ownerID int32, dist int32) bool {
		if int(ownerID) >= len(quotas) {
			return false
		}
		if claimed[ownerID] >= quotas[ownerID] {
			return false
		}
		if owner[tile] != -1 {
			return false
		}
		if !gate(tile) {
			return false
		}
		owner[tile] = ownerID
		claimed[ownerID]++
		for _, n := range cfg.Neighbors(tile) {
			if owner[n] != -1 {
				continue
			}
			frontier.Push(Candidate{
				Tile:     n,
				Owner:    ownerID,
				Distance: dist + 1,
				Score:    cfg.Score(n, ownerID, dist+1),
			})
		}
		return true
	}

	for ownerID, seed := range cfg.Seeds {
		claim(seed, int32(ownerID), 0)
	}

	for frontier.Len() > 0 {
		c, ok := frontier.Pop()
		if !ok {
			break
		}
		claim(c.Tile, c.Owner, c.Distance)
	}

	result := FractalFillResult{Owner: owner, Quotas: quotas, Claimed: claimed}

	if cfg.NearestSeed != nil {
		for t := range owner {
			if owner[t] != -1 {
				continue
			}
			if !gate(int32(t)) {
				continue
			}
			nearest := cfg.NearestSeed(int32(t))
			owner[t] = nearest
			if int(nearest) < len(claimed) {
				claimed[nearest]++
			}
			result.OrphanFill++
		}
	}

	for i, q := range quotas {
		if claimed[i] < q {
			result.ShortFill = true
			break
		}
	}
	result.Claimed = claimed

	return result
}

// BFSConfig configures a predicate-gated simple BFS (spec.md 4.3).
type BFSConfig struct {
	Neighbors NeighborFunc
	Seeds     []int32
	Allow     GateFunc // tile may be visited
	MaxTiles  int      // 0 = unbounded
}

// BFS performs an unbounded (or capped) predicate-gated breadth-first
// expansion from Seeds, returning every visited tile in visit order.
func BFS(cfg BFSConfig) []int32 {
	visited := make(map[int32]bool)
	var order []int32
	queue := append([]int32(nil), cfg.Seeds...)
	for _, s := range cfg.Seeds {
		visited[s] = true
	}

	for len(queue) > 0 {
		if cfg.MaxTiles > 0 && len(order) >= cfg.MaxTiles {
			break
		}
		t := queue[0]
		queue = queue[1:]
		if cfg.Allow != nil && !cfg.Allow(t) {
			continue
		}
		order = append(order, t)
		for _, n := range cfg.Neighbors(t) {
			if visited[n] {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return order
}
