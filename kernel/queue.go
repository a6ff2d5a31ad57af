// Package kernel implements the shared region-growing and stamping engine
// behind plate assignment, microplates, lakes, waterbodies, area
// selection, mountain stamping, and brush stamping (spec.md 4.3).
// FractalFill grows every region through the same Candidate/priorityQueue
// type, so its ordering and tie-breaking are identical for every caller;
// BFS, AreaSelect, and WeightedCostField keep their own queues.
package kernel

import "container/heap"

// Candidate is one frontier entry: a tile reachable from owner at
// path-distance hops, carrying the score the kernel ranks it by.
type Candidate struct {
	Tile     int32
	Owner    int32
	Distance int32
	Score    float64
	seq      uint64 // registration order, used only as a final, deterministic tie-break
}

// priorityQueue is a container/heap.Interface max-score-first queue,
// grounded directly on katalvlaran/lvlath's graph/algorithms/dijkstra.go
// nodePQ/nodeItem pattern (adopted rather than hand-rolled, since lvlath is
// in the retrieval pack and already demonstrates the idiomatic Go
// container/heap wrapper this kernel needs) — generalized from lvlath's
// single-key min-heap to a 3-key max-heap: (score desc, tile asc, owner
// asc), per spec.md 4.3's "never rely on heap stability" requirement.
type priorityQueue []*Candidate

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.Score != b.Score {
		return a.Score > b.Score // max-score first
	}
	if a.Tile != b.Tile {
		return a.Tile < b.Tile // lower tile-id wins ties
	}
	if a.Owner != b.Owner {
		return a.Owner < b.Owner
	}
	return a.seq < b.seq
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	c := x.(*Candidate)
	*pq = append(*pq, c)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// Frontier wraps priorityQueue behind a push/pop API with monotonically
// increasing sequence numbers, so every kernel algorithm gets the same
// deterministic tie-breaking without re-deriving the heap boilerplate.
type Frontier struct {
	pq      priorityQueue
	nextSeq uint64
}

// NewFrontier returns an empty, ready-to-use frontier.
func NewFrontier() *Frontier {
	f := &Frontier{}
	heap.Init(&f.pq)
	return f
}

// Push enqueues a candidate. Distance, Score, Tile, and Owner must already
// be set by the caller; Push assigns the tie-break sequence.
func (f *Frontier) Push(c Candidate) {
	c.seq = f.nextSeq
	f.nextSeq++
	heap.Push(&f.pq, &c)
}

// Pop removes and returns the highest-scoring candidate. ok is false if the
// frontier is empty.
func (f *Frontier) Pop() (Candidate, bool) {
	if f.pq.Len() == 0 {
		return Candidate{}, false
	}
	c := heap.Pop(&f.pq).(*Candidate)
	return *c, true
}

// Len reports the number of pending candidates.
func (f *Frontier) Len() int { return f.pq.Len() }
