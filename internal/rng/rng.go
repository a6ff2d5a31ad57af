// Package rng implements the deterministic, forkable random sequence used by
// every generation stage. A Source is cheap to copy by value is not safe —
// callers fork a child Source per thread or per labeled sub-sequence instead
// of sharing one across goroutines.
package rng

import "hash/fnv"

// Source is a xoshiro256** generator seeded via splitmix64. Two Sources
// constructed from the same (base seed, label) fork path always produce the
// same sequence, independent of machine, OS, or thread count.
type Source struct {
	s [4]uint64
}

// New creates a root Source from a base seed and a generation counter. The
// counter lets the orchestrator re-derive the same stage sequence when a
// single stage is re-run in isolation.
func New(baseSeed uint64, generation uint32) Source {
	seed := baseSeed ^ (uint64(generation) * 0x9E3779B97F4A7C15)
	var sm splitmix64
	sm.state = seed
	var src Source
	for i := range src.s {
		src.s[i] = sm.next()
	}
	// xoshiro256** requires a non-zero state.
	if src.s[0]|src.s[1]|src.s[2]|src.s[3] == 0 {
		src.s[0] = 1
	}
	return src
}

// Fork derives a child Source keyed by a deterministic label (a stage name,
// a plate id string, etc.) by hashing the label into a fresh splitmix64
// seed drawn from the parent. Forking never mutates the parent, so the same
// label always forks the same child regardless of call order — safe to call
// from multiple goroutines, each holding its own parent copy.
func (s Source) Fork(label string) Source {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	labelHash := h.Sum64()

	var sm splitmix64
	sm.state = s.s[0] ^ s.s[1]<<1 ^ s.s[2]<<2 ^ s.s[3]<<3 ^ labelHash
	var child Source
	for i := range child.s {
		child.s[i] = sm.next()
	}
	if child.s[0]|child.s[1]|child.s[2]|child.s[3] == 0 {
		child.s[0] = 1
	}
	return child
}

// NextU64 returns the next uniform 64-bit value and advances the state.
func (s *Source) NextU64() uint64 {
	result := rotl(s.s[1]*5, 7) * 9

	t := s.s[1] << 17
	s.s[2] ^= s.s[0]
	s.s[3] ^= s.s[1]
	s.s[1] ^= s.s[2]
	s.s[0] ^= s.s[3]
	s.s[2] ^= t
	s.s[3] = rotl(s.s[3], 45)

	return result
}

func rotl(x uint64, k int) uint64 {
	return (x << uint(k)) | (x >> uint(64-k))
}

// NextF32 returns a uniform float32 in [0,1).
func (s *Source) NextF32() float32 {
	return float32(s.NextU64()>>40) / float32(1<<24)
}

// NextF64 returns a uniform float64 in [0,1).
func (s *Source) NextF64() float64 {
	return float64(s.NextU64()>>11) / float64(1<<53)
}

// NextRange returns a uniform float64 in [lo,hi).
func (s *Source) NextRange(lo, hi float64) float64 {
	return lo + s.NextF64()*(hi-lo)
}

// NextBounded returns a uniform integer in [0,max) via rejection sampling on
// (2^64 - max) mod max, so every outcome is equally likely regardless of how
// max divides 2^64 — a plain modulo would bias small remainders.
func (s *Source) NextBounded(max uint64) uint64 {
	if max == 0 {
		return 0
	}
	threshold := -max % max
	for {
		v := s.NextU64()
		if v >= threshold {
			return v % max
		}
	}
}

// NextIntn returns a uniform int in [0,n).
func (s *Source) NextIntn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.NextBounded(uint64(n)))
}

// Shuffle permutes n elements in place using swap(i, j), Fisher-Yates order,
// matching the deterministic tie-break required by crust-age seed ordering
// (spec.md 4.5 step 6).
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.NextIntn(i + 1)
		swap(i, j)
	}
}

type splitmix64 struct {
	state uint64
}

func (sm *splitmix64) next() uint64 {
	sm.state += 0x9E3779B97F4A7C15
	z := sm.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
