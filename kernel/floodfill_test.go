package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// chainNeighbors builds a NeighborFunc for a linear chain 0-1-2-...-(n-1).
func chainNeighbors(n int) NeighborFunc {
	return func(tile int32) []int32 {
		var out []int32
		if tile > 0 {
			out = append(out, tile-1)
		}
		if int(tile) < n-1 {
			out = append(out, tile+1)
		}
		return out
	}
}

func TestFractalFillClaimsEveryTileOnAChain(t *testing.T) {
	const n = 20
	cfg := FractalFillConfig{
		TileCount: n,
		Neighbors: chainNeighbors(n),
		Seeds:     []int32{0, n - 1},
		Weights:   []float64{1, 1},
		Total:     n,
		Score: func(tile, owner, distance int32) float64 {
			return -float64(distance)
		},
	}
	result := FractalFill(cfg)

	for _, o := range result.Owner {
		assert.NotEqual(t, int32(-1), o)
	}
	assert.False(t, result.ShortFill)
	assert.Equal(t, n, result.Claimed[0]+result.Claimed[1])
}

func TestFractalFillIsDeterministic(t *testing.T) {
	const n = 30
	mk := func() FractalFillConfig {
		return FractalFillConfig{
			TileCount: n,
			Neighbors: chainNeighbors(n),
			Seeds:     []int32{0, 10, 25},
			Weights:   []float64{2, 1, 1},
			Total:     n,
			Score: func(tile, owner, distance int32) float64 {
				return -float64(distance) + float64(owner)*0.001
			},
		}
	}

	a := FractalFill(mk())
	b := FractalFill(mk())
	assert.Equal(t, a.Owner, b.Owner)
	assert.Equal(t, a.Quotas, b.Quotas)
}

func TestFractalFillGateBlocksClaim(t *testing.T) {
	const n = 10
	cfg := FractalFillConfig{
		TileCount: n,
		Neighbors: chainNeighbors(n),
		Seeds:     []int32{0},
		Weights:   []float64{1},
		Total:     n,
		Score: func(tile, owner, distance int32) float64 {
			return -float64(distance)
		},
		Gate: func(tile int32) bool { return tile < 5 },
	}
	result := FractalFill(cfg)

	for i := 0; i < 5; i++ {
		assert.Equal(t, int32(0), result.Owner[i])
	}
	for i := 5; i < n; i++ {
		assert.Equal(t, int32(-1), result.Owner[i])
	}
	assert.True(t, result.ShortFill)
}

func TestFractalFillOrphanCleanupAssignsNearestSeed(t *testing.T) {
	const n = 10
	cfg := FractalFillConfig{
		TileCount: n,
		Neighbors: chainNeighbors(n),
		Seeds:     []int32{0},
		Weights:   []float64{1},
		Total:     3, // quota far below tile count, leaves orphans
		Score: func(tile, owner, distance int32) float64 {
			return -float64(distance)
		},
		NearestSeed: func(tile int32) int32 { return 0 },
	}
	result := FractalFill(cfg)

	for _, o := range result.Owner {
		assert.Equal(t, int32(0), o)
	}
	assert.Equal(t, n-3, result.OrphanFill)
}

func TestBFSRespectsGateAndMaxTiles(t *testing.T) {
	// Star graph: tile 0 touches 1..9 directly, so a blocked odd tile does
	// not cut off the even ones behind it (BFS never expands through a tile
	// Allow rejects), and MaxTiles stops the walk before 6 and 8.
	star := func(tile int32) []int32 {
		if tile != 0 {
			return []int32{0}
		}
		return []int32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	}
	order := BFS(BFSConfig{
		Neighbors: star,
		Seeds:     []int32{0},
		Allow:     func(tile int32) bool { return tile%2 == 0 },
		MaxTiles:  3,
	})
	assert.Len(t, order, 3)
	for _, t2 := range order {
		assert.Equal(t, int32(0), t2%2)
	}
}
