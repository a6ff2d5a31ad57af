package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedCostFieldUniformCostMatchesHopDistance(t *testing.T) {
	const n = 10
	dist := WeightedCostField(n, chainNeighbors(n), []int32{0}, func(from, to int32) float64 {
		return 1
	}, nil)

	for i := 0; i < n; i++ {
		assert.Equal(t, float64(i), dist[i])
	}
}

func TestWeightedCostFieldLeavesUnreachedAtInfinity(t *testing.T) {
	neighbors := func(tile int32) []int32 {
		if tile == 0 {
			return []int32{1}
		}
		return nil
	}
	dist := WeightedCostField(5, neighbors, []int32{0}, func(from, to int32) float64 { return 1 }, nil)
	assert.Equal(t, 0.0, dist[0])
	assert.Equal(t, 1.0, dist[1])
	assert.True(t, dist[2] > 1e17)
}

func TestWeightedCostFieldVisitCallbackFiresOncePerTile(t *testing.T) {
	const n = 8
	visits := 0
	WeightedCostField(n, chainNeighbors(n), []int32{0}, func(from, to int32) float64 { return 1 }, func(tile int32, dist float64) {
		visits++
	})
	assert.Equal(t, n, visits)
}

func TestAreaSelectExpandsExactlyMaxStepHops(t *testing.T) {
	const n = 20
	result := AreaSelect(AreaSelectorConfig{
		Neighbors: chainNeighbors(n),
		Seeds:     []int32{10},
		MinStep:   3,
		MaxStep:   3,
	})
	assert.Equal(t, 0, result.Distance[10])
	assert.Equal(t, 3, result.Distance[7])
	assert.Equal(t, 3, result.Distance[13])
	_, ok := result.Distance[6]
	assert.False(t, ok)
}

func TestAreaSelectRespectsAllowGate(t *testing.T) {
	const n = 20
	result := AreaSelect(AreaSelectorConfig{
		Neighbors: chainNeighbors(n),
		Seeds:     []int32{10},
		MinStep:   5,
		MaxStep:   5,
		Allow:     func(tile int32) bool { return tile <= 12 },
	})
	_, ok := result.Distance[13]
	assert.False(t, ok)
	_, ok = result.Distance[12]
	assert.True(t, ok)
}

func TestAreaSelectUsesNextStepWithinBounds(t *testing.T) {
	const n = 20
	calls := 0
	result := AreaSelect(AreaSelectorConfig{
		Neighbors: chainNeighbors(n),
		Seeds:     []int32{10},
		MinStep:   2,
		MaxStep:   6,
		NextStep: func() int {
			calls++
			return 100 // out of range, must be clamped
		},
	})
	assert.Equal(t, 1, calls)
	maxDist := 0
	for _, d := range result.Distance {
		if d > maxDist {
			maxDist = d
		}
	}
	assert.Equal(t, 6, maxDist)
}

func TestAreaSelectMinStepClampsNextStepLow(t *testing.T) {
	result := AreaSelect(AreaSelectorConfig{
		Neighbors: chainNeighbors(20),
		Seeds:     []int32{10},
		MinStep:   4,
		MaxStep:   8,
		NextStep:  func() int { return 1 },
	})
	maxDist := 0
	for _, d := range result.Distance {
		if d > maxDist {
			maxDist = d
		}
	}
	assert.Equal(t, 4, maxDist)
}

