package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontierPopsHighestScoreFirst(t *testing.T) {
	f := NewFrontier()
	f.Push(Candidate{Tile: 1, Owner: 0, Score: 0.2})
	f.Push(Candidate{Tile: 2, Owner: 0, Score: 0.9})
	f.Push(Candidate{Tile: 3, Owner: 0, Score: 0.5})

	first, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, int32(2), first.Tile)

	second, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, int32(3), second.Tile)

	third, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, int32(1), third.Tile)

	_, ok = f.Pop()
	assert.False(t, ok)
}

func TestFrontierTieBreaksByTileThenOwnerThenInsertionOrder(t *testing.T) {
	f := NewFrontier()
	f.Push(Candidate{Tile: 5, Owner: 2, Score: 1.0})
	f.Push(Candidate{Tile: 2, Owner: 1, Score: 1.0})
	f.Push(Candidate{Tile: 2, Owner: 0, Score: 1.0})

	first, _ := f.Pop()
	assert.Equal(t, int32(2), first.Tile)
	assert.Equal(t, int32(0), first.Owner)

	second, _ := f.Pop()
	assert.Equal(t, int32(2), second.Tile)
	assert.Equal(t, int32(1), second.Owner)

	third, _ := f.Pop()
	assert.Equal(t, int32(5), third.Tile)

	// Equal score, tile, and owner: the earlier push pops first.
	f.Push(Candidate{Tile: 7, Owner: 0, Distance: 1, Score: 0.5})
	f.Push(Candidate{Tile: 7, Owner: 0, Distance: 2, Score: 0.5})
	fourth, _ := f.Pop()
	assert.Equal(t, int32(1), fourth.Distance)
}

func TestFrontierLen(t *testing.T) {
	f := NewFrontier()
	assert.Equal(t, 0, f.Len())
	f.Push(Candidate{Tile: 1, Score: 1})
	f.Push(Candidate{Tile: 2, Score: 1})
	assert.Equal(t, 2, f.Len())
	f.Pop()
	assert.Equal(t, 1, f.Len())
}
