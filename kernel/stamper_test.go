package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStampAddAppliesFalloffByDistance(t *testing.T) {
	field := make([]float64, 5)
	distance := map[int32]int{0: 0, 1: 1, 2: 2}
	layers := []Layer{{Radius: 2, Action: ActionAdd, Target: 10}}

	Stamp(field, distance, layers, nil)

	assert.Equal(t, 10.0, field[0])
	assert.Equal(t, 5.0, field[1])
	assert.Equal(t, 0.0, field[2])
	assert.Equal(t, 0.0, field[3])
}

func TestStampSetMovesTowardTarget(t *testing.T) {
	field := []float64{2, 2}
	distance := map[int32]int{0: 0, 1: 1}
	layers := []Layer{{Radius: 2, Action: ActionSet, Target: 10}}

	Stamp(field, distance, layers, nil)

	assert.Equal(t, 10.0, field[0])
	assert.InDelta(t, 6.0, field[1], 1e-9)
}

func TestStampMaxAndMin(t *testing.T) {
	fieldMax := []float64{3}
	Stamp(fieldMax, map[int32]int{0: 0}, []Layer{{Radius: 1, Action: ActionMax, Target: 5}}, nil)
	assert.Equal(t, 5.0, fieldMax[0])

	fieldMin := []float64{3}
	Stamp(fieldMin, map[int32]int{0: 0}, []Layer{{Radius: 1, Action: ActionMin, Target: 5}}, nil)
	assert.Equal(t, 3.0, fieldMin[0])
}

func TestStampWritesFlagBeyondThreshold(t *testing.T) {
	field := []float64{0, 0}
	distance := map[int32]int{0: 0, 1: 1}
	layers := []Layer{{Radius: 1, Action: ActionAdd, Target: 10, FlagBits: 0x1, FlagThreshold: 5}}

	flagged := map[int32]uint32{}
	Stamp(field, distance, layers, func(tile int32, bits uint32) {
		flagged[tile] |= bits
	})

	assert.Equal(t, uint32(0x1), flagged[0])
	_, ok := flagged[1]
	assert.False(t, ok, "tile below threshold should not be flagged")
}

func TestOrogenySpineWalksContiguousBoundary(t *testing.T) {
	along := map[int32]bool{0: true, 1: true, 2: true, 3: true}
	spine := OrogenySpine(0, along, chainNeighbors(10))
	assert.Equal(t, []int32{0, 1, 2, 3}, spine)
}

func TestStampOrogenyProducesSeverityAlongSpine(t *testing.T) {
	along := map[int32]bool{2: true, 3: true, 4: true}
	field := make([]float64, 10)
	layers := []Layer{{Radius: 2, Action: ActionAdd, Target: 1}}

	rec := StampOrogeny(1, 0, 2, along, chainNeighbors(10), layers, field, nil)

	assert.Equal(t, []int32{2, 3, 4}, rec.Spine)
	assert.Equal(t, 1.0, rec.Severity[2])
	assert.Greater(t, field[2], field[0])
}

func TestApplyBrushWritesRegionAndNormalWithinRadius(t *testing.T) {
	distance := map[int32]int{0: 0, 1: 1, 2: 5}
	regionTags := make([]uint16, 3)
	normals := make([]float64, 3)

	ApplyBrush(distance, 2, BrushStamp{RegionTag: 7, Normal: 1.5}, regionTags, normals)

	assert.Equal(t, uint16(7), regionTags[0])
	assert.Equal(t, uint16(7), regionTags[1])
	assert.Equal(t, uint16(0), regionTags[2])
	assert.Equal(t, 1.5, normals[1])
}
