// Package bufferpool rents transient per-tile scratch buffers to stages that
// need a float64/int32/bool scratch array for the duration of a pass (flood
// fills, distance fields, erosion accumulators). Buffers are always handed
// out cleared and must be returned via Put when the stage is done with them.
package bufferpool

import "sync"

// Float64Pool rents []float64 buffers of a fixed length.
type Float64Pool struct {
	length int
	pool   sync.Pool
}

// NewFloat64Pool creates a pool of buffers with the given length.
func NewFloat64Pool(length int) *Float64Pool {
	p := &Float64Pool{length: length}
	p.pool.New = func() any {
		return make([]float64, length)
	}
	return p
}

// Get returns a zeroed buffer of the pool's configured length.
func (p *Float64Pool) Get() []float64 {
	buf := p.pool.Get().([]float64)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Put returns a buffer to the pool. The buffer must not be used afterward.
func (p *Float64Pool) Put(buf []float64) {
	if len(buf) != p.length {
		return // mismatched length, drop rather than pollute the pool
	}
	p.pool.Put(buf) //nolint:staticcheck // slice header copy is intentional
}

// Int32Pool rents []int32 buffers of a fixed length, used for owner/id
// scratch arrays (flood-fill claims, distance-field predecessor links).
type Int32Pool struct {
	length int
	pool   sync.Pool
}

// NewInt32Pool creates a pool of buffers with the given length, filled with
// fillValue whenever one is handed out (callers typically want -1, not 0,
// to mean "unclaimed").
func NewInt32Pool(length int, fillValue int32) *Int32Pool {
	p := &Int32Pool{length: length}
	p.pool.New = func() any {
		buf := make([]int32, length)
		for i := range buf {
			buf[i] = fillValue
		}
		return buf
	}
	return p
}

// Get returns a buffer reset to the pool's fill value.
func (p *Int32Pool) Get(fillValue int32) []int32 {
	buf := p.pool.Get().([]int32)
	for i := range buf {
		buf[i] = fillValue
	}
	return buf
}

// Put returns a buffer to the pool.
func (p *Int32Pool) Put(buf []int32) {
	if len(buf) != p.length {
		return
	}
	p.pool.Put(buf) //nolint:staticcheck
}

// BoolPool rents []bool visited/claimed-mask buffers.
type BoolPool struct {
	length int
	pool   sync.Pool
}

// NewBoolPool creates a pool of buffers with the given length.
func NewBoolPool(length int) *BoolPool {
	p := &BoolPool{length: length}
	p.pool.New = func() any {
		return make([]bool, length)
	}
	return p
}

// Get returns a buffer cleared to false.
func (p *BoolPool) Get() []bool {
	buf := p.pool.Get().([]bool)
	for i := range buf {
		buf[i] = false
	}
	return buf
}

// Put returns a buffer to the pool.
func (p *BoolPool) Put(buf []bool) {
	if len(buf) != p.length {
		return
	}
	p.pool.Put(buf) //nolint:staticcheck
}
