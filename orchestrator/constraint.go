package orchestrator

import (
	"sort"

	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// lockedValue is a snapshotted property value plus the tolerance band a
// partial lock permits the generating stage to drift within (spec.md
// 4.9 step 3: "clamp/blend the generated value within the tolerance
// band recorded with the lock").
type lockedValue struct {
	level     topology.LockLevel
	value     float64 // scalar properties (elevation); int32 properties reuse this via int conversion
	tolerance float64
}

// ConstraintManager stores per-tile, per-property lock state and the
// snapshot of locked values, enforcing spec.md 4.9's four-step
// pre/execute/post/validate lifecycle around every stage. Lock state is
// never mutated by a stage — only ApplyLock/ClearLock touch it.
type ConstraintManager struct {
	sphere *topology.Sphere
	locks  map[int32]map[Property]*lockedValue
}

// NewConstraintManager binds a manager to a sphere's tile array.
func NewConstraintManager(sphere *topology.Sphere) *ConstraintManager {
	return &ConstraintManager{sphere: sphere, locks: make(map[int32]map[Property]*lockedValue)}
}

// ApplyLock implements spec.md 6's apply_lock(tile, property, level,
// value?): the given value is stored as the locked value, and the tile's
// Locks entry for prop is set to level.
func (cm *ConstraintManager) ApplyLock(tile int32, prop Property, level topology.LockLevel, value float64, tolerance float64) {
	if cm.locks[tile] == nil {
		cm.locks[tile] = make(map[Property]*lockedValue)
	}
	cm.locks[tile][prop] = &lockedValue{level: level, value: value, tolerance: tolerance}
	cm.sphere.Tiles[tile].Locks[prop] = level
}

// ClearLock implements spec.md 6's clear_lock(tile, property).
func (cm *ConstraintManager) ClearLock(tile int32, prop Property) {
	if m, ok := cm.locks[tile]; ok {
		delete(m, prop)
	}
	cm.sphere.Tiles[tile].Locks[prop] = topology.LockFree
}

// LockLevel reports the current lock level for a tile/property pair.
func (cm *ConstraintManager) LockLevel(tile int32, prop Property) topology.LockLevel {
	return cm.sphere.Tiles[tile].Locks[prop]
}

// lockedTiles returns every tile id carrying a non-free lock on prop, in
// ascending tile-id order, so iteration over a Go map never introduces
// run-to-run nondeterminism (spec.md 8 property 1).
func (cm *ConstraintManager) lockedTiles(prop Property) []int32 {
	var out []int32
	for tile, m := range cm.locks {
		if lv, ok := m[prop]; ok && lv.level != topology.LockFree {
			out = append(out, tile)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PreStage implements spec.md 4.9 step 1: snapshot affected tiles'
// values (already captured at ApplyLock time) and load locked values
// into active fields, for every tile with a non-free lock on prop. write
// re-applies a locked value back into the tile before the stage runs.
func (cm *ConstraintManager) PreStage(prop Property, write func(tile int32, value float64)) {
	for _, tile := range cm.lockedTiles(prop) {
		lv := cm.locks[tile][prop]
		write(tile, lv.value)
	}
}

// PostStage implements spec.md 4.9 step 3: for every fully-locked tile,
// restore the locked value verbatim; for every partially-locked tile,
// clamp the generated value to within [locked-tolerance,
// locked+tolerance].
func (cm *ConstraintManager) PostStage(prop Property, read func(tile int32) float64, write func(tile int32, value float64)) {
	for _, tile := range cm.lockedTiles(prop) {
		lv := cm.locks[tile][prop]
		switch lv.level {
		case topology.LockFull:
			write(tile, lv.value)
		case topology.LockPartial:
			generated := read(tile)
			lo, hi := lv.value-lv.tolerance, lv.value+lv.tolerance
			if generated < lo {
				generated = lo
			}
			if generated > hi {
				generated = hi
			}
			write(tile, generated)
		}
	}
}

// Validate implements spec.md 4.9 step 4 for one property: detect field
// instances where a locked value conflicts with the value `check` judges
// invalid (e.g. an elevation lock that leaves no descending neighbor).
// It returns the first conflict found, or nil if none.
func (cm *ConstraintManager) Validate(prop Property, check func(tile int32) (reason string, suggested []string, ok bool)) *ConflictReport {
	for _, tile := range cm.lockedTiles(prop) {
		reason, suggested, ok := check(tile)
		if !ok {
			return &ConflictReport{Tile: tile, Property: prop, Reason: reason, SuggestedActions: suggested}
		}
	}
	return nil
}

// PropagatePlateLock implements spec.md 4.9's "locked plate ⇒ downstream
// boundary/orogeny/elevation treats tile's plate as fixed": any tile
// fully or partially locked on PropertyPlate is treated as locked on
// prop too for the duration of the caller's stage, without mutating the
// stored lock state (a transient view, not a real lock).
func (cm *ConstraintManager) PropagatePlateLock(prop Property) {
	for tile, m := range cm.locks {
		plateLock, ok := m[PropertyPlate]
		if !ok || plateLock.level == topology.LockFree {
			continue
		}
		if _, exists := m[prop]; !exists {
			m[prop] = &lockedValue{level: plateLock.level, value: plateLock.value, tolerance: 0}
		}
	}
}
