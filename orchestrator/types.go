// Package orchestrator drives generation stages in dependency order,
// enforces per-tile property locks through the constraint manager, and
// reports progress to observers (spec.md 4.9, 5, 6, 7). The teacher has
// no stage/constraint concept at all — its simulation mutates a single
// global planet every tick — so the sequencing and locking model here is
// new, grounded in method on spec.md's explicit lifecycle description;
// only the driver-loop shape (sequential stages, periodic progress
// reporting) and the websocket broadcast pattern are grounded on the
// teacher's main.go and server.go (see wsserver).
package orchestrator

import (
	"fmt"
	"time"
)

// Property indexes topology.Tile.Locks; shared meaning with that array.
type Property uint8

const (
	PropertyPlate Property = iota
	PropertyElevation
	PropertyBoundary
	PropertyCrust
	PropertyRock
	PropertyHydrology
	PropertyClimate
	PropertyBiome
	propertyCount
)

func (p Property) String() string {
	names := [...]string{"plate", "elevation", "boundary", "crust", "rock", "hydrology", "climate", "biome"}
	if int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// StageState is a stage's lifecycle state, reported in every StageEvent
// (spec.md 6: "state ∈ {not_started, running, paused, completed,
// skipped, failed}").
type StageState uint8

const (
	StateNotStarted StageState = iota
	StateRunning
	StatePaused
	StateCompleted
	StateSkipped
	StateFailed
)

func (s StageState) String() string {
	names := [...]string{"not_started", "running", "paused", "completed", "skipped", "failed"}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// StageEvent is the orchestrator's progress stream unit (spec.md 6).
type StageEvent struct {
	Stage      string
	State      StageState
	TilesDone  int
	TilesTotal int
	Elapsed    time.Duration
}

// ConflictReport is the structured diagnostic surfaced on a constraint
// conflict (spec.md 7: "{tile, property, reason, suggested_actions}").
type ConflictReport struct {
	Tile             int32
	Property         Property
	Reason           string
	SuggestedActions []string
}

// Kind distinguishes the six error kinds spec.md 7 names, each with a
// distinct recovery path.
type Kind uint8

const (
	ErrInvalidParameter Kind = iota
	ErrTopologyConstruction
	ErrStageValidation
	ErrConstraintConflict
	ErrCancelled
	ErrInternalAssertion
)

func (k Kind) String() string {
	names := [...]string{
		"invalid_parameter", "topology_construction", "stage_validation",
		"constraint_conflict", "cancelled", "internal_assertion",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Error wraps a Kind with a stage name and a structured diagnostic,
// matching spec.md 7's "worker threads record structured diagnostics
// that the join step inspects before continuing."
type Error struct {
	Kind     Kind
	Stage    string
	Message  string
	Conflict *ConflictReport // set only for ErrConstraintConflict
	Cause    error
}

func (e *Error) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: stage %q: %s", e.Kind, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewWorldParams enumerates spec.md 6's new_world(params) surface.
type NewWorldParams struct {
	TileResolution    int
	SeaLevel          float64
	Seed              uint64
	PlateCount        int
	ContinentalRatio  float64
	NoiseStackA       NoiseParams
	NoiseStackB       NoiseParams
	DistancePenalty   float64
	Warping           float64
	VotingThreshold   float64 // default 0.525
	CrustAgeSpread    float64 // default 2.5
	LandSeedDensity   float64
	CoastalBoostRange float64
	CoastalBoostHeight float64
	ClimateGridSize   int
	StageEnable       map[string]bool
}

// NoiseParams is one of the two named noise stacks (A and B) spec.md 6
// mentions, each independently tunable.
type NoiseParams struct {
	Scale       float64
	Persistence float64
	Lacunarity  float64
	Weight      float64
}

// DefaultNewWorldParams returns spec.md's documented defaults where given,
// and reasonable values for the rest.
func DefaultNewWorldParams(seed uint64) NewWorldParams {
	return NewWorldParams{
		TileResolution:     40,
		SeaLevel:           0,
		Seed:               seed,
		PlateCount:         12,
		ContinentalRatio:   0.4,
		NoiseStackA:        NoiseParams{Scale: 2.0, Persistence: 0.5, Lacunarity: 2.0, Weight: 1.0},
		NoiseStackB:        NoiseParams{Scale: 4.0, Persistence: 0.45, Lacunarity: 2.1, Weight: 0.5},
		DistancePenalty:    0.15,
		Warping:            0.05,
		VotingThreshold:    0.525,
		CrustAgeSpread:     2.5,
		LandSeedDensity:    0.02,
		CoastalBoostRange:  2,
		CoastalBoostHeight: 150,
		ClimateGridSize:    64,
		StageEnable:        map[string]bool{},
	}
}
