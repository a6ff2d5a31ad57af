package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomgom50/aethelgard-worldgen/topology"
)

func TestTopoSortRespectsDependencies(t *testing.T) {
	o := New(nil)
	o.Register(&FuncStage{StageName: "a", RunFunc: func(context.Context, func(int, int)) error { return nil }})
	o.Register(&FuncStage{StageName: "b", DependsOn: []string{"a"}, RunFunc: func(context.Context, func(int, int)) error { return nil }})
	o.Register(&FuncStage{StageName: "c", DependsOn: []string{"b", "a"}, RunFunc: func(context.Context, func(int, int)) error { return nil }})

	order, err := o.topoSort([]string{"c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestTopoSortDetectsCycle(t *testing.T) {
	o := New(nil)
	o.Register(&FuncStage{StageName: "a", DependsOn: []string{"b"}})
	o.Register(&FuncStage{StageName: "b", DependsOn: []string{"a"}})

	_, err := o.topoSort([]string{"a"})
	require.Error(t, err)
}

func TestRunEmitsCompletedEventsInOrder(t *testing.T) {
	o := New(nil)
	var ran []string
	o.Register(&FuncStage{
		StageName: "first",
		RunFunc: func(context.Context, func(int, int)) error {
			ran = append(ran, "first")
			return nil
		},
	})
	o.Register(&FuncStage{
		StageName: "second",
		DependsOn: []string{"first"},
		RunFunc: func(context.Context, func(int, int)) error {
			ran = append(ran, "second")
			return nil
		},
	})

	events := make(chan StageEvent, 16)
	o.Subscribe(events)

	err := o.Run(context.Background(), []string{"second"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ran)
	assert.Equal(t, StateCompleted, o.State("first"))
	assert.Equal(t, StateCompleted, o.State("second"))
}

func TestRunPausesOnConstraintConflictWithoutRetry(t *testing.T) {
	o := New(nil)
	attempts := 0
	o.Register(&FuncStage{
		StageName: "flaky",
		RunFunc: func(context.Context, func(int, int)) error {
			attempts++
			return nil
		},
		ValidateFunc: func() *ConflictReport {
			return &ConflictReport{Tile: 0, Property: PropertyElevation, Reason: "always fails"}
		},
	})

	err := o.Run(context.Background(), []string{"flaky"})
	require.Error(t, err)
	assert.Equal(t, StatePaused, o.State("flaky"))
	assert.Equal(t, 1, attempts, "a constraint conflict pauses immediately rather than retrying")
}

func TestConstraintManagerFullLockRestoresValueAfterPostStage(t *testing.T) {
	sphere, err := topology.Build(4)
	require.NoError(t, err)
	cm := NewConstraintManager(sphere)

	tile := int32(0)
	sphere.Tiles[tile].Elevation = 500
	cm.ApplyLock(tile, PropertyElevation, topology.LockFull, 500, 0)

	// Simulate a stage mutating elevation away from the locked value.
	sphere.Tiles[tile].Elevation = 9999

	cm.PostStage(PropertyElevation,
		func(id int32) float64 { return float64(sphere.Tiles[id].Elevation) },
		func(id int32, v float64) { sphere.Tiles[id].Elevation = float32(v) },
	)

	assert.Equal(t, float32(500), sphere.Tiles[tile].Elevation)
}

func TestConstraintManagerPartialLockClampsWithinTolerance(t *testing.T) {
	sphere, err := topology.Build(4)
	require.NoError(t, err)
	cm := NewConstraintManager(sphere)

	tile := int32(1)
	cm.ApplyLock(tile, PropertyElevation, topology.LockPartial, 100, 20)
	sphere.Tiles[tile].Elevation = 500 // far outside [80,120]

	cm.PostStage(PropertyElevation,
		func(id int32) float64 { return float64(sphere.Tiles[id].Elevation) },
		func(id int32, v float64) { sphere.Tiles[id].Elevation = float32(v) },
	)

	assert.Equal(t, float32(120), sphere.Tiles[tile].Elevation)
}

func TestConstraintManagerValidateFindsFirstConflictInTileOrder(t *testing.T) {
	sphere, err := topology.Build(4)
	require.NoError(t, err)
	cm := NewConstraintManager(sphere)

	cm.ApplyLock(5, PropertyElevation, topology.LockFull, 10, 0)
	cm.ApplyLock(2, PropertyElevation, topology.LockFull, 10, 0)

	report := cm.Validate(PropertyElevation, func(tile int32) (string, []string, bool) {
		return "bad", []string{"skip"}, false
	})
	require.NotNil(t, report)
	assert.Equal(t, int32(2), report.Tile, "conflicts resolve in ascending tile-id order for determinism")
}

func TestPropagatePlateLockAppliesToDownstreamProperty(t *testing.T) {
	sphere, err := topology.Build(4)
	require.NoError(t, err)
	cm := NewConstraintManager(sphere)

	cm.ApplyLock(3, PropertyPlate, topology.LockFull, 2, 0)
	cm.PropagatePlateLock(PropertyElevation)

	found := false
	for _, tile := range cm.lockedTiles(PropertyElevation) {
		if tile == 3 {
			found = true
		}
	}
	assert.True(t, found, "a plate-locked tile should be transiently treated as elevation-locked too")
}

func TestRunNewWorldProducesAFullyClassifiedWorld(t *testing.T) {
	params := DefaultNewWorldParams(99)
	params.TileResolution = 6
	params.PlateCount = 6
	params.ClimateGridSize = 16

	w, err := RunNewWorld(context.Background(), params, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, w.Sphere)
	assert.Equal(t, 10*6*6+2, w.Sphere.TileCount())
	assert.NotEmpty(t, w.Tectonics.Plates)
}
