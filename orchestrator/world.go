package orchestrator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gomgom50/aethelgard-worldgen/climate"
	"github.com/gomgom50/aethelgard-worldgen/features"
	"github.com/gomgom50/aethelgard-worldgen/hydrology"
	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/tectonics"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// World bundles the full generated state — the tile sphere plus every
// stage's object tables — as spec.md 6's persisted-state shape names
// ("tile array ... all object tables ... the climate grid").
// snapshot.FromWorld copies its tiles, object tables, and climate grid
// into the snapshot that the snapshot package encodes.
type World struct {
	Sphere *topology.Sphere

	Tectonics *tectonics.Result
	Features  features.Result
	Hydrology hydrology.Result
	Climate   climate.Result

	Params NewWorldParams
	CM     *ConstraintManager
}

// checkCancelled polls ctx the way spec.md 5 requires stages to poll a
// cancellation flag between inner-loop chunks.
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return &Error{Kind: ErrCancelled, Message: "cancelled"}
	default:
		return nil
	}
}

// BuildStages constructs the five SPEC_FULL.md stages (topology,
// tectonics, features, hydrology, climate) as orchestrator.Stages wired
// against a shared World, in the dependency order spec.md 4.2-4.8
// already fixes. Only the tectonics stage runs the constraint manager's
// pre/post steps: it propagates plate locks to elevation, loads locked
// elevations before running, and restores them afterward. The hydrology
// stage propagates plate locks to the hydrology property and validates
// river sources against w.CM; the features and climate stages do not
// consult w.CM. Stages read w.CM rather than closing
// over a local alias because the constraint manager isn't constructed
// until the topology stage runs.
func BuildStages(w *World) []Stage {
	topologyStage := &FuncStage{
		StageName: "topology",
		DependsOn: nil,
		Locks:     nil,
		RunFunc: func(ctx context.Context, progress func(done, total int)) error {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			sphere, err := topology.Build(w.Params.TileResolution)
			if err != nil {
				return &Error{Kind: ErrTopologyConstruction, Stage: "topology", Message: err.Error(), Cause: err}
			}
			w.Sphere = sphere
			w.CM = NewConstraintManager(sphere)
			progress(sphere.TileCount(), sphere.TileCount())
			return nil
		},
	}

	tectonicsStage := &FuncStage{
		StageName: "tectonics",
		DependsOn: []string{"topology"},
		Locks:     []Property{PropertyPlate, PropertyBoundary, PropertyCrust, PropertyElevation},
		RunFunc: func(ctx context.Context, progress func(done, total int)) error {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			w.CM.PropagatePlateLock(PropertyElevation)
			w.CM.PreStage(PropertyElevation, func(tile int32, value float64) {
				w.Sphere.Tiles[tile].Elevation = float32(value)
			})

			params := tectonics.DefaultParams(w.Params.Seed, w.Params.PlateCount, w.Params.ContinentalRatio)
			result, _, err := tectonics.Run(w.Sphere, params)
			if err != nil {
				return &Error{Kind: ErrStageValidation, Stage: "tectonics", Message: err.Error(), Cause: err}
			}
			w.Tectonics = result

			w.CM.PostStage(PropertyElevation,
				func(tile int32) float64 { return float64(w.Sphere.Tiles[tile].Elevation) },
				func(tile int32, value float64) { w.Sphere.Tiles[tile].Elevation = float32(value) },
			)
			progress(w.Sphere.TileCount(), w.Sphere.TileCount())
			return nil
		},
		ValidateFunc: func() *ConflictReport {
			return w.CM.Validate(PropertyPlate, func(tile int32) (string, []string, bool) {
				return "", nil, true // plate coverage/symmetry already checked inside tectonics.Run's retry loop
			})
		},
	}

	featuresStage := &FuncStage{
		StageName: "features",
		DependsOn: []string{"tectonics"},
		Locks:     []Property{PropertyRock, PropertyElevation},
		RunFunc: func(ctx context.Context, progress func(done, total int)) error {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			src := rng.New(w.Params.Seed, 2)
			result := features.Run(w.Sphere, w.Tectonics.Plates, features.DefaultParams(w.Params.Seed), &src)
			w.Features = result
			progress(w.Sphere.TileCount(), w.Sphere.TileCount())
			return nil
		},
	}

	hydrologyStage := &FuncStage{
		StageName: "hydrology",
		DependsOn: []string{"features"},
		Locks:     []Property{PropertyHydrology, PropertyElevation},
		RunFunc: func(ctx context.Context, progress func(done, total int)) error {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			w.CM.PropagatePlateLock(PropertyHydrology)
			hydParams := hydrology.DefaultParams(w.Params.Seed)
			result := hydrology.Run(w.Sphere, hydParams, w.Params.Seed)
			w.Hydrology = result
			progress(w.Sphere.TileCount(), w.Sphere.TileCount())
			return nil
		},
		ValidateFunc: func() *ConflictReport {
			return w.CM.Validate(PropertyHydrology, func(tile int32) (string, []string, bool) {
				t := &w.Sphere.Tiles[tile]
				if !t.HasFlag(topology.FlagHasRiver) {
					return "", nil, true
				}
				nbrs := w.Sphere.Neighbors(topology.TileID(tile))
				for _, n := range nbrs {
					if w.Sphere.Tiles[n].Elevation < t.Elevation {
						return "", nil, true
					}
				}
				return "source lacks descending neighbor", []string{"skip", "carve", "relax"}, false
			})
		},
	}

	climateStage := &FuncStage{
		StageName: "climate",
		DependsOn: []string{"hydrology"},
		Locks:     []Property{PropertyClimate, PropertyBiome},
		RunFunc: func(ctx context.Context, progress func(done, total int)) error {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			climParams := climate.DefaultParams(w.Params.Seed)
			climParams.GridSize = w.Params.ClimateGridSize
			w.Climate = climate.Run(w.Sphere, climParams)
			refineSrc := rng.New(w.Params.Seed, 3).Fork("rock-refine")
			features.RefineWithClimate(w.Sphere, features.DefaultRockRules(), &refineSrc)
			progress(w.Sphere.TileCount(), w.Sphere.TileCount())
			return nil
		},
	}

	return []Stage{topologyStage, tectonicsStage, featuresStage, hydrologyStage, climateStage}
}

// RunNewWorld implements spec.md 6's new_world(params) + run(stages):
// builds the five stages, registers them, subscribes obs if non-nil, and
// runs the full pipeline in dependency order.
func RunNewWorld(ctx context.Context, params NewWorldParams, log *logrus.Logger, obs chan<- StageEvent) (*World, error) {
	w := &World{Params: params}
	orch := New(log)
	if obs != nil {
		orch.Subscribe(obs)
	}
	for _, s := range BuildStages(w) {
		orch.Register(s)
	}
	err := orch.Run(ctx, []string{"topology", "tectonics", "features", "hydrology", "climate"})
	return w, err
}
