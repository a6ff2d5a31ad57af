package hydrology

import (
	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// Result is the full output of one hydrology pipeline run (spec.md 4.7).
type Result struct {
	Waterbodies []Waterbody
}

// Run executes spec.md 4.7 in order: flow accumulation, lakes, rivers,
// fjords, glaciers, and the final waterbody pass.
func Run(sphere *topology.Sphere, params Params, baseSeed uint64) Result {
	root := rng.New(baseSeed, 1)

	ComputeFlowAccumulation(sphere, params)

	lakeSrc := root.Fork("hydrology-lakes")
	GenerateLakes(sphere, params, &lakeSrc)

	CarveRivers(sphere, params)

	fjordSrc := root.Fork("hydrology-fjords")
	GenerateFjords(sphere, params, &fjordSrc)

	glacierSrc := root.Fork("hydrology-glaciers")
	GenerateGlaciers(sphere, params, &glacierSrc)

	waterbodies := AssignWaterbodies(sphere)

	return Result{Waterbodies: waterbodies}
}
