package climate

import "github.com/gomgom50/aethelgard-worldgen/topology"

// Result is the climate pipeline's output: the coarse grid (kept around
// for inspection/snapshotting) plus the biome rule table that was applied,
// so callers can re-evaluate rules without rebuilding them.
type Result struct {
	Grid  *Grid
	Rules []BiomeRule
}

// Run implements spec.md 4.8's full sequence: bin tiles onto the coarse
// grid, compute distance-to-sea, integrate saldo, classify latitude
// zones, sweep continentality, synthesize temperature/rainfall in two
// noise-modulated passes, then bilinearly sample the result onto every
// tile and run Köppen/Holdridge/biome classification per tile.
func Run(sphere *topology.Sphere, params Params) Result {
	grid := BinTiles(sphere, params.GridSize)

	ComputeDistanceToSea(grid)
	ComputeSaldo(grid)
	ClassifyZones(grid)
	ComputeContinentality(grid)

	PostProcess(grid, params, params.BaseSeed, 0)
	PostProcess(grid, params, params.BaseSeed, 1)

	floraSrc := holdridgeNoiseSource(params.BaseSeed)
	rules := DefaultBiomeRules()

	for i := range sphere.Tiles {
		t := &sphere.Tiles[i]
		SampleTile(grid, t)
		ClassifyKoppen(t)
		ClassifyHoldridge(t, floraSrc)
		ClassifyBiome(t, rules)
	}

	return Result{Grid: grid, Rules: rules}
}
