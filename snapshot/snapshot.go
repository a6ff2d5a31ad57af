// Package snapshot encodes and decodes a complete generated world as a
// versioned binary blob (spec.md 6: "a binary snapshot comprising the
// seed, topology parameters, tile array ..., all object tables ..., and
// the climate grid"). It follows the teacher's config/settings.go
// version-tagged-loader pattern (per DESIGN.md's dropped-code note)
// generalized from a JSON config file to a gob-encoded tile snapshot,
// since the spec requires a binary rather than textual format.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/gomgom50/aethelgard-worldgen/climate"
	"github.com/gomgom50/aethelgard-worldgen/features"
	"github.com/gomgom50/aethelgard-worldgen/hydrology"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/orchestrator"
	"github.com/gomgom50/aethelgard-worldgen/tectonics"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// CurrentVersion is the layout version written by Encode. Decode accepts
// every version back to 1 (spec.md 6: "must accept its own previous
// versions back to v1").
const CurrentVersion = 1

// V1 is the version-1 (and, so far, only) snapshot layout.
type V1 struct {
	Version int

	Seed             uint64
	Resolution       int
	PlateCount       int
	ContinentalRatio float64
	ClimateGridSize  int

	Tiles []topology.Tile

	Plates      []tectonics.Plate
	Microplates []tectonics.Microplate

	Hotspots         []features.Hotspot
	Volcanoes        []features.Volcano
	AncientOrogenies []kernel.OrogenyRecord

	Waterbodies []hydrology.Waterbody

	ClimateGrid climate.Grid
}

// FromWorld captures a V1 snapshot from a fully generated World.
func FromWorld(w *orchestrator.World) V1 {
	var grid climate.Grid
	if w.Climate.Grid != nil {
		grid = *w.Climate.Grid
	}
	return V1{
		Version:          CurrentVersion,
		Seed:             w.Params.Seed,
		Resolution:       w.Params.TileResolution,
		PlateCount:       w.Params.PlateCount,
		ContinentalRatio: w.Params.ContinentalRatio,
		ClimateGridSize:  w.Params.ClimateGridSize,
		Tiles:            append([]topology.Tile(nil), w.Sphere.Tiles...),
		Plates:           w.Tectonics.Plates,
		Microplates:      w.Tectonics.Microplates,
		Hotspots:         w.Features.Hotspots,
		Volcanoes:        w.Features.Volcanoes,
		AncientOrogenies: w.Features.AncientOrogenies,
		Waterbodies:      w.Hydrology.Waterbodies,
		ClimateGrid:      grid,
	}
}

// Encode gob-encodes a V1 snapshot.
func Encode(snap V1) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads a snapshot of any version back to v1 and normalizes it to
// the current V1 layout. Today CurrentVersion is 1, so this is a direct
// gob decode; future versions will branch on the leading Version field
// the same way the teacher's config.Settings loader branched on a schema
// version byte before applying defaults for newly introduced fields.
func Decode(data []byte) (V1, error) {
	var snap V1
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return V1{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	if snap.Version == 0 || snap.Version > CurrentVersion {
		return V1{}, fmt.Errorf("snapshot: unsupported version %d", snap.Version)
	}
	return snap, nil
}

// Restore rebuilds a *topology.Sphere from a snapshot: topology
// construction is a pure deterministic function of Resolution (spec.md
// 8 property 1), so Restore rebuilds the neighbor/spatial-index
// structure via topology.Build and then overwrites the freshly built
// tile array with the snapshot's tiles, rather than attempting to
// gob-encode Sphere's unexported neighbor/grid fields directly.
func Restore(snap V1) (*topology.Sphere, error) {
	sphere, err := topology.Build(snap.Resolution)
	if err != nil {
		return nil, fmt.Errorf("snapshot: rebuilding topology at resolution %d: %w", snap.Resolution, err)
	}
	if len(sphere.Tiles) != len(snap.Tiles) {
		return nil, fmt.Errorf("snapshot: tile count mismatch: rebuilt %d, snapshot has %d", len(sphere.Tiles), len(snap.Tiles))
	}
	copy(sphere.Tiles, snap.Tiles)
	return sphere, nil
}
