package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomgom50/aethelgard-worldgen/orchestrator"
)

func buildTestWorld(t *testing.T) *orchestrator.World {
	t.Helper()
	params := orchestrator.DefaultNewWorldParams(7)
	params.TileResolution = 4
	params.PlateCount = 4
	params.ClimateGridSize = 8

	w, err := orchestrator.RunNewWorld(context.Background(), params, nil, nil)
	require.NoError(t, err)
	return w
}

func TestEncodeDecodeRoundTripsTileData(t *testing.T) {
	w := buildTestWorld(t)
	snap := FromWorld(w)

	data, err := Encode(snap)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, decoded.Version)
	assert.Equal(t, snap.Seed, decoded.Seed)
	assert.Equal(t, snap.Resolution, decoded.Resolution)
	assert.Equal(t, len(snap.Tiles), len(decoded.Tiles))
	assert.Equal(t, snap.Tiles, decoded.Tiles)
	assert.Equal(t, snap.Plates, decoded.Plates)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	snap := V1{Version: CurrentVersion + 1}
	data, err := Encode(snap)
	require.NoError(t, err)

	_, err = Decode(data)
	assert.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a snapshot"))
	assert.Error(t, err)
}

func TestRestoreRebuildsSphereWithSnapshottedTiles(t *testing.T) {
	w := buildTestWorld(t)
	snap := FromWorld(w)

	restored, err := Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, w.Sphere.TileCount(), restored.TileCount())
	assert.Equal(t, w.Sphere.Tiles, restored.Tiles)
}

func TestRestoreRejectsTileCountMismatch(t *testing.T) {
	w := buildTestWorld(t)
	snap := FromWorld(w)
	snap.Tiles = snap.Tiles[:len(snap.Tiles)-1]

	_, err := Restore(snap)
	assert.Error(t, err)
}
