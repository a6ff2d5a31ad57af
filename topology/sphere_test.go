package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileCountAndPentagons(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		sphere, err := Build(n)
		require.NoError(t, err, "resolution %d", n)

		want := 10*n*n + 2
		assert.Equal(t, want, sphere.TileCount(), "resolution %d", n)

		pentagons := 0
		hexagons := 0
		for _, tile := range sphere.Tiles {
			if tile.Pentagon {
				pentagons++
			} else {
				hexagons++
			}
		}
		assert.Equal(t, 12, pentagons, "resolution %d", n)
		assert.Equal(t, want-12, hexagons, "resolution %d", n)
	}
}

func TestNeighborSymmetryAndCount(t *testing.T) {
	sphere, err := Build(2)
	require.NoError(t, err)

	for i := range sphere.Tiles {
		nbrs := sphere.Neighbors(TileID(i))
		want := 6
		if sphere.Tiles[i].Pentagon {
			want = 5
		}
		assert.Len(t, nbrs, want, "tile %d", i)

		for _, n := range nbrs {
			found := false
			for _, back := range sphere.Neighbors(n) {
				if int(back) == i {
					found = true
					break
				}
			}
			assert.True(t, found, "neighbor asymmetry: tile %d -> %d", i, n)
		}
	}
}

func TestTileAtReturnsNearestTile(t *testing.T) {
	sphere, err := Build(3)
	require.NoError(t, err)

	for _, tile := range sphere.Tiles {
		got := sphere.TileAt(tile.LatDeg, tile.LonDeg)
		assert.Equal(t, tile.Pos, sphere.Tiles[got].Pos)
	}
}

func TestBuildRejectsInvalidResolution(t *testing.T) {
	_, err := Build(0)
	assert.Error(t, err)
}
