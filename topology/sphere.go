package topology

import (
	"fmt"
	"sort"
)

// Sphere is the constructed hex-sphere topology: a contiguous tile array
// plus its neighbor table and spatial index. Every later generation stage
// reads Sphere.Tiles and writes its own fields back into the same slice —
// Sphere itself never allocates a second copy of the tile array.
type Sphere struct {
	Tiles     []Tile
	neighbors [][]TileID
	grid      *spatialGrid
	n         int
}

// Resolution returns the Goldberg resolution n used to build this sphere;
// TileCount() == 10*n*n + 2.
func (s *Sphere) Resolution() int { return s.n }

// TileCount returns len(Tiles).
func (s *Sphere) TileCount() int { return len(s.Tiles) }

// Neighbors returns tile t's ordered neighbor list; the slice must not be
// mutated by callers.
func (s *Sphere) Neighbors(t TileID) []TileID { return s.neighbors[t] }

// Build constructs a resolution-n Goldberg polyhedron: icosahedron seed,
// face-centered orientation, barycentric lattice enumeration with dedup,
// spatial grid, k-NN neighbor table, and Lloyd relaxation (spec.md 4.2).
func Build(n int) (*Sphere, error) {
	if n < 1 {
		return nil, fmt.Errorf("topology: resolution must be >= 1, got %d", n)
	}

	verts := icosahedronVertices()
	faces := icosahedronFaces()
	rotation := northPoleAlignment(verts, faces)

	positions, pentagonFlags, faceIDs := goldbergPoints(n, rotation)

	want := 10*n*n + 2
	if len(positions) != want {
		return nil, fmt.Errorf("topology: expected %d tiles at resolution %d, got %d (construction failure)",
			want, n, len(positions))
	}

	tiles := make([]Tile, len(positions))
	for i, p := range positions {
		lat, lon := cartesianToLatLon(p)
		tiles[i] = Tile{
			Pos:          p,
			LatDeg:       lat,
			LonDeg:       lon,
			Pentagon:     pentagonFlags[i],
			FaceID:       faceIDs[i],
			PlateID:      -1,
			MicroplateID: -1,
			WaterbodyID:  -1,
			RiverFlowDir: -1,
			OrogenyID:    -1,
			HotspotID:    -1,
			VolcanoID:    -1,
		}
		if pentagonFlags[i] {
			tiles[i].SetFlag(FlagPentagon, true)
		}
	}

	pentagonCount := 0
	for _, p := range pentagonFlags {
		if p {
			pentagonCount++
		}
	}
	if pentagonCount != 12 {
		return nil, fmt.Errorf("topology: construction failure, expected 12 pentagons, got %d", pentagonCount)
	}

	neighbors, err := lloydRelax(tiles)
	if err != nil {
		return nil, fmt.Errorf("topology: neighbor construction failed: %w", err)
	}

	for i := range neighbors {
		want := 6
		if tiles[i].Pentagon {
			want = 5
		}
		if len(neighbors[i]) != want {
			return nil, fmt.Errorf("topology: construction failure, tile %d has %d neighbors, want %d",
				i, len(neighbors[i]), want)
		}
	}

	grid := newSpatialGrid()
	grid.build(tiles)

	return &Sphere{Tiles: tiles, neighbors: neighbors, grid: grid, n: n}, nil
}

// TileAt returns the unique tile containing (latDeg, lonDeg), by nearest
// chord distance among spatial-grid candidates, widening the search ring
// until at least one candidate is found (spec.md 4.2 contract).
func (s *Sphere) TileAt(latDeg, lonDeg float64) TileID {
	ring := 1
	for {
		cands := s.grid.candidatesNear(latDeg, lonDeg, ring)
		if len(cands) > 0 {
			p := geoToCartesian(latDeg, lonDeg)
			best := cands[0]
			bestDist := chordDistSq(p, s.Tiles[best].Pos)
			for _, c := range cands[1:] {
				d := chordDistSq(p, s.Tiles[c].Pos)
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			return best
		}
		ring++
		if ring > 90 {
			return -1
		}
	}
}

// TileVertices returns tile t's polygon corners, ordered CCW in the tangent
// plane, computed as the normalized centroids of the triangle fan formed by t and
// each pair of angularly-adjacent neighbors (for rendering/export, spec.md
// 4.2 contract).
func (s *Sphere) TileVertices(t TileID) []float64corner {
	center := s.Tiles[t].Pos
	nbrs := s.neighbors[t]
	type ang struct {
		id  TileID
		rad float64
	}
	tangentU, tangentV := tangentBasis(center)
	angs := make([]ang, len(nbrs))
	for i, n := range nbrs {
		d := s.Tiles[n].Pos.Sub(center)
		angs[i] = ang{n, angleOf(d, tangentU, tangentV)}
	}
	sort.Slice(angs, func(a, b int) bool { return angs[a].rad < angs[b].rad })

	corners := make([]float64corner, 0, len(angs))
	for i := range angs {
		j := (i + 1) % len(angs)
		a := s.Tiles[angs[i].id].Pos
		b := s.Tiles[angs[j].id].Pos
		corner := center.Add(a).Add(b).Normalize()
		corners = append(corners, float64corner{corner.X(), corner.Y(), corner.Z()})
	}
	return corners
}

// float64corner is a plain (x,y,z) export point; kept distinct from
// mgl64.Vec3 so rendering/export consumers don't need the mathgl import.
type float64corner struct{ X, Y, Z float64 }
