package topology

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// geoToCartesian converts (latDeg, lonDeg) to a unit-sphere Cartesian
// position, Y-up, matching the same X/Y/Z convention the teacher used for
// geographic<->Cartesian conversion (core/coordinates.go's
// GeographicToCartesian, here fixed to unit radius since tiles live on the
// unit sphere).
func geoToCartesian(latDeg, lonDeg float64) mgl64.Vec3 {
	lat := latDeg * math.Pi / 180.0
	lon := lonDeg * math.Pi / 180.0
	cosLat := math.Cos(lat)
	return mgl64.Vec3{
		cosLat * math.Cos(lon),
		math.Sin(lat),
		cosLat * math.Sin(lon),
	}
}

// GeoToCartesian exposes geoToCartesian for packages outside topology that
// need to evaluate position-based expressions (noise leaves, climate-grid
// cell centers) at an arbitrary lat/lon rather than an existing tile.
func GeoToCartesian(latDeg, lonDeg float64) mgl64.Vec3 { return geoToCartesian(latDeg, lonDeg) }

// tangentBasis returns an orthonormal (u,v) basis for the tangent plane at
// center, used to order neighbors angularly (TileVertices).
func tangentBasis(center mgl64.Vec3) (u, v mgl64.Vec3) {
	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(center.Dot(up)) > 0.9 {
		up = mgl64.Vec3{1, 0, 0}
	}
	u = up.Cross(center).Normalize()
	v = center.Cross(u).Normalize()
	return u, v
}

// angleOf returns the angle of d projected into the (u,v) tangent basis, in
// [0, 2*pi).
func angleOf(d, u, v mgl64.Vec3) float64 {
	x := d.Dot(u)
	y := d.Dot(v)
	a := math.Atan2(y, x)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// OutwardNormal returns the tile's outward unit normal (its own position,
// since tiles live on the unit sphere) — a named helper so callers (head
// tile detection, velocity dot products) read as spec.md 4.5 step 4 rather
// than a bare field access.
func (s *Sphere) OutwardNormal(t TileID) mgl64.Vec3 { return s.Tiles[t].Pos }

// TangentBasis exposes tangentBasis for packages that need a tile's local
// frame.
func (s *Sphere) TangentBasis(t TileID) (u, v mgl64.Vec3) {
	return tangentBasis(s.Tiles[t].Pos)
}
