package topology

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// goldbergPoints enumerates the 10n²+2 tile positions of a resolution-n
// Goldberg polyhedron by walking the barycentric lattice (i,j), 0<=j<=i<=n,
// over each of the 20 icosahedron faces and projecting onto the unit
// sphere. Coincident points on shared edges/vertices are deduplicated by a
// quantized key. This replaces the teacher's geometry.go:subdivide
// (triangle quadrisection, which only ever produces 4x tile counts and a
// triangle mesh) with the lattice enumeration the spec requires for a true
// Goldberg tiling with 5/6-valent neighborhoods.
func goldbergPoints(n int, rotation mgl64.Mat3) ([]mgl64.Vec3, []bool, []uint8) {
	verts := icosahedronVertices()
	faces := icosahedronFaces()

	seen := make(map[[3]int]int) // quantized (x,y,z) -> tile index
	var positions []mgl64.Vec3
	var pentagon []bool
	var faceIDs []uint8

	const quantScale = 1e6

	quantize := func(p mgl64.Vec3) [3]int {
		return [3]int{
			int(math.Round(p[0] * quantScale)),
			int(math.Round(p[1] * quantScale)),
			int(math.Round(p[2] * quantScale)),
		}
	}

	addPoint := func(p mgl64.Vec3, isPentagon bool, faceID uint8) {
		p = p.Normalize()
		p = rotation.Mul3x1(p)
		key := quantize(p)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = len(positions)
		positions = append(positions, p)
		pentagon = append(pentagon, isPentagon)
		faceIDs = append(faceIDs, faceID)
	}

	for fi, f := range faces {
		a, b, c := verts[f[0]], verts[f[1]], verts[f[2]]
		for i := 0; i <= n; i++ {
			for j := 0; j <= i; j++ {
				// Barycentric weights over the (a,b,c) triangle using the
				// (i,j) lattice coordinate: u along a->b, v along a->c,
				// matching spec.md 4.2 step 2's enumeration order.
				u := float64(i-j) / float64(n)
				v := float64(j) / float64(n)
				w := 1.0 - u - v
				p := a.Mul(w).Add(b.Mul(u)).Add(c.Mul(v))
				addPoint(p, false, uint8(fi))
			}
		}
	}

	// The 12 icosahedron vertices are exactly the 12 pentagon centers;
	// mark them after dedup by re-quantizing the rotated vertex positions.
	for _, v := range verts {
		key := quantize(rotation.Mul3x1(v.Normalize()))
		if idx, ok := seen[key]; ok {
			pentagon[idx] = true
		}
	}

	return positions, pentagon, faceIDs
}

// cartesianToLatLon converts a unit-sphere position to latitude/longitude
// in degrees, Y-up (matching the teacher's Y-up convention in types.go and
// geometry.go's polar-flattening step).
func cartesianToLatLon(p mgl64.Vec3) (latDeg, lonDeg float64) {
	lat := math.Asin(clampUnit(p.Y()))
	lon := math.Atan2(p.Z(), p.X())
	return lat * 180.0 / math.Pi, lon * 180.0 / math.Pi
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
