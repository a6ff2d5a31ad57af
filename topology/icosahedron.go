package topology

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// icosahedronVertices are the 12 canonical icosahedron vertices, unit
// golden-ratio construction. Grounded directly on the teacher's
// geometry.go:generateIcosphere seed table (same coordinates, same vertex
// ordering), since the Goldberg construction starts from the identical base
// solid before diverging into barycentric-lattice subdivision instead of
// triangle quadrisection.
func icosahedronVertices() [12]mgl64.Vec3 {
	t := (1.0 + math.Sqrt(5.0)) / 2.0
	verts := [12]mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}
	return verts
}

// icosahedronFaces lists the 20 triangular faces as vertex index triples,
// identical ordering to geometry.go:generateIcosphere's indices slice.
func icosahedronFaces() [20][3]int {
	flat := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	var faces [20][3]int
	for i := 0; i < 20; i++ {
		faces[i] = [3]int{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return faces
}

// northPoleAlignment returns a rotation that brings the centroid of face 0
// to the north pole (face-centered orientation, spec.md 4.2 step 1).
func northPoleAlignment(verts [12]mgl64.Vec3, faces [20][3]int) mgl64.Mat3 {
	f := faces[0]
	centroid := verts[f[0]].Add(verts[f[1]]).Add(verts[f[2]])
	centroid = centroid.Normalize()

	north := mgl64.Vec3{0, 1, 0}
	axis := centroid.Cross(north)
	axisLen := axis.Len()
	if axisLen < 1e-12 {
		return mgl64.Ident3()
	}
	axis = axis.Mul(1.0 / axisLen)
	cosTheta := centroid.Dot(north)
	sinTheta := axisLen
	theta := math.Atan2(sinTheta, cosTheta)
	return mgl64.Rotate3D(theta, axis)
}
