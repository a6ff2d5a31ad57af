package tectonics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// tangentPair returns two orthonormal vectors tangent to the sphere at
// center, grounded on the teacher's generateRealisticVelocity (plates.go):
// a cross product with a non-parallel reference axis, then a second tangent
// perpendicular to both.
func tangentPair(center mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(center.Dot(up)) > 0.9 {
		up = mgl64.Vec3{1, 0, 0}
	}
	t1 := up.Cross(center).Normalize()
	t2 := center.Cross(t1).Normalize()
	return t1, t2
}

// AssignVelocities computes each plate's weighted centroid and a random
// tangent velocity of speed in [0.2, 1.0] (spec.md 4.5 step 4), forked per
// plate so re-running with a different base seed changes every plate's
// heading independently (scenario S2).
func AssignVelocities(sphere *topology.Sphere, plates []Plate, src *rng.Source) {
	sums := make([]mgl64.Vec3, len(plates))
	counts := make([]int, len(plates))
	for i := range sphere.Tiles {
		p := sphere.Tiles[i].PlateID
		if p < 0 || int(p) >= len(plates) {
			continue
		}
		sums[p] = sums[p].Add(sphere.Tiles[i].Pos)
		counts[p]++
	}

	for i := range plates {
		if counts[i] > 0 {
			plates[i].Center = sums[i].Mul(1.0 / float64(counts[i])).Normalize()
		}

		plateSrc := src.Fork(fmt.Sprintf("plate-velocity-%d", plates[i].ID))
		t1, t2 := tangentPair(plates[i].Center)
		speed := plateSrc.NextRange(0.2, 1.0)
		angle := plateSrc.NextRange(0, 2*math.Pi)
		vel := t1.Mul(speed * math.Cos(angle)).Add(t2.Mul(speed * math.Sin(angle)))
		plates[i].Velocity = vel
		plates[i].Speed = speed
	}
}

// HeadTiles returns, for a plate, the boundary tiles whose outward normal
// aligns with the plate's velocity (spec.md 4.5 step 4: "leading edge").
func HeadTiles(sphere *topology.Sphere, plate Plate) []topology.TileID {
	var heads []topology.TileID
	for i := range sphere.Tiles {
		t := topology.TileID(i)
		if sphere.Tiles[i].PlateID != plate.ID {
			continue
		}
		if !sphere.Tiles[i].HasFlag(topology.FlagBoundary) {
			continue
		}
		normal := sphere.OutwardNormal(t)
		if normal.Dot(plate.Velocity) > 0 {
			heads = append(heads, t)
		}
	}
	return heads
}
