package kernel

import "math"

// LayerAction is the operation a stamper layer applies to each affected
// tile's field value (spec.md 4.3: "add, set, max, min, smoothstep toward
// target").
type LayerAction uint8

const (
	ActionAdd LayerAction = iota
	ActionSet
	ActionMax
	ActionMin
	ActionSmoothstep
)

// Layer is one concentric ring of a stamp: tiles within Radius hops of the
// stamp center get Action applied, scaled by a falloff that fades from 1
// at the center to 0 at Radius.
type Layer struct {
	Radius int
	Action LayerAction
	Target float64
	// FlagBits, when non-zero, is OR'd into a tile's flag word whenever
	// the layer's effective value exceeds FlagThreshold (spec.md 4.3:
	// "layers may write tile flags beyond thresholds").
	FlagBits      uint32
	FlagThreshold float64
}

func falloff(dist, radius int) float64 {
	if radius <= 0 {
		return 1
	}
	t := 1.0 - float64(dist)/float64(radius)
	if t < 0 {
		return 0
	}
	return t
}

func smoothstep(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func applyAction(action LayerAction, current, target, strength float64) float64 {
	switch action {
	case ActionAdd:
		return current + target*strength
	case ActionSet:
		return current + (target-current)*strength
	case ActionMax:
		return math.Max(current, target*strength)
	case ActionMin:
		return math.Min(current, target*strength)
	case ActionSmoothstep:
		return current + (target-current)*smoothstep(strength)
	default:
		return current
	}
}

// Stamp applies layers to field, indexed by tile id, using the hop-distance
// map produced by a selector (AreaSelect, BFS) as the per-tile distance
// from the stamp center. setFlag is optional; pass nil if the stamp has no
// flag-writing layers.
func Stamp(field []float64, distance map[int32]int, layers []Layer, setFlag func(tile int32, bits uint32)) {
	for tile, dist := range distance {
		for _, layer := range layers {
			if dist > layer.Radius {
				continue
			}
			strength := falloff(dist, layer.Radius)
			newVal := applyAction(layer.Action, field[tile], layer.Target, strength)
			field[tile] = newVal
			if layer.FlagBits != 0 && setFlag != nil && newVal >= layer.FlagThreshold {
				setFlag(tile, layer.FlagBits)
			}
		}
	}
}

// OrogenySpine orders a boundary tile set into a path (spec.md 4.3) by
// walking from start to the first not-yet-visited neighbor, in neighbors'
// order, that belongs to `along`, and stopping when the current tile has
// none. `along` is typically a boundary tile set the tectonics pipeline
// already computed. The walk follows no heading and never splits into
// segments; tiles of `along` that this single walk does not reach are left
// out of the spine.
func OrogenySpine(start int32, along map[int32]bool, neighbors NeighborFunc) []int32 {
	visited := map[int32]bool{start: true}
	spine := []int32{start}
	current := start

	for {
		var next int32 = -1
		for _, n := range neighbors(current) {
			if along[n] && !visited[n] {
				next = n
				break
			}
		}
		if next == -1 {
			break
		}
		visited[next] = true
		spine = append(spine, next)
		current = next
	}
	return spine
}

// OrogenyRecord is the persisted output of an orogeny stamp, referenced by
// tiles via Feature/OrogenyID elsewhere (spec.md 3).
type OrogenyRecord struct {
	ID       int32
	ParentID int32 // parent plate or boundary id
	Spine    []int32
	Severity map[int32]float64 // per-tile severity, written back into tiles by the caller
}

// StampOrogeny traces a spine from start along the boundary tile set, runs
// AreaSelect centered on the whole spine to build per-tile hop distance,
// applies layers to field, and returns the resulting record. The caller is
// responsible for writing field/flags back onto actual Tile structs and
// for allocating the record's ID from its slot-map.
func StampOrogeny(id, parentID int32, start int32, along map[int32]bool, neighbors NeighborFunc, layers []Layer, field []float64, setFlag func(tile int32, bits uint32)) OrogenyRecord {
	spine := OrogenySpine(start, along, neighbors)

	maxRadius := 0
	for _, l := range layers {
		if l.Radius > maxRadius {
			maxRadius = l.Radius
		}
	}

	sel := AreaSelect(AreaSelectorConfig{
		Neighbors: neighbors,
		Seeds:     spine,
		MinStep:   maxRadius,
		MaxStep:   maxRadius,
	})

	Stamp(field, sel.Distance, layers, setFlag)

	severity := make(map[int32]float64, len(sel.Distance))
	for t, d := range sel.Distance {
		severity[t] = falloff(d, maxRadius)
	}

	return OrogenyRecord{ID: id, ParentID: parentID, Spine: spine, Severity: severity}
}

// BrushStamp is the brush stamper (spec.md 4.3): like Stamp, but also
// writes a per-tile region tag and a normal-ish direction value (here
// represented abstractly as a float, e.g. a province orientation angle)
// for geological provinces.
type BrushStamp struct {
	RegionTag  uint16
	Normal     float64
}

// ApplyBrush writes RegionTag/Normal onto every tile of distance whose
// falloff strength (as in Stamp) is above zero, i.e. closer than radius
// hops. The values are written as they are, not blended by strength;
// tiles at radius hops or beyond are left untouched.
func ApplyBrush(distance map[int32]int, radius int, brush BrushStamp, regionTags []uint16, normals []float64) {
	for tile, dist := range distance {
		if dist > radius {
			continue
		}
		strength := falloff(dist, radius)
		if strength <= 0 {
			continue
		}
		regionTags[tile] = brush.RegionTag
		normals[tile] = brush.Normal
	}
}
