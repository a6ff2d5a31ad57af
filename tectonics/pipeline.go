package tectonics

import (
	"fmt"

	"github.com/gomgom50/aethelgard-worldgen/internal/rng"
	"github.com/gomgom50/aethelgard-worldgen/kernel"
	"github.com/gomgom50/aethelgard-worldgen/topology"
)

// Run executes the full tectonic pipeline in the exact order spec.md 4.5
// specifies, retrying from step 1 with a perturbed seed on any validation
// failure up to params.MaxRetries, per spec.md 4.5's retry-loop paragraph
// and the teacher's multi-attempt plate generation in plates.go's
// generateTectonicPlates driver.
func Run(sphere *topology.Sphere, params Params) (*Result, []kernel.OrogenyRecord, error) {
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 10
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		seed := params.BaseSeed ^ (uint64(attempt) * 113)
		root := rng.New(seed, 0)

		resetTiles(sphere)

		seedSrc := root.Fork("tectonics-seed")
		seeds, err := SeedPlates(sphere, params.PlateCount, params.MinSeedHopDistance, &seedSrc)
		if err != nil {
			lastErr = err
			continue
		}

		plates := make([]Plate, len(seeds))
		for i, s := range seeds {
			plates[i] = Plate{ID: int32(i), Seed: s}
		}
		kindSrc := root.Fork("tectonics-kinds")
		AssignKindsAndTiers(plates, params.ContinentalRatio, &kindSrc)

		fillSrc := root.Fork("tectonics-fill")
		_, err = MajorFill(sphere, seeds, plates, &fillSrc)
		if err != nil {
			lastErr = err
			continue
		}

		microSrc := root.Fork("tectonics-microplates")
		microplates, err := BuildMicroplates(sphere, plates, params.MicroplatesPerSeed, &microSrc)
		if err != nil {
			lastErr = err
			continue
		}

		velSrc := root.Fork("tectonics-velocity")
		AssignVelocities(sphere, plates, &velSrc)

		boundaryTiles := ClassifyBoundaries(sphere, plates, params.VotingThreshold, params.TransformBand)

		crustSrc := root.Fork("tectonics-crustage")
		AssignCrustAge(sphere, params.CrustAgeSpread, &crustSrc)

		elevSrc := root.Fork("tectonics-elevation")
		AssignBaseElevation(sphere, plates, params, &elevSrc)

		records, err := StampBoundaryFeatures(sphere, boundaryTiles)
		if err != nil {
			lastErr = err
			continue
		}

		if err := validate(sphere, plates, microplates); err != nil {
			lastErr = err
			continue
		}

		return &Result{Plates: plates, Microplates: microplates, Attempt: attempt + 1}, records, nil
	}

	return nil, nil, fmt.Errorf("tectonics: exhausted %d retries, last error: %w", maxRetries, lastErr)
}

// resetTiles clears every per-tile tectonic field so a retried attempt
// starts clean.
func resetTiles(sphere *topology.Sphere) {
	for i := range sphere.Tiles {
		sphere.Tiles[i].PlateID = -1
		sphere.Tiles[i].MicroplateID = -1
		sphere.Tiles[i].Boundary = topology.BoundaryNone
		sphere.Tiles[i].Feature = topology.FeatureNone
		sphere.Tiles[i].CrustAge = 1.0
		sphere.Tiles[i].Elevation = 0
		sphere.Tiles[i].OrogenyID = -1
		sphere.Tiles[i].SetFlag(topology.FlagBoundary, false)
		sphere.Tiles[i].SetFlag(topology.FlagUplift, false)
		sphere.Tiles[i].SetFlag(topology.FlagLand, false)
	}
}

// validate checks spec.md §8 properties 4 and 5: plate coverage and
// microplate containment. Boundary-vote symmetry (property 6) is an
// emergent consequence of ClassifyBoundaries voting per-tile rather than
// per-pair and is not separately re-checked here, since triple junctions
// can legitimately make a strict pairwise symmetry check too strong.
func validate(sphere *topology.Sphere, plates []Plate, microplates []Microplate) error {
	n := sphere.TileCount()
	k := len(plates)
	counted := make([]int, k)

	parentOf := make(map[int32]int32, len(microplates))
	for _, mp := range microplates {
		parentOf[mp.ID] = mp.ParentPlate
	}

	for i := range sphere.Tiles {
		p := sphere.Tiles[i].PlateID
		if p < 0 || int(p) >= k {
			return fmt.Errorf("tectonics: tile %d has invalid plate id %d", i, p)
		}
		counted[p]++

		if mp := sphere.Tiles[i].MicroplateID; mp >= 0 {
			if parentOf[mp] != p {
				return fmt.Errorf("tectonics: tile %d's microplate %d has parent plate %d, but tile's plate is %d",
					i, mp, parentOf[mp], p)
			}
		}
	}

	sum := 0
	for _, c := range counted {
		sum += c
	}
	if sum != n {
		return fmt.Errorf("tectonics: plate tile counts sum to %d, want %d", sum, n)
	}

	return nil
}
