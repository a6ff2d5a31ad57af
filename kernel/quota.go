package kernel

import "sort"

// HamiltonQuotas allocates `total` indivisible units across len(weights)
// owners proportional to weights, using the Hamilton largest-remainder
// method: each owner gets floor(share), then the remaining units go one
// each to the owners with the largest fractional remainder (spec.md 4.3,
// glossary "Hamilton largest-remainder"). The result always sums to
// exactly total.
func HamiltonQuotas(weights []float64, total int) []int {
	n := len(weights)
	quotas := make([]int, n)
	if n == 0 || total <= 0 {
		return quotas
	}

	sumW := 0.0
	for _, w := range weights {
		sumW += w
	}
	if sumW <= 0 {
		// Degenerate: split as evenly as possible in index order.
		base := total / n
		rem := total % n
		for i := range quotas {
			quotas[i] = base
			if i < rem {
				quotas[i]++
			}
		}
		return quotas
	}

	type remainder struct {
		idx  int
		frac float64
	}
	remainders := make([]remainder, n)
	assigned := 0
	for i, w := range weights {
		share := w / sumW * float64(total)
		whole := int(share)
		quotas[i] = whole
		assigned += whole
		remainders[i] = remainder{i, share - float64(whole)}
	}

	sort.Slice(remainders, func(a, b int) bool {
		if remainders[a].frac != remainders[b].frac {
			return remainders[a].frac > remainders[b].frac
		}
		return remainders[a].idx < remainders[b].idx // deterministic tie-break
	})

	left := total - assigned
	for i := 0; i < left; i++ {
		quotas[remainders[i].idx]++
	}

	return quotas
}
