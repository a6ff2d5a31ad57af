package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHamiltonQuotasSumsToTotal(t *testing.T) {
	weights := []float64{5, 3, 1, 1}
	quotas := HamiltonQuotas(weights, 37)

	sum := 0
	for _, q := range quotas {
		sum += q
	}
	assert.Equal(t, 37, sum)
}

func TestHamiltonQuotasFavorsLargerWeight(t *testing.T) {
	quotas := HamiltonQuotas([]float64{9, 1}, 10)
	assert.Equal(t, []int{9, 1}, quotas)
}

func TestHamiltonQuotasDegenerateZeroWeights(t *testing.T) {
	quotas := HamiltonQuotas([]float64{0, 0, 0}, 10)
	sum := 0
	for _, q := range quotas {
		sum += q
	}
	assert.Equal(t, 10, sum)
	assert.Equal(t, 4, quotas[0])
	assert.Equal(t, 3, quotas[1])
	assert.Equal(t, 3, quotas[2])
}

func TestHamiltonQuotasTieBreakIsDeterministic(t *testing.T) {
	weights := []float64{1, 1, 1}
	a := HamiltonQuotas(weights, 4)
	b := HamiltonQuotas(weights, 4)
	assert.Equal(t, a, b)
}

func TestHamiltonQuotasEmptyOrNonPositiveTotal(t *testing.T) {
	assert.Equal(t, []int{}, HamiltonQuotas(nil, 10))
	quotas := HamiltonQuotas([]float64{1, 2}, 0)
	assert.Equal(t, []int{0, 0}, quotas)
}
