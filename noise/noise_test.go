package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFractalSourceDeterministic(t *testing.T) {
	a := NewFractalSource(42, 4, 0.5, 2.0, 1.0)
	b := NewFractalSource(42, 4, 0.5, 2.0, 1.0)

	for _, p := range [][3]float64{{0.1, 0.2, 0.3}, {5, -3, 2}, {0, 0, 0}} {
		assert.Equal(t, a.Eval(p[0], p[1], p[2]), b.Eval(p[0], p[1], p[2]))
	}
}

func TestFractalSourceRoughlyBounded(t *testing.T) {
	src := NewFractalSource(7, 6, 0.55, 2.1, 0.8)
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.37
		v := src.Eval(x, x*1.3, x*0.7)
		assert.LessOrEqual(t, math.Abs(v), 1.5, "octave sum should stay near [-1,1]")
	}
}

func TestDomainWarpDiffersFromBase(t *testing.T) {
	base := NewFractalSource(1, 3, 0.5, 2.0, 1.0)
	warp := DomainWarp{
		Base:     base,
		WarpX:    NewFractalSource(2, 3, 0.5, 2.0, 1.0),
		WarpY:    NewFractalSource(3, 3, 0.5, 2.0, 1.0),
		WarpZ:    NewFractalSource(4, 3, 0.5, 2.0, 1.0),
		Strength: 2.0,
	}

	diff := false
	for i := 0; i < 20; i++ {
		x := float64(i) * 0.5
		if base.Eval(x, x, x) != warp.Eval(x, x, x) {
			diff = true
			break
		}
	}
	assert.True(t, diff, "domain warp should perturb the base field")
}

func TestOperators(t *testing.T) {
	a := constExpr{0.4}
	b := constExpr{0.6}

	assert.InDelta(t, 1.0, Add{a, b}.Eval(0, 0, 0), 1e-9)
	assert.InDelta(t, 0.24, Mul{a, b}.Eval(0, 0, 0), 1e-9)
	assert.InDelta(t, -0.4, Invert{a}.Eval(0, 0, 0), 1e-9)
	assert.InDelta(t, 0.8, Scale{a, 2.0}.Eval(0, 0, 0), 1e-9)
	assert.InDelta(t, 0.0, Threshold{a, 0.5}.Eval(0, 0, 0), 1e-9)
	assert.InDelta(t, 0.6, Threshold{b, 0.5}.Eval(0, 0, 0), 1e-9)
}

type constExpr struct{ v float64 }

func (c constExpr) Eval(x, y, z float64) float64 { return c.v }
