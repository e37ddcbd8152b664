package decay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_TimeConstant(t *testing.T) {
	p := Params{V0: 2, DecayRate: 0.5, DecayRateErr: 0.05}

	assert.InDelta(t, 2.0, p.TimeConstant(), 1e-15)
	assert.InDelta(t, 0.2, p.TimeConstantErr(), 1e-15)
	assert.InDelta(t, 2*math.Ln2, p.HalfLife(), 1e-15)

	// Half-life halves the amplitude.
	assert.InDelta(t, p.V0/2, p.Estimate(p.HalfLife()), 1e-12)
}

func TestParams_NoDecay(t *testing.T) {
	p := Params{V0: 2}

	assert.True(t, math.IsInf(p.TimeConstant(), 1))
	assert.True(t, math.IsInf(p.TimeConstantErr(), 1))
	assert.Equal(t, 2.0, p.Estimate(1000))
}

func TestParams_String(t *testing.T) {
	p := Params{V0: 5, V0Err: 0.1, DecayRate: 0.01, DecayRateErr: 0.001}
	assert.Equal(t, "Params{V0: 5 ± 0.1, Γ: 0.01 ± 0.001}", p.String())
}
