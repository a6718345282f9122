package distributions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCauchyCDF(t *testing.T) {
	tests := []struct {
		name                string
		x, location, scale float64
		want                float64
	}{
		{"median", 0, 0, 1, 0.5},
		{"upper quartile", 1, 0, 1, 0.75},
		{"lower quartile", -1, 0, 1, 0.25},
		{"location and scale", 3, 1, 2, 0.75},
		{"medium prior quartile", math.Sqrt2 / 2, 0, math.Sqrt2 / 2, 0.75},
		{"lower infinity", math.Inf(-1), 0, 1, 0},
		{"upper infinity", math.Inf(1), 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cauchy{}.CDF(tt.x, tt.location, tt.scale), 1e-15)
		})
	}
}

func TestCauchyCDFTailPrecision(t *testing.T) {
	// P(X <= -x) ~ 1/(pi x) for large x
	got := Cauchy{}.CDF(-1e10, 0, 1)
	assert.InEpsilon(t, 1/(math.Pi*1e10), got, 1e-9)
	assert.Greater(t, got, 0.0)
}

func TestCauchyCDFInvalid(t *testing.T) {
	assert.True(t, math.IsNaN(Cauchy{}.CDF(math.NaN(), 0, 1)))
	assert.True(t, math.IsNaN(Cauchy{}.CDF(1, 0, 0)))
	assert.True(t, math.IsNaN(Cauchy{}.CDF(1, 0, -1)))
}

func TestNewDistributions(t *testing.T) {
	d := NewDistributions(nil)
	assert.NotNil(t, d.StudentT)
	assert.Equal(t, DefaultIntegrator().RelTolerance, d.Integrator.RelTolerance)

	custom := NewAdaptiveIntegrator(1e-6, 1e-12, 50)
	assert.Same(t, custom, NewDistributions(custom).Integrator)
}
