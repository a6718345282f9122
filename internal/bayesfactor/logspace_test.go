package bayesfactor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogSumExp(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"equal", math.Log(2), math.Log(2), math.Log(4)},
		{"ordinary", math.Log(1), math.Log(3), math.Log(4)},
		{"symmetric", math.Log(3), math.Log(1), math.Log(4)},
		{"left empty", math.Inf(-1), 1.5, 1.5},
		{"right empty", -2, math.Inf(-1), -2},
		{"both empty", math.Inf(-1), math.Inf(-1), math.Inf(-1)},
		{"no overflow", 1000, 1000, 1000 + math.Ln2},
		{"no underflow", -1000, -1001, -1000 + math.Log1p(math.Exp(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogSumExp(tt.a, tt.b)
			if math.IsInf(tt.want, 0) {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestLogDiffExp(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"ordinary", math.Log(5), math.Log(3), math.Log(2)},
		{"absolute value", math.Log(3), math.Log(5), math.Log(2)},
		{"minus empty", 0, math.Inf(-1), 0},
		{"empty minus", math.Inf(-1), -3, -3},
		{"no overflow", 1000, 999, 1000 + math.Log1p(-math.Exp(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LogDiffExp(tt.a, tt.b), 1e-12)
		})
	}

	t.Run("equal arguments are undefined", func(t *testing.T) {
		assert.True(t, math.IsNaN(LogDiffExp(0.7, 0.7)))
		assert.True(t, math.IsNaN(LogDiffExp(math.Inf(-1), math.Inf(-1))))
	})
}

func TestCombineWithError(t *testing.T) {
	t.Run("sums values and absolute errors", func(t *testing.T) {
		// x1 = 2 with relative error 0.1, x2 = 6 with relative error 0.05:
		// absolute errors 0.2 + 0.3 over a total of 8
		logSum, relErr := CombineWithError(math.Log(2), math.Log(6), 0.1, 0.05)
		assert.InDelta(t, math.Log(8), logSum, 1e-12)
		assert.InDelta(t, 0.5/8, relErr, 1e-12)
	})

	t.Run("zero errors stay zero", func(t *testing.T) {
		logSum, relErr := CombineWithError(-1, -2, 0, 0)
		assert.InDelta(t, LogSumExp(-1, -2), logSum, 1e-12)
		assert.Equal(t, 0.0, relErr)
	})

	t.Run("unknown error propagates", func(t *testing.T) {
		_, relErr := CombineWithError(-1, -2, math.NaN(), 0.01)
		assert.True(t, math.IsNaN(relErr))
	})

	t.Run("empty term contributes nothing", func(t *testing.T) {
		logSum, relErr := CombineWithError(math.Inf(-1), 0.3, 0.2, 0.01)
		assert.InDelta(t, 0.3, logSum, 1e-12)
		assert.InDelta(t, 0.01, relErr, 1e-12)
	})
}
