package bayes

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationDegreesOfFreedom(t *testing.T) {
	tests := []struct {
		name   string
		obs    Observation
		df     float64
		n      float64
		family Family
	}{
		{"one-sample", Observation{T: 2, N1: 20}, 19, 20, FamilyOneSample},
		{"two-sample", Observation{T: 2, N1: 10, N2: 15}, 23, 6, FamilyTwoSample},
		{"equal groups", Observation{T: 2, N1: 50, N2: 50}, 98, 25, FamilyTwoSample},
		{"single observation", Observation{T: 1, N1: 1}, 0, 1, FamilyOneSample},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.df, tt.obs.DF())
			assert.InDelta(t, tt.n, tt.obs.EffectiveN(), 1e-12)
			assert.Equal(t, tt.family, FamilyFor(tt.obs.N2))
		})
	}
}

func TestNullInterval(t *testing.T) {
	iv := NewNullInterval(0.3, -0.1)
	assert.Equal(t, NullInterval{Lower: -0.1, Upper: 0.3}, iv)
	assert.True(t, iv.IsBounded())
	assert.False(t, iv.IsUnrestricted())

	whole := NewNullInterval(math.Inf(1), math.Inf(-1))
	assert.Equal(t, Unrestricted(), whole)
	assert.True(t, whole.IsUnrestricted())
	assert.False(t, whole.IsBounded())

	half := NewNullInterval(0, math.Inf(1))
	assert.False(t, half.IsBounded())
	assert.False(t, half.IsUnrestricted())
}

func TestSentinelResult(t *testing.T) {
	s := SentinelResult()
	assert.True(t, s.IsSentinel())
	assert.True(t, math.IsNaN(s.LogBF))
	assert.True(t, math.IsNaN(s.PropError))
	assert.Equal(t, MethodUndefined, s.Method)

	assert.False(t, Result{LogBF: 1, PropError: math.NaN(), Method: MethodApprox}.IsSentinel())
	assert.False(t, Result{LogBF: math.NaN(), PropError: math.NaN(), Method: MethodQuadrature}.IsSentinel())
}

func TestNewTTestRequestDefaults(t *testing.T) {
	req := NewTTestRequest(2.5, 20)
	assert.Equal(t, 0.0, req.N2)
	assert.Nil(t, req.Interval)
	assert.Equal(t, ScaleMedium, req.Prior)
	assert.False(t, req.Complement)
	assert.False(t, req.Simple)

	assert.Equal(t, ScaleMedium, TTestRequest{}.PriorLabel())
	assert.Equal(t, ScaleWide, TTestRequest{Prior: ScaleWide}.PriorLabel())
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input   string
		want    []float64
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"-0.2,0.2", []float64{-0.2, 0.2}, false},
		{" 0.5 , -0.5 ", []float64{0.5, -0.5}, false},
		{"-Infinity,0", []float64{math.Inf(-1), 0}, false},
		{"inf,-inf", []float64{math.Inf(1), math.Inf(-1)}, false},
		{"0.1", []float64{0.1}, false},
		{"1,2,3", []float64{1, 2, 3}, false},
		{"a,b", nil, true},
		{"0.1,", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInterval(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBoundRoundTrip(t *testing.T) {
	for _, v := range []float64{math.Inf(-1), -0.25, 0, 1e-300, 3.5, math.Inf(1)} {
		s := FormatBound(v)
		got, err := ParseBound(s)
		require.NoError(t, err)
		assert.Equal(t, v, got, s)
	}
	assert.Equal(t, "Infinity", FormatBound(math.Inf(1)))
	assert.Equal(t, "-Infinity", FormatBound(math.Inf(-1)))
}

func TestOutputJSON(t *testing.T) {
	tests := []struct {
		name string
		out  Output
		want string
	}{
		{
			"full",
			NewOutput(Result{LogBF: 1.5, PropError: 0.001, Method: MethodQuadrature}, false),
			`{"bf":1.5,"properror":0.001,"method":"quadrature"}`,
		},
		{
			"approximation without error",
			NewOutput(Result{LogBF: -2, PropError: math.NaN(), Method: MethodApprox}, false),
			`{"bf":-2,"properror":null,"method":"Savage-Dickey t approximation"}`,
		},
		{
			"sentinel",
			NewOutput(SentinelResult(), false),
			`{"bf":null,"properror":null,"method":null}`,
		},
		{
			"simple",
			NewOutput(Result{LogBF: 0, PropError: 0, Method: MethodQuadrature}, true),
			`{"B10":1}`,
		},
		{
			"simple sentinel",
			NewOutput(SentinelResult(), true),
			`{"B10":null}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.out)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestSimpleOutputIsExponential(t *testing.T) {
	out := NewOutput(Result{LogBF: 2.3, PropError: 1e-6, Method: MethodQuadrature}, true)
	assert.True(t, out.Simple)
	assert.InDelta(t, math.Exp(2.3), out.B10, 1e-12)
}
