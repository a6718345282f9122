package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
)

func TestNewCalculation(t *testing.T) {
	tests := []struct {
		name      string
		req       bayes.TTestRequest
		res       bayes.Result
		wantLower *string
		wantUpper *string
		wantBF    bool
		method    *string
	}{
		{
			name:   "point null",
			req:    bayes.NewTTestRequest(2.5, 20),
			res:    bayes.Result{LogBF: 1.2, PropError: 1e-6, Method: bayes.MethodQuadrature},
			wantBF: true,
			method: ptr("quadrature"),
		},
		{
			name:      "half-bounded interval",
			req:       bayes.TTestRequest{T: 1, N1: 20, Interval: []float64{0, math.Inf(1)}, Prior: bayes.ScaleWide},
			res:       bayes.Result{LogBF: -0.4, PropError: math.NaN(), Method: bayes.MethodApprox},
			wantLower: ptr("0"),
			wantUpper: ptr("Infinity"),
			wantBF:    true,
			method:    ptr("Savage-Dickey t approximation"),
		},
		{
			name:      "sentinel",
			req:       bayes.TTestRequest{T: 1, N1: 20, Interval: []float64{math.Inf(-1), math.Inf(1)}, Complement: true},
			res:       bayes.SentinelResult(),
			wantLower: ptr("-Infinity"),
			wantUpper: ptr("Infinity"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculation(tt.req, bayes.NewOutput(tt.res, tt.req.Simple))

			assert.NotEqual(t, uuid.Nil, calc.ID)
			assert.False(t, calc.CreatedAt.IsZero())
			assert.Equal(t, tt.wantLower, calc.IntervalLower)
			assert.Equal(t, tt.wantUpper, calc.IntervalUpper)
			assert.Equal(t, tt.method, calc.Method)
			assert.Equal(t, tt.wantBF, calc.LogBF != nil)
			assert.Equal(t, string(tt.req.PriorLabel()), calc.Prior)
			assert.Nil(t, finite(math.NaN()))
		})
	}
}

func TestCalculationOutputRoundTrip(t *testing.T) {
	outputs := []bayes.Output{
		bayes.NewOutput(bayes.Result{LogBF: 1.2, PropError: 1e-6, Method: bayes.MethodQuadrature}, false),
		bayes.NewOutput(bayes.Result{LogBF: -0.4, PropError: math.NaN(), Method: bayes.MethodApprox}, false),
		bayes.NewOutput(bayes.SentinelResult(), false),
		bayes.NewOutput(bayes.Result{LogBF: 0.7, PropError: 0, Method: bayes.MethodQuadrature}, true),
	}
	for _, out := range outputs {
		req := bayes.NewTTestRequest(2, 20)
		req.Simple = out.Simple
		calc := NewCalculation(req, out)

		want, err := json.Marshal(out)
		require.NoError(t, err)
		got, err := json.Marshal(calc.Output())
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
	}
}

func ptr(s string) *string { return &s }

func TestFingerprint(t *testing.T) {
	base := bayes.TTestRequest{T: 2.5, N1: 20, Interval: []float64{-0.2, 0.2}}

	same := []bayes.TTestRequest{
		{T: 2.5, N1: 20, Interval: []float64{0.2, -0.2}},
		{T: 2.5, N1: 20, Interval: []float64{-0.2, 0.2}, Prior: bayes.ScaleMedium},
	}
	for _, req := range same {
		assert.Equal(t, Fingerprint(base), Fingerprint(req), "%+v", req)
	}

	different := []bayes.TTestRequest{
		{T: 2.5, N1: 20},
		{T: 2.5, N1: 20, Interval: []float64{-0.2, 0.2}, Complement: true},
		{T: 2.5, N1: 20, Interval: []float64{-0.2, 0.2}, Simple: true},
		{T: 2.5, N1: 20, N2: 20, Interval: []float64{-0.2, 0.2}},
		{T: 2.5, N1: 20, Interval: []float64{-0.2, 0.2}, Prior: bayes.ScaleWide},
		{T: 2.5, N1: 20, Interval: []float64{-0.2, math.Inf(1)}},
	}
	for _, req := range different {
		assert.NotEqual(t, Fingerprint(base), Fingerprint(req), "%+v", req)
	}

	calc := NewCalculation(base, bayes.NewOutput(bayes.SentinelResult(), false))
	assert.Equal(t, Fingerprint(base).String(), calc.RequestHash)
}

func TestCalculationRequest(t *testing.T) {
	reqs := []bayes.TTestRequest{
		bayes.NewTTestRequest(2.5, 20),
		{T: -1, N1: 12, N2: 14, Interval: []float64{math.Inf(-1), 0}, Prior: bayes.ScaleWide, Complement: true, Simple: true},
	}
	for _, req := range reqs {
		calc := NewCalculation(req, bayes.NewOutput(bayes.SentinelResult(), req.Simple))
		assert.Equal(t, req, calc.Request())
		assert.Equal(t, calc.RequestHash, Fingerprint(calc.Request()).String())
	}

	broken := &Calculation{T: 1, N1: 20, Prior: "medium", IntervalLower: ptr("low"), IntervalUpper: ptr("0.3")}
	assert.Equal(t, []float64{0.3}, broken.Request().Interval)
}
