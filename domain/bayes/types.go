package bayes

import (
	"math"
)

// ============================================================================
// PRIOR SPECIFICATION
// ============================================================================

// Family selects the prior scale table row for a test design
type Family string

const (
	FamilyOneSample Family = "one-sample"
	FamilyTwoSample Family = "two-sample"
)

// ScaleLabel names a Cauchy prior width
type ScaleLabel string

const (
	ScaleUltrawide ScaleLabel = "ultrawide"
	ScaleWide      ScaleLabel = "wide"
	ScaleMedium    ScaleLabel = "medium"
)

// FamilyFor returns the prior family implied by the second group size
func FamilyFor(n2 float64) Family {
	if n2 > 0 {
		return FamilyTwoSample
	}
	return FamilyOneSample
}

// ============================================================================
// OBSERVATION
// ============================================================================

// Observation is a reported t-statistic with its group sizes.
// N2 == 0 denotes a one-sample (or paired) design.
type Observation struct {
	T  float64 `json:"t"`
	N1 float64 `json:"n1"`
	N2 float64 `json:"n2"`
}

// DF returns the degrees of freedom of the t-statistic
func (o Observation) DF() float64 {
	if o.N2 == 0 {
		return o.N1 - 1
	}
	return o.N1 + o.N2 - 2
}

// EffectiveN returns the sample size that scales the effect size estimate.
// Two-sample designs use n1*n2/(n1+n2), computed in log space.
func (o Observation) EffectiveN() float64 {
	if o.N2 == 0 {
		return o.N1
	}
	return math.Exp(math.Log(o.N1) + math.Log(o.N2) - math.Log(o.N1+o.N2))
}

// ============================================================================
// NULL INTERVAL
// ============================================================================

// NullInterval is an ordered range of effect sizes; either bound may be infinite
type NullInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// NewNullInterval builds an interval from bounds given in any order
func NewNullInterval(a, b float64) NullInterval {
	if b < a {
		a, b = b, a
	}
	return NullInterval{Lower: a, Upper: b}
}

// Unrestricted returns the interval (-Inf, +Inf)
func Unrestricted() NullInterval {
	return NullInterval{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// IsUnrestricted reports whether the interval covers the whole real line
func (n NullInterval) IsUnrestricted() bool {
	return math.IsInf(n.Lower, -1) && math.IsInf(n.Upper, 1)
}

// IsBounded reports whether both bounds are finite
func (n NullInterval) IsBounded() bool {
	return !math.IsInf(n.Lower, 0) && !math.IsInf(n.Upper, 0)
}

// ============================================================================
// RESULTS
// ============================================================================

// Method identifies the estimator that produced a Bayes factor
type Method string

const (
	MethodQuadrature Method = "quadrature"
	MethodApprox     Method = "Savage-Dickey t approximation"
	// MethodUndefined marks the sentinel result.
	MethodUndefined Method = ""
)

// Result is a log Bayes factor with its proportional error
type Result struct {
	LogBF     float64 `json:"bf"`
	PropError float64 `json:"properror"` // relative error; NaN when not estimated
	Method    Method  `json:"method"`
}

// SentinelResult is reported when a computation is undefined or failed
func SentinelResult() Result {
	return Result{LogBF: math.NaN(), PropError: math.NaN(), Method: MethodUndefined}
}

// IsSentinel reports whether r carries no Bayes factor
func (r Result) IsSentinel() bool {
	return math.IsNaN(r.LogBF) && math.IsNaN(r.PropError) && r.Method == MethodUndefined
}
