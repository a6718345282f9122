// Package bayesfactor computes Bayes factors for t-statistics against point
// and interval nulls under a Cauchy prior on effect size, using the
// Savage-Dickey density ratio.
package bayesfactor

import (
	"math"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

const (
	// ApproxThreshold is the |t| above which a sub-interval is evaluated with
	// the normal/t approximation instead of quadrature.
	ApproxThreshold = 15.0
	// ForceApproxThreshold is the |t| above which restricted intervals skip
	// the three-way split and use the approximation directly.
	ForceApproxThreshold = 5.0
)

// Params are the derived quantities shared by every estimator call
type Params struct {
	T      float64 // observed t-statistic
	N      float64 // effective sample size
	DF     float64 // degrees of freedom
	RScale float64 // Cauchy prior scale
}

// estimator computes the Bayes factor of effect sizes in (lower, upper)
// against the point null
type estimator func(lower, upper float64, p Params) (bayes.Result, error)

// Engine holds the two interval estimators and their capabilities
type Engine struct {
	density    *DensityEvaluator
	studentT   ports.StudentTProvider
	cauchy     ports.CauchyProvider
	integrator ports.Integrator
}

// NewEngine wires the estimators to their distribution and integration capabilities
func NewEngine(studentT ports.StudentTProvider, cauchy ports.CauchyProvider, integrator ports.Integrator) *Engine {
	return &Engine{
		density:    NewDensityEvaluator(studentT),
		studentT:   studentT,
		cauchy:     cauchy,
		integrator: integrator,
	}
}

// estimatorFor picks the estimator used on a single sub-interval
func (e *Engine) estimatorFor(t float64) estimator {
	if math.Abs(t) > ApproxThreshold {
		return e.ApproxInterval
	}
	return e.ExactInterval
}

// MethodFor reports which estimator a sub-interval evaluation uses for t
func MethodFor(t float64) bayes.Method {
	if math.Abs(t) > ApproxThreshold {
		return bayes.MethodApprox
	}
	return bayes.MethodQuadrature
}

func (e *Engine) logCauchyCDF(x, rscale float64) float64 {
	return math.Log(e.cauchy.CDF(x, 0, rscale))
}

// logPriorMass is the log probability of (lower, upper) under Cauchy(0, rscale)
func (e *Engine) logPriorMass(lower, upper, rscale float64) float64 {
	return LogDiffExp(e.logCauchyCDF(upper, rscale), e.logCauchyCDF(lower, rscale))
}

// partition splits the real line at the bounds of a finite interval. The
// masses are log prior probabilities of the two tails.
type partition struct {
	lower, upper float64
	logMassBelow float64 // (-Inf, lower]
	logMassAbove float64 // (upper, Inf)
	logMassTails float64 // both tails
}

func (e *Engine) partitionAt(interval bayes.NullInterval, rscale float64) partition {
	below := LogDiffExp(e.logCauchyCDF(interval.Lower, rscale), e.logCauchyCDF(math.Inf(-1), rscale))
	above := LogDiffExp(e.logCauchyCDF(math.Inf(1), rscale), e.logCauchyCDF(interval.Upper, rscale))
	return partition{
		lower:        interval.Lower,
		upper:        interval.Upper,
		logMassBelow: below,
		logMassAbove: above,
		logMassTails: LogSumExp(below, above),
	}
}
