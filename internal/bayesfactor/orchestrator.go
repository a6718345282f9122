package bayesfactor

import (
	"math"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
)

// Orchestrator decomposes a null interval into sub-intervals, evaluates each
// with the estimator suited to the evidence strength, and recombines them
type Orchestrator struct {
	engine *Engine
	logger *internal.Logger
}

// NewOrchestrator creates an orchestrator over engine
func NewOrchestrator(engine *Engine, logger *internal.Logger) *Orchestrator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Orchestrator{engine: engine, logger: logger.With("orchestrator")}
}

// Compute returns the Bayes factor for effect sizes in interval (or outside
// it when complement is set) against the point null. A nil interval means no
// restriction. The bounds of interval may be given in either order.
func (o *Orchestrator) Compute(p Params, interval *bayes.NullInterval, complement bool) (bayes.Result, error) {
	estimate := o.engine.estimatorFor(p.T)
	o.logger.Debug("t=%g N=%g df=%g rscale=%g sub-interval method=%s", p.T, p.N, p.DF, p.RScale, MethodFor(p.T))

	if interval == nil {
		return estimate(math.Inf(-1), math.Inf(1), p)
	}
	iv := bayes.NewNullInterval(interval.Lower, interval.Upper)

	if iv.IsUnrestricted() {
		if complement {
			// the complement of the whole line is empty
			return bayes.SentinelResult(), nil
		}
		return estimate(iv.Lower, iv.Upper, p)
	}

	if math.Abs(p.T) > ForceApproxThreshold {
		o.logger.Debug("|t| > %g, using approximation on (%g, %g)", ForceApproxThreshold, iv.Lower, iv.Upper)
		return o.engine.ApproxInterval(iv.Lower, iv.Upper, p)
	}

	if iv.IsBounded() {
		return o.computeBounded(iv, p, complement, estimate)
	}
	return o.computeHalfBounded(iv, p, complement, estimate)
}

// computeBounded handles a finite interval. The complement is the mixture of
// the two tails weighted by their prior mass.
func (o *Orchestrator) computeBounded(iv bayes.NullInterval, p Params, complement bool, estimate estimator) (bayes.Result, error) {
	part := o.engine.partitionAt(iv, p.RScale)
	if !complement {
		return estimate(part.lower, part.upper, p)
	}

	below, err := estimate(math.Inf(-1), part.lower, p)
	if err != nil {
		return bayes.Result{}, err
	}
	above, err := estimate(part.upper, math.Inf(1), p)
	if err != nil {
		return bayes.Result{}, err
	}

	logBF, propErr := CombineWithError(
		below.LogBF+part.logMassBelow,
		above.LogBF+part.logMassAbove,
		below.PropError,
		above.PropError,
	)
	return bayes.Result{
		LogBF:     logBF - part.logMassTails,
		PropError: propErr,
		Method:    bayes.MethodApprox,
	}, nil
}

// computeHalfBounded handles an interval with one infinite bound.
//
// NOTE: no tail mixture is formed for a half line, so a complement request
// yields the sentinel. The plain request always integrates from -Inf to the
// upper bound, so an interval (a, Inf) yields the unrestricted Bayes factor.
func (o *Orchestrator) computeHalfBounded(iv bayes.NullInterval, p Params, complement bool, estimate estimator) (bayes.Result, error) {
	if complement {
		o.logger.Debug("complement of half line (%g, %g) is undefined", iv.Lower, iv.Upper)
		return bayes.SentinelResult(), nil
	}
	return estimate(math.Inf(-1), iv.Upper, p)
}
