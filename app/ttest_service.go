package app

import (
	"fmt"
	"math"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/bayesfactor"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
)

// TTestService is the entry point for t-test Bayes factors. Validation
// errors are returned to the caller; failures inside the numerical
// computation are logged and reported as the sentinel result.
type TTestService struct {
	orchestrator *bayesfactor.Orchestrator
	logger       *internal.Logger
}

// NewTTestService creates the t-test facade
func NewTTestService(orchestrator *bayesfactor.Orchestrator, logger *internal.Logger) *TTestService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TTestService{
		orchestrator: orchestrator,
		logger:       logger.With("ttest"),
	}
}

// Run validates req, computes its Bayes factor and shapes the output
func (s *TTestService) Run(req bayes.TTestRequest) (bayes.Output, error) {
	params, interval, err := Prepare(req)
	if err != nil {
		return bayes.Output{}, err
	}
	res := s.compute(params, interval, req.Complement)
	return bayes.NewOutput(res, req.Simple), nil
}

// Prepare resolves the prior scale, checks the inputs and derives the
// estimator parameters. Every error it returns is a validation error.
func Prepare(req bayes.TTestRequest) (bayesfactor.Params, *bayes.NullInterval, error) {
	obs := req.Observation()

	rscale, ok := bayesfactor.ResolveScale(bayes.FamilyFor(obs.N2), req.PriorLabel())
	if !ok {
		return bayesfactor.Params{}, nil, apperrors.ValidationError(core.ErrUnknownPrior)
	}

	var interval *bayes.NullInterval
	if req.Interval != nil {
		if len(req.Interval) != 2 {
			return bayesfactor.Params{}, nil, apperrors.ValidationError(core.ErrIntervalArity)
		}
		if math.IsNaN(req.Interval[0]) || math.IsNaN(req.Interval[1]) {
			return bayesfactor.Params{}, nil, apperrors.ValidationError(core.ErrIntervalBound)
		}
		iv := bayes.NewNullInterval(req.Interval[0], req.Interval[1])
		interval = &iv
	}

	df, n := obs.DF(), obs.EffectiveN()
	if !(n >= 1) || !(df >= 1) {
		return bayesfactor.Params{}, nil, apperrors.ValidationError(core.ErrNotEnoughObservations)
	}
	if math.IsNaN(obs.T) || math.IsInf(obs.T, 0) {
		return bayesfactor.Params{}, nil, apperrors.ValidationError(core.ErrConstantData)
	}

	return bayesfactor.Params{T: obs.T, N: n, DF: df, RScale: rscale}, interval, nil
}

// compute runs the orchestrator and turns any failure into the sentinel result
func (s *TTestService) compute(p bayesfactor.Params, interval *bayes.NullInterval, complement bool) (res bayes.Result) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.ComputationError("bayes factor computation panicked", fmt.Errorf("%v", r))
			s.logger.Error("%v (t=%g N=%g df=%g)", err, p.T, p.N, p.DF)
			res = bayes.SentinelResult()
		}
	}()

	out, err := s.orchestrator.Compute(p, interval, complement)
	if err != nil {
		err = apperrors.ComputationError("bayes factor computation failed", err)
		s.logger.Error("%v (t=%g N=%g df=%g)", err, p.T, p.N, p.DF)
		return bayes.SentinelResult()
	}
	return out
}
