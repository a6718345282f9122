package bayesfactor

import (
	"math"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
)

// ApproxInterval approximates the interval Bayes factor for large samples:
// the posterior of delta is taken as a t distribution centred on t/sqrt(N)
// with scale 1/sqrt(N), and the ratio of posterior to prior mass in
// (lower, upper) rescales the point Bayes factor. The restricted case carries
// no error estimate.
func (e *Engine) ApproxInterval(lower, upper float64, p Params) (bayes.Result, error) {
	point, err := e.PointBayesFactor(p)
	if err != nil {
		return bayes.Result{}, err
	}
	if math.IsInf(lower, -1) && math.IsInf(upper, 1) {
		return point, nil
	}

	deltaEst := p.T / math.Sqrt(p.N)
	sd := math.Sqrt(1 / p.N)
	logPostCDF := func(bound float64) float64 {
		return math.Log(e.studentT.CDF((bound-deltaEst)/sd, p.DF))
	}

	priorMass := e.logPriorMass(lower, upper, p.RScale)
	postMass := LogDiffExp(logPostCDF(upper), logPostCDF(lower))

	return bayes.Result{
		LogBF:     postMass - priorMass + point.LogBF,
		PropError: math.NaN(),
		Method:    bayes.MethodApprox,
	}, nil
}
