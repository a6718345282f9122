package bayesfactor

import (
	"math"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
)

// ExactInterval integrates the likelihood over (lower, upper) by adaptive
// quadrature and refers it to the prior mass of the interval and the
// likelihood under the point null.
func (e *Engine) ExactInterval(lower, upper float64, p Params) (bayes.Result, error) {
	nullLike := e.studentT.LogPDF(p.T, p.DF, 0)
	priorMass := e.logPriorMass(lower, upper, p.RScale)

	// centre the integration variable on the effect size estimate
	deltaEst := p.T / math.Sqrt(p.N)
	logConst := e.density.Likelihood(deltaEst, p.T, p.DF, p.RScale, true)

	integral, err := e.integrator.Integrate(func(delta float64) float64 {
		return e.density.Likelihood(delta+deltaEst, p.T, p.DF, p.RScale, false)
	}, lower-deltaEst, upper-deltaEst)
	if err != nil {
		return bayes.Result{}, core.NewIntegrationError(lower, upper, err)
	}

	logBF := math.Log(integral.Value) + logConst - priorMass - nullLike
	return bayes.Result{
		LogBF:     logBF,
		PropError: math.Exp(math.Log(integral.Error) - logBF),
		Method:    bayes.MethodQuadrature,
	}, nil
}

// PointBayesFactor is the unrestricted Bayes factor, i.e. ExactInterval over
// the whole real line, evaluated in closed form. Integrating the noncentral-t
// density over the noncentrality gives E[sqrt(chi2_df/df)], so the integral
// of the likelihood over delta is rscale * sqrt(2/df) * Gamma((df+1)/2) / Gamma(df/2).
func (e *Engine) PointBayesFactor(p Params) (bayes.Result, error) {
	nullLike := e.studentT.LogPDF(p.T, p.DF, 0)
	deltaEst := p.T / math.Sqrt(p.N)
	logConst := e.density.Likelihood(deltaEst, p.T, p.DF, p.RScale, true)

	lgUpper, _ := math.Lgamma((p.DF + 1) / 2)
	lgLower, _ := math.Lgamma(p.DF / 2)
	logIntegral := math.Log(p.RScale) + 0.5*math.Log(2/p.DF) + lgUpper - lgLower

	logBF := logIntegral + logConst - nullLike
	if math.IsNaN(logBF) {
		return bayes.Result{}, core.ErrNonFinite
	}
	return bayes.Result{LogBF: logBF, PropError: 0, Method: bayes.MethodApprox}, nil
}
